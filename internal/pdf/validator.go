package pdf

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validator handles PDF file validation operations
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new PDF validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile performs comprehensive validation on a PDF file
func (v *Validator) ValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	result := &PDFValidateFileResult{
		Path:  req.Path,
		Valid: false,
	}

	pages, err := v.CheckFile(req.Path)
	if err != nil {
		result.Message = err.Error()
		result.Encrypted = errors.Is(err, ErrEncrypted)
		return result, nil //nolint:nilerr // Return result with validation error, not a processing error
	}

	result.Valid = true
	result.Pages = pages
	return result, nil
}

// CheckFile validates that a file is a readable, unencrypted PDF within the
// size limit and returns its page count. The returned error wraps
// ErrEncrypted or ErrCorrupt where the file itself is the problem.
func (v *Validator) CheckFile(filePath string) (int, error) {
	if filePath == "" {
		return 0, fmt.Errorf("path cannot be empty")
	}

	// Check if file exists and get basic info
	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return 0, fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return 0, fmt.Errorf("cannot access file: %w", err)
	}

	// Check if it's a regular file (not a directory)
	if fileInfo.IsDir() {
		return 0, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	// Check file extension
	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return 0, fmt.Errorf("file is not a PDF: %s", filePath)
	}

	// Check file size
	if fileInfo.Size() == 0 {
		return 0, fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > v.maxFileSize {
		return 0, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	// Parse the cross-reference structure to prove it is a real PDF
	ctx, err := v.readContext(filePath)
	if err != nil {
		return 0, err
	}

	if ctx.Encrypt != nil {
		return 0, fmt.Errorf("%w: %s", ErrEncrypted, filePath)
	}

	return ctx.PageCount, nil
}

// IsValidPDF performs a quick check to see if a file is a valid PDF
func (v *Validator) IsValidPDF(filePath string) bool {
	_, err := v.CheckFile(filePath)
	return err == nil
}

// readContext opens the file with pdfcpu in relaxed validation mode
func (v *Validator) readContext(filePath string) (*model.Context, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return ctx, nil
}
