package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader handles PDF file reading operations
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ReadFile extracts text content from a PDF file. Documents without a text
// layer are refused with ErrScanned or ErrNoText so callers never run
// extraction over an empty string.
func (r *Reader) ReadFile(req PDFReadFileRequest) (result *PDFReadFileResult, err error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	// Check if file exists and get basic info
	fileInfo, statErr := os.Stat(req.Path)
	if os.IsNotExist(statErr) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if statErr != nil {
		return nil, fmt.Errorf("cannot access file: %w", statErr)
	}

	// Validate file type
	if err := r.validatePDFFile(req.Path, fileInfo); err != nil {
		return nil, err
	}

	// The underlying parser panics on some malformed documents; convert
	// those into ErrCorrupt so one bad file cannot take the process down
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("%w: parser panic: %v", ErrCorrupt, rec)
		}
	}()

	// Open and parse PDF
	f, pdfReader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer f.Close()

	// Extract text content
	content, err := r.extractTextContent(pdfReader)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text content: %w", err)
	}

	// Analyze content type and detect images
	contentType := r.analyzeContentType(content, pdfReader)
	hasImages, imageCount := r.detectImages(pdfReader)

	if strings.TrimSpace(content) == "" {
		if hasImages {
			return nil, fmt.Errorf("%w (%d images detected)", ErrScanned, imageCount)
		}
		return nil, fmt.Errorf("%w: %s", ErrNoText, req.Path)
	}

	result = &PDFReadFileResult{
		Content:     content,
		Path:        req.Path,
		Pages:       pdfReader.NumPage(),
		Size:        fileInfo.Size(),
		ContentType: contentType,
		HasImages:   hasImages,
		ImageCount:  imageCount,
	}

	return result, nil
}

// validatePDFFile performs basic validation on a PDF file
func (r *Reader) validatePDFFile(filePath string, fileInfo os.FileInfo) error {
	// Check if it's a regular file (not a directory)
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	// Check file extension
	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	// Check file size
	if fileInfo.Size() > r.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	return nil
}

// extractTextContent extracts text content from a PDF reader. Pages are
// joined with blank lines so downstream line scanning sees document lines
// only. An empty string is a valid outcome; ReadFile decides how to report
// it.
func (r *Reader) extractTextContent(pdfReader *pdf.Reader) (string, error) {
	if pdfReader == nil {
		return "", fmt.Errorf("pdf reader is nil")
	}

	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		// Check if adding this content would exceed the limit
		if totalLength+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}

		builder.WriteString(content)
		totalLength += len(content)

		// Page separator keeps pages apart without inventing marker lines
		if pageNum < pdfReader.NumPage() {
			builder.WriteString("\n\n")
		}
	}

	return builder.String(), nil
}

// analyzeContentType determines the type of content in the PDF
func (r *Reader) analyzeContentType(textContent string, pdfReader *pdf.Reader) string {
	// Minimum text length to consider content meaningful
	const minMeaningfulTextLength = 50

	cleanText := strings.TrimSpace(textContent)
	hasImages, _ := r.detectImages(pdfReader)

	if cleanText == "" {
		if hasImages {
			return ContentTypeScannedImages
		}
		return ContentTypeNoContent
	}

	if hasImages {
		// A handful of characters next to images is caption noise, not text
		if len(cleanText) < minMeaningfulTextLength {
			return ContentTypeScannedImages
		}
		return ContentTypeMixed
	}

	return ContentTypeText
}

// detectImages scans the PDF for image objects
func (r *Reader) detectImages(pdfReader *pdf.Reader) (bool, int) {
	if pdfReader == nil {
		return false, 0
	}

	imageCount := 0
	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		imageCount += r.countImagesOnPage(pdfReader, pageNum)
	}

	return imageCount > 0, imageCount
}

// countImagesOnPage counts images on a specific page
func (r *Reader) countImagesOnPage(pdfReader *pdf.Reader, pageNum int) int {
	defer func() {
		// Recover from any panics during image detection
		if recover() != nil {
			// Image detection failed for this page
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return 0
	}

	// Get page resources
	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return 0
	}

	// Get XObject dictionary (where images are typically stored)
	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return 0
	}

	imageCount := 0
	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}

		subtype := obj.Key("Subtype")
		if subtype.IsNull() || subtype.Name() != "Image" {
			continue
		}

		imageCount++
	}

	return imageCount
}
