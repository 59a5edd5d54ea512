package extractor

import (
	"fmt"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/docuform/contact-extractor/internal/engine"
	"github.com/docuform/contact-extractor/internal/logger"
	"github.com/docuform/contact-extractor/internal/pdf"
)

// fileValidator is the gatekeeping side of the PDF collaborator
type fileValidator interface {
	CheckFile(filePath string) (int, error)
	ValidateFile(req pdf.PDFValidateFileRequest) (*pdf.PDFValidateFileResult, error)
}

// fileReader is the text-producing side of the PDF collaborator
type fileReader interface {
	ReadFile(req pdf.PDFReadFileRequest) (*pdf.PDFReadFileResult, error)
}

// Service turns documents into contact records by orchestrating validation,
// text extraction and the engine
type Service struct {
	maxFileSize int64
	validator   fileValidator
	reader      fileReader
	engine      *engine.Engine
	schema      *jsonschema.Schema
	logger      *logger.Logger
}

// ExtractFileRequest represents a request to extract contacts from a PDF file
type ExtractFileRequest struct {
	Path string `json:"path"`
}

// ExtractTextRequest represents a request to extract contacts from raw text
type ExtractTextRequest struct {
	Text string `json:"text"`
}

// NewService creates a contact extraction service with all components
func NewService(maxFileSize int64, engineCfg engine.Config, log *logger.Logger) (*Service, error) {
	schema, err := compileRecordSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile record schema: %w", err)
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &Service{
		maxFileSize: maxFileSize,
		validator:   pdf.NewValidator(maxFileSize),
		reader:      pdf.NewReader(maxFileSize),
		engine:      engine.New(engineCfg),
		schema:      schema,
		logger:      log.WithComponent("extractor"),
	}, nil
}

// ExtractFile validates a PDF file, extracts its text and runs the engine.
// Hard failures return an error; callers render it with ErrorRecord.
func (s *Service) ExtractFile(req ExtractFileRequest) (*Record, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	if _, err := s.validator.CheckFile(req.Path); err != nil {
		s.logger.Warn("document rejected",
			zap.String("path", req.Path),
			zap.Error(err))
		return nil, newUpstreamError(req.Path, err)
	}

	readResult, err := s.reader.ReadFile(pdf.PDFReadFileRequest{Path: req.Path})
	if err != nil {
		s.logger.Warn("text extraction failed",
			zap.String("path", req.Path),
			zap.Error(err))
		return nil, newUpstreamError(req.Path, err)
	}

	return s.extract(readResult.Content, Metadata{
		FileName: filepath.Base(req.Path),
		FileSize: readResult.Size,
		Pages:    readResult.Pages,
	})
}

// ExtractText runs the engine over already extracted text
func (s *Service) ExtractText(req ExtractTextRequest) (*Record, error) {
	return s.extract(req.Text, Metadata{})
}

// extract runs the engine, builds the record and checks the output contract
func (s *Service) extract(text string, meta Metadata) (*Record, error) {
	result, err := s.engine.Extract(text)
	if err != nil {
		return nil, err
	}

	for _, kind := range engine.AllFieldKinds() {
		field := result.Field(kind)
		s.logger.Debug("field extracted",
			zap.String("field", string(kind)),
			zap.String("confidence", string(field.Confidence)),
			zap.String("value", field.Value))
	}

	rec := buildRecord(result, meta)
	if err := checkRecord(s.schema, rec); err != nil {
		s.logger.Error("record violates output contract", zap.Error(err))
		return nil, err
	}

	s.logger.Info("document processed",
		zap.String("file", meta.FileName),
		zap.String("status", rec.Status),
		zap.Bool("successful", rec.Metadata.ExtractionSuccessful))

	return rec, nil
}

// PDFReadFile reads the content of a PDF file
func (s *Service) PDFReadFile(req pdf.PDFReadFileRequest) (*pdf.PDFReadFileResult, error) {
	return s.reader.ReadFile(req)
}

// PDFValidateFile performs validation on a PDF file
func (s *Service) PDFValidateFile(req pdf.PDFValidateFileRequest) (*pdf.PDFValidateFileResult, error) {
	return s.validator.ValidateFile(req)
}

// IsValidPDF performs a quick validation check on a file
func (s *Service) IsValidPDF(filePath string) bool {
	result, err := s.validator.ValidateFile(pdf.PDFValidateFileRequest{Path: filePath})
	return err == nil && result.Valid
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// EngineConfig returns the thresholds the engine runs with
func (s *Service) EngineConfig() engine.Config {
	return s.engine.Config()
}
