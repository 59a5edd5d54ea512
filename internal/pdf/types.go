package pdf

// Content type classifications reported by read operations
const (
	ContentTypeText          = "text"
	ContentTypeScannedImages = "scanned_images"
	ContentTypeMixed         = "mixed"
	ContentTypeNoContent     = "no_content"
)

// Request Types

// PDFReadFileRequest represents a request to read a PDF file
type PDFReadFileRequest struct {
	Path string `json:"path"`
}

// PDFValidateFileRequest represents a request to validate a PDF file
type PDFValidateFileRequest struct {
	Path string `json:"path"`
}

// Response Types

// PDFReadFileResult represents the result of a PDF read operation
type PDFReadFileResult struct {
	Content     string `json:"content"`
	Path        string `json:"path"`
	Pages       int    `json:"pages"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"` // "text", "scanned_images", "mixed", "no_content"
	HasImages   bool   `json:"has_images"`   // Whether the PDF contains image objects
	ImageCount  int    `json:"image_count"`  // Number of images detected
}

// PDFValidateFileResult represents the result of a PDF validation operation
type PDFValidateFileResult struct {
	Valid     bool   `json:"valid"`
	Path      string `json:"path"`
	Pages     int    `json:"pages,omitempty"`
	Encrypted bool   `json:"encrypted,omitempty"`
	Message   string `json:"message,omitempty"`
}
