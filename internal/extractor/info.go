package extractor

import "fmt"

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}

// ServerInfoResult represents server information and usage guidance
type ServerInfoResult struct {
	ServerName     string     `json:"server_name"`
	Version        string     `json:"version"`
	MaxFileSize    int64      `json:"max_file_size"`
	Fields         []string   `json:"fields"`
	FallbackScan   bool       `json:"fallback_scan"`
	AvailableTools []ToolInfo `json:"available_tools"`
	UsageGuidance  string     `json:"usage_guidance"`
}

// ServerInfo returns server capabilities and usage guidance
func (s *Service) ServerInfo(serverName, version string) *ServerInfoResult {
	availableTools := []ToolInfo{
		{
			Name:        "contact_extract_file",
			Description: "Extract name, phone and address fields from a PDF document",
			Usage: "Use this tool to pull labeled contact fields out of a PDF. The result is a JSON " +
				"record with one entry per field, a confidence for each, and an overall status.",
			Parameters: "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "contact_extract_text",
			Description: "Extract name, phone and address fields from raw text",
			Usage: "Use this tool when the document text is already available. Runs the same " +
				"extraction as contact_extract_file without touching the filesystem.",
			Parameters: "text (required): Document text to scan",
		},
		{
			Name:        "pdf_read_file",
			Description: "Read and extract text content from a PDF file",
			Usage: "Use this tool to inspect the raw text the extractor would see. Check the " +
				"'content_type' field: scanned documents have no text layer to extract from.",
			Parameters: "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "pdf_validate_file",
			Description: "Validate if a file is a readable, unencrypted PDF",
			Usage:       "Use this tool to check a file before extraction. Encrypted PDFs are refused.",
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "contact_server_info",
			Description: "Get server capabilities, limits and usage guidance",
			Usage:       "Use this tool to discover what the server can do.",
			Parameters:  "none",
		},
	}

	usageGuidance := `Contact Extractor Usage Guide:

1. VALIDATE FIRST:
   - Use 'pdf_validate_file' to check that a file is a readable PDF
   - Encrypted and image-only documents are detected and refused

2. EXTRACT CONTACTS:
   - Use 'contact_extract_file' for PDF documents
   - Use 'contact_extract_text' when you already have the text
   - Each field in the result carries a confidence:
     * "found": a labeled value that passed its plausibility checks
     * "low-confidence": a value was captured but looks unusual
     * "not-found": no candidate at all (value is null)
   - The overall status is "complete", "partial" or "failed"

3. INSPECT WHEN RESULTS LOOK WRONG:
   - Use 'pdf_read_file' to see the text layer the extractor scanned
   - "scanned_images" content means the document needs OCR, which this
     server does not perform

IMPORTANT NOTES:
- Always use absolute file paths
- The server can handle files up to ` + fmt.Sprintf("%d", s.maxFileSize/(1024*1024)) + `MB
- Fields are matched by their labels (for example "Name:", "Phone:", "Address:");
  unlabeled documents produce not-found fields unless the fallback scan is enabled`

	cfg := s.engine.Config()

	return &ServerInfoResult{
		ServerName:     serverName,
		Version:        version,
		MaxFileSize:    s.maxFileSize,
		Fields:         []string{"name", "phone", "address"},
		FallbackScan:   cfg.EnableFallback,
		AvailableTools: availableTools,
		UsageGuidance:  usageGuidance,
	}
}
