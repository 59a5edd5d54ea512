package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Extraction Tools
	ContactExtractFileDescription = `Extract contact fields (name, phone, address) from a PDF document.

**When to use:** Need structured contact information from intake forms, applications, registration documents, or any PDF carrying labeled personal details.

**Why it's useful:** Turns free-form document text into a structured record with per-field confidence, so downstream systems know which values to trust and which to review.

**Examples:**
• Process an intake form: "Extract the contact record from patient-intake.pdf"
• Triage applications: "Pull name and phone from application-2024-118.pdf for the callback queue"
• Migrate paper records: "Extract contact fields from every scanned re-typed form in /records/"

**Common workflows:**
1. Intake Processing: Extract record → Review low-confidence fields → Store in CRM
2. Batch Triage: Validate file → Extract record → Route by status (complete/partial/failed)
3. Data Migration: Extract → Check extraction_successful → Queue failures for manual entry

**Best practices:** Check each field's confidence before trusting it; "low-confidence" values come from the fallback scan and deserve human review.`

	ContactExtractTextDescription = `Extract contact fields (name, phone, address) from raw document text.

**When to use:** The text is already available (OCR output, clipboard content, email bodies, upstream pipelines) and only the field extraction step is needed.

**Why it's useful:** Runs the same labeled-field scan as file extraction without touching the filesystem, so any text source can feed it.

**Examples:**
• OCR handoff: "Extract contact fields from this OCR output of a scanned letter"
• Email processing: "Pull the sender's address block out of this signature text"
• Pipeline step: "Extract fields from pre-cleaned text produced by another tool"

**Common workflows:**
1. OCR Pipeline: OCR image → Extract fields from text → Merge with document metadata
2. Ad-hoc Checks: Paste text → Extract → Inspect which labels matched
3. Testing Labels: Feed synthetic text → Verify label spellings are recognized

**Best practices:** Keep line structure intact; extraction anchors on labels at line starts, and flattening newlines hides them.`

	// PDF Tools
	PDFReadFileDescription = `Read and extract the raw text content from a PDF file.

**When to use:** Need the underlying document text, either to inspect what extraction will see or to feed other analysis.

**Why it's useful:** Shows exactly the text the contact extractor scans, and classifies the document content (text, scanned images, mixed) so failures are explainable.

**Examples:**
• Debug extraction: "Read intake.pdf to see why the address label did not match"
• Content check: "Read contract.pdf and check whether it is text or scanned images"
• Downstream use: "Get plain text from report.pdf for separate analysis"

**Common workflows:**
1. Extraction Debugging: Read file → Inspect labels in text → Adjust source document
2. Content Routing: Read → Check content_type → Send scanned documents to OCR first
3. Text Reuse: Read → Pass content to contact_extract_text or other tools

**Best practices:** Check content_type in the response; "scanned_images" means there is no text layer and contact extraction cannot work on this file.`

	PDFValidateFileDescription = `Verify PDF file integrity and readability before processing.

**When to use:** Before extraction in automated workflows, or when handling uploads and files of unknown origin.

**Why it's useful:** Catches corrupted, encrypted, oversized, or mislabeled files early with a clear message instead of a mid-pipeline failure.

**Examples:**
• Batch safety: "Validate all PDFs in /inbox/ before running extraction"
• Upload check: "Confirm uploaded-form.pdf is a readable PDF"
• Triage: "Check whether rejected.pdf failed because it is encrypted"

**Common workflows:**
1. Automated Processing: Validate → Extract if valid → Log rejects with their message
2. Upload Handling: Validate → Reject bad files with the reported reason
3. Failure Triage: Validate a failed file → Read the message → Fix or discard

**Best practices:** Run first in automated pipelines; the result carries the page count and whether the file is encrypted.`

	// Utility Tools
	ContactServerInfoDescription = `Get server capabilities, extracted field kinds, available tools, and usage guidance.

**When to use:** Starting a session, troubleshooting, or discovering what the server can do.

**Why it's useful:** Reports the configured size limit, whether the fallback scan is enabled, and how the tools fit together, so workflows can be planned without trial and error.

**Examples:**
• Session start: "Check server info before processing a batch of forms"
• Troubleshooting: "See whether the fallback scan is on for this deployment"
• Discovery: "List the available tools and what each one expects"

**Common workflows:**
1. Session Startup: Check info → Verify limits → Plan batch processing
2. Debugging: Review configuration → Compare against expected behavior
3. Integration: Read tool list → Wire the needed tools into an agent

**Best practices:** Run once at session start; the usage guidance section explains how the extraction tools chain together.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"contact_extract_file": ContactExtractFileDescription,
	"contact_extract_text": ContactExtractTextDescription,
	"pdf_read_file":        PDFReadFileDescription,
	"pdf_validate_file":    PDFValidateFileDescription,
	"contact_server_info":  ContactServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
