package engine

import "regexp"

// Pattern-based fallback for documents that label nothing. It only runs
// when enabled in the config, only for fields the label scan left
// not-found, and its hits are always reported low-confidence: an
// unlabeled match is a guess, never an anchor.

var (
	// Capitalized word runs of two to four words
	fallbackNamePattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3}\b`)

	fallbackPhonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
	}

	fallbackAddressPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z0-9\s,.-]+(?:Avenue|Lane|Road|Boulevard|Drive|Street|Ave|Ln|Rd|Blvd|Dr|St)\.?\s*,\s*[A-Za-z\s]+,\s*[A-Z]{2}\s+\d{5}\b`),
		regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z0-9\s,.-]+(?:Avenue|Lane|Road|Boulevard|Drive|Street|Ave|Ln|Rd|Blvd|Dr|St)\.?`),
	}
)

func fallbackName(text string) ExtractedField {
	if m := fallbackNamePattern.FindString(text); m != "" {
		return ExtractedField{Value: collapseSpaces(m), Confidence: ConfidenceLow}
	}
	return ExtractedField{Confidence: ConfidenceNotFound}
}

func fallbackPhone(text string) ExtractedField {
	for _, p := range fallbackPhonePatterns {
		if m := p.FindString(text); m != "" {
			return ExtractedField{Value: collapseSpaces(m), Confidence: ConfidenceLow}
		}
	}
	return ExtractedField{Confidence: ConfidenceNotFound}
}

func fallbackAddress(text string) ExtractedField {
	for _, p := range fallbackAddressPatterns {
		if m := p.FindString(text); m != "" {
			return ExtractedField{Value: collapseSpaces(m), Confidence: ConfidenceLow}
		}
	}
	return ExtractedField{Confidence: ConfidenceNotFound}
}
