package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// normalizeName canonicalizes a name candidate: residual punctuation
// trimmed, whitespace collapsed. Candidates with no alphabetic character
// or longer than the configured ceiling are kept but flagged
// low-confidence; the ceiling guards against a capture that swallowed an
// unrelated paragraph.
func (e *Engine) normalizeName(fm FieldMatch) ExtractedField {
	raw := strings.TrimSpace(fm.Raw)
	if raw == "" {
		return ExtractedField{Confidence: ConfidenceNotFound}
	}

	value := collapseSpaces(strings.TrimFunc(raw, isNamePadding))
	if value == "" {
		value = collapseSpaces(raw)
	}

	hasAlpha := strings.ContainsFunc(value, unicode.IsLetter)
	if !hasAlpha || utf8.RuneCountInString(value) > e.cfg.NameMaxLength {
		return ExtractedField{Value: value, Confidence: ConfidenceLow}
	}
	return ExtractedField{Value: value, Confidence: ConfidenceFound}
}

func isNamePadding(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// normalizePhone keeps a human-readable copy as the canonical value and
// validates on the bare digit count. A count outside the configured
// range downgrades to low-confidence rather than discarding the value;
// callers may still want to see it.
func (e *Engine) normalizePhone(fm FieldMatch) ExtractedField {
	raw := strings.TrimSpace(fm.Raw)
	if raw == "" {
		return ExtractedField{Confidence: ConfidenceNotFound}
	}

	value := collapseSpaces(raw)
	digits := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits++
		}
	}

	if digits < e.cfg.PhoneMinDigits || digits > e.cfg.PhoneMaxDigits {
		return ExtractedField{Value: value, Confidence: ConfidenceLow}
	}
	return ExtractedField{Value: value, Confidence: ConfidenceFound}
}

// normalizeAddress validates the joined candidate with two heuristics: a
// street-number digit and a minimum word count. Failing either keeps the
// value at low-confidence.
func (e *Engine) normalizeAddress(fm FieldMatch) ExtractedField {
	raw := strings.TrimSpace(fm.Raw)
	if raw == "" {
		return ExtractedField{Confidence: ConfidenceNotFound}
	}

	value := collapseSpaces(raw)
	hasDigit := strings.ContainsFunc(value, unicode.IsDigit)
	words := len(strings.Fields(value))

	if !hasDigit || words < e.cfg.AddressMinWords {
		return ExtractedField{Value: value, Confidence: ConfidenceLow}
	}
	return ExtractedField{Value: value, Confidence: ConfidenceFound}
}
