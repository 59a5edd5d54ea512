package engine

import "strings"

// normalizeText cleans raw extracted text into an ordered sequence of
// logical lines: line terminators unified, per-line whitespace trimmed,
// and runs of blank lines collapsed to a single blank delimiter. The
// blank delimiters are kept because multi-line capture uses them as
// block terminators.
func normalizeText(text string) ([]string, error) {
	text = repairEncoding(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	blank := true
	nonBlank := 0
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			// Collapse blank runs; also drops leading blanks
			if !blank {
				lines = append(lines, "")
			}
			blank = true
			continue
		}
		lines = append(lines, line)
		blank = false
		nonBlank++
	}

	// Drop a trailing blank delimiter
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	if nonBlank == 0 {
		return nil, ErrEmptyDocument
	}
	return lines, nil
}

// repairEncoding substitutes extraction artifacts that would otherwise
// survive trimming: non-breaking and zero-width spaces, BOMs, and soft
// hyphens left over from justified text.
func repairEncoding(text string) string {
	return encodingReplacer.Replace(text)
}

var encodingReplacer = strings.NewReplacer(
	"\u00a0", " ", // non-breaking space
	"\u2007", " ", // figure space
	"\u202f", " ", // narrow no-break space
	"\u200b", "", // zero-width space
	"\ufeff", "", // byte order mark
	"\u00ad", "", // soft hyphen
)

// joinLines flattens normalized lines back into one string for
// whole-document pattern scans
func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// collapseSpaces reduces internal whitespace runs to single spaces and
// trims the ends
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
