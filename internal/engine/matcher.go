package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Match records where a label rule anchored: the line index of the first
// matching label and the column offset immediately past the label and
// its separators.
type Match struct {
	Kind   FieldKind
	Line   int
	Offset int
	Found  bool
}

// scanLabels tests every rule against every line, top to bottom. The
// first occurrence wins per field kind, and a line is claimed by at most
// one rule: when several rules match the same line, the first rule in
// priority order takes it and the others keep scanning.
func (e *Engine) scanLabels(lines []string) map[FieldKind]Match {
	matches := make(map[FieldKind]Match, len(e.rules))
	for _, rule := range e.rules {
		matches[rule.Kind] = Match{Kind: rule.Kind}
	}

	for i, line := range lines {
		if line == "" {
			continue
		}
		for _, rule := range e.rules {
			offset, ok := matchLabel(line, rule.Spellings)
			if !ok {
				continue
			}
			if m := matches[rule.Kind]; !m.Found {
				matches[rule.Kind] = Match{Kind: rule.Kind, Line: i, Offset: offset, Found: true}
			}
			// Line is claimed even when this rule already matched
			// earlier; lower-priority rules never see it
			break
		}
	}

	return matches
}

// labelKind reports whether a line starts with any recognized label,
// returning the claiming rule's kind. Used by the capturer to stop at
// the next labeled line.
func (e *Engine) labelKind(line string) (FieldKind, bool) {
	for _, rule := range e.rules {
		if _, ok := matchLabel(line, rule.Spellings); ok {
			return rule.Kind, true
		}
	}
	return "", false
}

// matchLabel reports whether a normalized line starts with one of the
// spellings followed by zero or more separator characters, returning the
// offset of the value remainder. A spelling immediately followed by a
// letter or digit is not a label ("Names:" must not anchor "Name").
func matchLabel(line string, spellings []string) (int, bool) {
	for _, spelling := range spellings {
		if len(line) < len(spelling) || !strings.EqualFold(line[:len(spelling)], spelling) {
			continue
		}

		offset := len(spelling)
		if offset < len(line) {
			r, _ := utf8.DecodeRuneInString(line[offset:])
			if !isLabelSeparator(r) && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				continue
			}
		}

		for offset < len(line) {
			r, size := utf8.DecodeRuneInString(line[offset:])
			if !isLabelSeparator(r) {
				break
			}
			offset += size
		}
		return offset, true
	}
	return 0, false
}

func isLabelSeparator(r rune) bool {
	return r == ':' || r == '-' || unicode.IsSpace(r)
}
