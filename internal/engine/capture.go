package engine

import "strings"

// FieldMatch carries the raw captured text for one field kind: the
// originating line index, the candidate value (possibly joined from
// several lines), and whether a label anchored at all. "No label" is a
// normal outcome, not an error.
type FieldMatch struct {
	Kind  FieldKind
	Line  int
	Raw   string
	Found bool
}

// capture turns a label match into the raw candidate value. Single-line
// fields take the remainder of the matched line, falling back to at most
// one following non-blank line when the label stood alone. The address
// rule captures a block instead.
func (e *Engine) capture(lines []string, m Match) FieldMatch {
	if !m.Found {
		return FieldMatch{Kind: m.Kind}
	}

	rule := e.rule(m.Kind)
	rest := strings.TrimSpace(lines[m.Line][m.Offset:])

	if rule.Multiline {
		return e.captureBlock(lines, m, rest)
	}

	if rest != "" {
		return FieldMatch{Kind: m.Kind, Line: m.Line, Raw: rest, Found: true}
	}

	// Label alone on its line; the value may sit on the next non-blank
	// line unless that line belongs to another label
	for j := m.Line + 1; j < len(lines); j++ {
		if lines[j] == "" {
			continue
		}
		if _, labeled := e.labelKind(lines[j]); labeled {
			break
		}
		return FieldMatch{Kind: m.Kind, Line: m.Line, Raw: lines[j], Found: true}
	}

	return FieldMatch{Kind: m.Kind, Line: m.Line, Found: true}
}

// captureBlock appends continuation lines to the matched line's
// remainder until a blank delimiter, another recognized label, or the
// continuation ceiling. Captured lines are joined with single spaces.
func (e *Engine) captureBlock(lines []string, m Match, rest string) FieldMatch {
	parts := make([]string, 0, e.cfg.MaxContinuationLines+1)
	if rest != "" {
		parts = append(parts, rest)
	}

	consumed := 0
	for j := m.Line + 1; j < len(lines) && consumed < e.cfg.MaxContinuationLines; j++ {
		line := lines[j]
		if line == "" {
			break
		}
		if _, labeled := e.labelKind(line); labeled {
			break
		}
		parts = append(parts, line)
		consumed++
	}

	if len(parts) == 0 {
		return FieldMatch{Kind: m.Kind, Line: m.Line, Found: true}
	}
	return FieldMatch{Kind: m.Kind, Line: m.Line, Raw: strings.Join(parts, " "), Found: true}
}

// rule returns the label rule for a field kind
func (e *Engine) rule(kind FieldKind) LabelRule {
	for _, r := range e.rules {
		if r.Kind == kind {
			return r
		}
	}
	return LabelRule{Kind: kind}
}
