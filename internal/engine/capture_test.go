package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapture_SameLineRemainder(t *testing.T) {
	e := New(DefaultConfig())
	lines := []string{"Name: Jane Doe"}

	fm := e.capture(lines, Match{Kind: FieldName, Line: 0, Offset: 6, Found: true})

	assert.True(t, fm.Found)
	assert.Equal(t, "Jane Doe", fm.Raw)
	assert.Equal(t, 0, fm.Line)
}

func TestCapture_NoMatchIsNoCandidate(t *testing.T) {
	e := New(DefaultConfig())
	lines := []string{"nothing here"}

	fm := e.capture(lines, Match{Kind: FieldPhone})

	assert.False(t, fm.Found)
	assert.Equal(t, "", fm.Raw)
}

func TestCapture_FallbackToNextLine(t *testing.T) {
	e := New(DefaultConfig())

	tests := []struct {
		name    string
		lines   []string
		wantRaw string
	}{
		{
			name:    "value directly below",
			lines:   []string{"Name:", "Jane Doe"},
			wantRaw: "Jane Doe",
		},
		{
			name:    "blank line skipped",
			lines:   []string{"Name:", "", "Jane Doe"},
			wantRaw: "Jane Doe",
		},
		{
			name:    "at most one line consumed",
			lines:   []string{"Name:", "Jane Doe", "Second Line"},
			wantRaw: "Jane Doe",
		},
		{
			name:    "label line is not a value",
			lines:   []string{"Name:", "Phone: 555-010-0100"},
			wantRaw: "",
		},
		{
			name:    "nothing below",
			lines:   []string{"Name:"},
			wantRaw: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, ok := matchLabel(tt.lines[0], e.rule(FieldName).Spellings)
			assert.True(t, ok)

			fm := e.capture(tt.lines, Match{Kind: FieldName, Line: 0, Offset: offset, Found: true})

			assert.True(t, fm.Found)
			assert.Equal(t, tt.wantRaw, fm.Raw)
		})
	}
}

func TestCaptureBlock_JoinsContinuationLines(t *testing.T) {
	e := New(DefaultConfig())
	lines := []string{"Address: 12 Oak Way", "Apt 4", "Springfield, IL 62704"}

	fm := e.capture(lines, Match{Kind: FieldAddress, Line: 0, Offset: 9, Found: true})

	assert.True(t, fm.Found)
	assert.Equal(t, "12 Oak Way Apt 4 Springfield, IL 62704", fm.Raw)
}

func TestCaptureBlock_StopsAtBlankLine(t *testing.T) {
	e := New(DefaultConfig())
	lines := []string{"Address: 12 Oak Way", "Springfield", "", "unrelated trailer"}

	fm := e.capture(lines, Match{Kind: FieldAddress, Line: 0, Offset: 9, Found: true})

	assert.Equal(t, "12 Oak Way Springfield", fm.Raw)
}

func TestCaptureBlock_StopsAtNextLabel(t *testing.T) {
	e := New(DefaultConfig())
	lines := []string{"Address: 12 Oak Way", "Springfield", "Name: John"}

	fm := e.capture(lines, Match{Kind: FieldAddress, Line: 0, Offset: 9, Found: true})

	assert.Equal(t, "12 Oak Way Springfield", fm.Raw)
}

func TestCaptureBlock_ContinuationCeiling(t *testing.T) {
	e := New(DefaultConfig())
	lines := []string{"Address: 12 Oak Way", "a", "b", "c", "d", "e", "f"}

	fm := e.capture(lines, Match{Kind: FieldAddress, Line: 0, Offset: 9, Found: true})

	// Four continuation lines at most
	assert.Equal(t, "12 Oak Way a b c d", fm.Raw)
}

func TestCaptureBlock_LabelOnOwnLine(t *testing.T) {
	e := New(DefaultConfig())
	lines := []string{"Address:", "12 Oak Way", "Springfield"}

	fm := e.capture(lines, Match{Kind: FieldAddress, Line: 0, Offset: 8, Found: true})

	assert.Equal(t, "12 Oak Way Springfield", fm.Raw)
}

func TestCaptureBlock_EmptyCapture(t *testing.T) {
	e := New(DefaultConfig())
	lines := []string{"Address:", "", "too far away"}

	fm := e.capture(lines, Match{Kind: FieldAddress, Line: 0, Offset: 8, Found: true})

	assert.True(t, fm.Found)
	assert.Equal(t, "", fm.Raw)
}
