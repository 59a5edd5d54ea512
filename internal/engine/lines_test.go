package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "unix line endings",
			in:   "one\ntwo",
			want: []string{"one", "two"},
		},
		{
			name: "windows line endings",
			in:   "one\r\ntwo\r\nthree",
			want: []string{"one", "two", "three"},
		},
		{
			name: "bare carriage returns",
			in:   "one\rtwo",
			want: []string{"one", "two"},
		},
		{
			name: "per line trimming",
			in:   "  one  \n\ttwo\t",
			want: []string{"one", "two"},
		},
		{
			name: "blank run collapsed to single delimiter",
			in:   "one\n\n\n\ntwo",
			want: []string{"one", "", "two"},
		},
		{
			name: "leading and trailing blanks dropped",
			in:   "\n\none\ntwo\n\n",
			want: []string{"one", "two"},
		},
		{
			name: "non breaking spaces trimmed",
			in:   "\u00a0one\u00a0\ntwo",
			want: []string{"one", "two"},
		},
		{
			name: "soft hyphen removed",
			in:   "Spring\u00adfield",
			want: []string{"Springfield"},
		},
		{
			name: "zero width space and bom removed",
			in:   "\ufeffone\u200b\ntwo",
			want: []string{"one", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeText(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeText_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n", "\r\n\t\r\n", "\u00a0\n\u00a0"} {
		lines, err := normalizeText(in)
		assert.ErrorIs(t, err, ErrEmptyDocument)
		assert.Nil(t, lines)
	}
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b c", collapseSpaces("  a \t b\u00a0 c  "))
	assert.Equal(t, "", collapseSpaces("   "))
}

func TestJoinLines(t *testing.T) {
	assert.Equal(t, "a\n\nb", joinLines([]string{"a", "", "b"}))
}
