package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_DisabledByDefault(t *testing.T) {
	e := New(DefaultConfig())

	// Unlabeled but plausible content stays not-found when fallback is off
	result, err := e.Extract("reach John Smith at 555-010-0100")
	require.NoError(t, err)

	assert.Equal(t, ConfidenceNotFound, result.Name.Confidence)
	assert.Equal(t, ConfidenceNotFound, result.Phone.Confidence)
	assert.Equal(t, StatusFailed, result.Status)
}

func TestFallback_UnlabeledPhone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableFallback = true
	e := New(cfg)

	result, err := e.Extract("you can reach us at 555-010-0100 during office hours")
	require.NoError(t, err)

	assert.Equal(t, "555-010-0100", result.Phone.Value)
	assert.Equal(t, ConfidenceLow, result.Phone.Confidence)
}

func TestFallback_UnlabeledName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableFallback = true
	e := New(cfg)

	result, err := e.Extract("prepared for Jane Doe last week")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result.Name.Value)
	assert.Equal(t, ConfidenceLow, result.Name.Confidence)
}

func TestFallback_UnlabeledAddress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableFallback = true
	e := New(cfg)

	result, err := e.Extract("deliver to 12 Oak Street, Springfield, IL 62704 please")
	require.NoError(t, err)

	assert.Equal(t, ConfidenceLow, result.Address.Confidence)
	assert.Contains(t, result.Address.Value, "12 Oak Street")
}

func TestFallback_NeverOverridesLabeledMatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableFallback = true
	e := New(cfg)

	result, err := e.Extract("Name: Jane Doe\nsigned by Robert Smith")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result.Name.Value)
	assert.Equal(t, ConfidenceFound, result.Name.Confidence)
}

func TestFallback_NoMatches(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableFallback = true
	e := New(cfg)

	result, err := e.Extract("nothing of interest in lower case text")
	require.NoError(t, err)

	assert.Equal(t, ConfidenceNotFound, result.Name.Confidence)
	assert.Equal(t, ConfidenceNotFound, result.Phone.Confidence)
	assert.Equal(t, ConfidenceNotFound, result.Address.Confidence)
	assert.Equal(t, StatusFailed, result.Status)
}
