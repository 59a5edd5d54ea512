// Package engine implements label-anchored extraction of contact fields
// (name, phone, address) from document text. Values are located by the
// human-written labels that precede them, captured, normalized per field
// kind, and reported with a per-field confidence indicator.
package engine

// Config holds the tunable extraction thresholds
type Config struct {
	// PhoneMinDigits and PhoneMaxDigits bound the plausible digit count
	// for a phone candidate
	PhoneMinDigits int
	PhoneMaxDigits int

	// AddressMinWords is the minimum word count for an address candidate
	AddressMinWords int

	// NameMaxLength caps the rune length of a name candidate
	NameMaxLength int

	// MaxContinuationLines bounds multi-line address capture
	MaxContinuationLines int

	// EnableFallback turns on pattern-based scanning for fields that no
	// label anchored; fallback hits are always reported low-confidence
	EnableFallback bool
}

// DefaultConfig returns the standard extraction thresholds
func DefaultConfig() Config {
	return Config{
		PhoneMinDigits:       7,
		PhoneMaxDigits:       15,
		AddressMinWords:      3,
		NameMaxLength:        120,
		MaxContinuationLines: 4,
		EnableFallback:       false,
	}
}

// Engine extracts contact fields from one document's text per call. It
// holds only immutable configuration, so a single instance is safe for
// concurrent use and keeps no state between calls.
type Engine struct {
	cfg   Config
	rules []LabelRule
}

// New creates an extraction engine. Zero-valued thresholds in cfg are
// replaced with the defaults.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.PhoneMinDigits <= 0 {
		cfg.PhoneMinDigits = def.PhoneMinDigits
	}
	if cfg.PhoneMaxDigits <= 0 {
		cfg.PhoneMaxDigits = def.PhoneMaxDigits
	}
	if cfg.AddressMinWords <= 0 {
		cfg.AddressMinWords = def.AddressMinWords
	}
	if cfg.NameMaxLength <= 0 {
		cfg.NameMaxLength = def.NameMaxLength
	}
	if cfg.MaxContinuationLines <= 0 {
		cfg.MaxContinuationLines = def.MaxContinuationLines
	}

	return &Engine{
		cfg:   cfg,
		rules: defaultRules(),
	}
}

// Config returns the thresholds the engine was created with
func (e *Engine) Config() Config {
	return e.cfg
}

// Extract runs the full pipeline on one document's raw text: normalize
// into logical lines, anchor labels, capture candidate values, normalize
// per field kind, and assemble the overall result. The only error is
// ErrEmptyDocument; a document that labels none of the fields is a
// normal "failed" result, not an error.
func (e *Engine) Extract(text string) (*Result, error) {
	lines, err := normalizeText(text)
	if err != nil {
		return nil, err
	}

	matches := e.scanLabels(lines)

	name := e.normalizeName(e.capture(lines, matches[FieldName]))
	phone := e.normalizePhone(e.capture(lines, matches[FieldPhone]))
	address := e.normalizeAddress(e.capture(lines, matches[FieldAddress]))

	if e.cfg.EnableFallback {
		full := joinLines(lines)
		if name.Confidence == ConfidenceNotFound {
			name = fallbackName(full)
		}
		if phone.Confidence == ConfidenceNotFound {
			phone = fallbackPhone(full)
		}
		if address.Confidence == ConfidenceNotFound {
			address = fallbackAddress(full)
		}
	}

	return assemble(name, phone, address), nil
}
