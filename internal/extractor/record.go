package extractor

import (
	"time"

	"github.com/docuform/contact-extractor/internal/engine"
)

// FieldEntry is one extracted field in the serialized record. Value is null
// exactly when Confidence is "not-found".
type FieldEntry struct {
	Value      *string `json:"value"`
	Confidence string  `json:"confidence"`
}

// Metadata describes the processed document
type Metadata struct {
	FileName             string `json:"file_name,omitempty"`
	FileSize             int64  `json:"file_size,omitempty"`
	Pages                int    `json:"pages,omitempty"`
	ProcessedAt          string `json:"processed_at"`
	ExtractionSuccessful bool   `json:"extraction_successful"`
}

// Record is the serializable extraction outcome for one document
type Record struct {
	Name     FieldEntry `json:"name"`
	Phone    FieldEntry `json:"phone"`
	Address  FieldEntry `json:"address"`
	Status   string     `json:"status"`
	Metadata Metadata   `json:"metadata"`
}

// Field returns the entry for the given kind
func (r *Record) Field(kind engine.FieldKind) FieldEntry {
	switch kind {
	case engine.FieldName:
		return r.Name
	case engine.FieldPhone:
		return r.Phone
	case engine.FieldAddress:
		return r.Address
	}
	return FieldEntry{}
}

func newFieldEntry(f engine.ExtractedField) FieldEntry {
	entry := FieldEntry{Confidence: string(f.Confidence)}
	if f.Confidence != engine.ConfidenceNotFound {
		value := f.Value
		entry.Value = &value
	}
	return entry
}

// buildRecord assembles the record for an engine result. The metadata's
// timestamp and success flag are filled here so every record carries them.
func buildRecord(result *engine.Result, meta Metadata) *Record {
	meta.ProcessedAt = time.Now().UTC().Format(time.RFC3339)
	meta.ExtractionSuccessful = result.Status != engine.StatusFailed

	return &Record{
		Name:     newFieldEntry(result.Name),
		Phone:    newFieldEntry(result.Phone),
		Address:  newFieldEntry(result.Address),
		Status:   string(result.Status),
		Metadata: meta,
	}
}

// ErrorRecord is the single-entry shape written in place of a Record when
// processing fails hard
func ErrorRecord(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}
