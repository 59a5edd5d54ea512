package engine

// FieldKind identifies one of the three extraction targets
type FieldKind string

const (
	FieldName    FieldKind = "name"
	FieldPhone   FieldKind = "phone"
	FieldAddress FieldKind = "address"
)

// AllFieldKinds returns the extraction targets in priority order
func AllFieldKinds() []FieldKind {
	return []FieldKind{FieldName, FieldPhone, FieldAddress}
}

// IsValid reports whether the kind is one of the known targets
func (k FieldKind) IsValid() bool {
	switch k {
	case FieldName, FieldPhone, FieldAddress:
		return true
	}
	return false
}

// Confidence describes how certain the engine is about one field.
// "not-found" is the normal outcome for an unlabeled field and is never
// an error; "low-confidence" means a value was captured but failed the
// field's plausibility checks.
type Confidence string

const (
	ConfidenceFound    Confidence = "found"
	ConfidenceLow      Confidence = "low-confidence"
	ConfidenceNotFound Confidence = "not-found"
)

// IsValid reports whether the confidence is one of the known indicators
func (c Confidence) IsValid() bool {
	switch c {
	case ConfidenceFound, ConfidenceLow, ConfidenceNotFound:
		return true
	}
	return false
}

// Status summarizes an extraction across all three fields
type Status string

const (
	StatusComplete Status = "complete"
	StatusPartial  Status = "partial"
	StatusFailed   Status = "failed"
)

// IsValid reports whether the status is one of the known values
func (s Status) IsValid() bool {
	switch s {
	case StatusComplete, StatusPartial, StatusFailed:
		return true
	}
	return false
}

// ExtractedField is the caller-facing outcome for one field kind. Value
// is empty when Confidence is "not-found".
type ExtractedField struct {
	Value      string
	Confidence Confidence
}

// Result aggregates the three extracted fields and the overall status.
// It is immutable once returned; best-effort per-field values are always
// populated even when Status is "partial" or "failed".
type Result struct {
	Name    ExtractedField
	Phone   ExtractedField
	Address ExtractedField
	Status  Status
}

// Field returns the extracted field for the given kind
func (r *Result) Field(kind FieldKind) ExtractedField {
	switch kind {
	case FieldName:
		return r.Name
	case FieldPhone:
		return r.Phone
	case FieldAddress:
		return r.Address
	}
	return ExtractedField{Confidence: ConfidenceNotFound}
}

// assemble combines the per-field outcomes into the overall result.
// Status policy: complete when all three fields are found, partial when
// at least one is, failed otherwise.
func assemble(name, phone, address ExtractedField) *Result {
	found := 0
	for _, f := range []ExtractedField{name, phone, address} {
		if f.Confidence == ConfidenceFound {
			found++
		}
	}

	status := StatusFailed
	switch {
	case found == 3:
		status = StatusComplete
	case found >= 1:
		status = StatusPartial
	}

	return &Result{
		Name:    name,
		Phone:   phone,
		Address: address,
		Status:  status,
	}
}
