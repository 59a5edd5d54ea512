package extractor

import (
	"errors"
	"fmt"

	"github.com/docuform/contact-extractor/internal/pdf"
)

// Upstream failure reasons carried by UpstreamError
const (
	ReasonEncrypted  = "encrypted"
	ReasonScanned    = "scanned"
	ReasonCorrupt    = "corrupt"
	ReasonUnreadable = "unreadable"
)

// UpstreamError reports that the PDF collaborator could not produce text
// for a document. The extraction engine never ran.
type UpstreamError struct {
	Reason string
	Path   string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("cannot extract text from %s: %v", e.Path, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// newUpstreamError classifies a pdf package failure into a reason category
func newUpstreamError(path string, err error) *UpstreamError {
	reason := ReasonUnreadable
	switch {
	case errors.Is(err, pdf.ErrEncrypted):
		reason = ReasonEncrypted
	case errors.Is(err, pdf.ErrScanned):
		reason = ReasonScanned
	case errors.Is(err, pdf.ErrCorrupt):
		reason = ReasonCorrupt
	}
	return &UpstreamError{Reason: reason, Path: path, Err: err}
}

// MalformedOutputError reports that a built record violated the output
// contract. This is an internal invariant failure, not an input problem.
type MalformedOutputError struct {
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed extraction record: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}
