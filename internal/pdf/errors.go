package pdf

import "errors"

// Failure categories surfaced to callers so they can tell an unreadable
// document apart from a refusable one. All read and validate errors wrap
// one of these or are plain request errors (bad path, wrong extension).
var (
	// ErrEncrypted reports a password-protected document.
	ErrEncrypted = errors.New("pdf is encrypted")

	// ErrScanned reports a document whose pages are images with no text layer.
	ErrScanned = errors.New("pdf contains only scanned images")

	// ErrNoText reports a document with no extractable text content.
	ErrNoText = errors.New("no text content could be extracted from pdf")

	// ErrCorrupt reports a file that cannot be parsed as a PDF.
	ErrCorrupt = errors.New("invalid pdf file")
)
