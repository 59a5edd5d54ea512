package engine

import "errors"

// ErrEmptyDocument reports that the input text contained no non-blank
// lines after normalization. It is the engine's only hard failure;
// callers surface it as a failed extraction rather than a crash.
var ErrEmptyDocument = errors.New("document contains no extractable text")
