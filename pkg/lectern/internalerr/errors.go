package internalerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrMissingInput  = errors.New("missing input")
	ErrExtraction    = errors.New("extraction failed")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MissingInputError reports an absent reference document or an empty corpus.
// It is fatal and raised before any document is processed.
type MissingInputError struct {
	What string // "reference" or "corpus"
	Path string
}

func (e *MissingInputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("missing %s", e.What)
	}
	return fmt.Sprintf("missing %s: %s", e.What, e.Path)
}

// Is lets errors.Is(err, ErrMissingInput) match.
func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

// ExtractionError reports a document that could not be opened or parsed.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("extract %s: %v", e.Path, ErrExtraction)
	}
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrExtraction) match.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}
