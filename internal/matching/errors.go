package matching

import (
	"errors"
	"fmt"
)

var (
	ErrMissingServiceType = errors.New("service type is required")
	ErrCoupleNotFound     = errors.New("couple not found")
)

// StructuralError marks a retrieval failure caused by a schema mismatch
// (missing relation or column). It is the only error kind that triggers
// the degraded retrieval path; everything else is fatal for the request.
type StructuralError struct {
	Op  string
	Err error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural retrieval failure in %s: %v", e.Op, e.Err)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// IsStructural reports whether err is (or wraps) a StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

// RetrievalError is any non-structural data-store failure during
// retrieval or enrichment. Surfaced to the caller as a 500, not retried.
type RetrievalError struct {
	Op  string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed in %s: %v", e.Op, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }
