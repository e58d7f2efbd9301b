package scan

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("pattern not found")
	ErrAmbiguousMatch  = errors.New("pattern matched more than once")
	ErrSiteBounds      = errors.New("displacement field outside match")
	ErrUnreadableField = errors.New("displacement field outside window")
)

// AmbiguousMatchError carries the first two addresses a supposedly unique
// pattern matched at. A second match means the signature no longer
// discriminates in this binary.
type AmbiguousMatchError struct {
	First, Second uint64
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("pattern matched at %#x and %#x", e.First, e.Second)
}

func (e *AmbiguousMatchError) Unwrap() error {
	return ErrAmbiguousMatch
}
