package pattern

import "errors"

var (
	ErrEmptyPattern      = errors.New("empty pattern")
	ErrBadToken          = errors.New("bad pattern token")
	ErrNonDiscriminating = errors.New("pattern is all wildcards")
	ErrLengthMismatch    = errors.New("pattern and mask length mismatch")
)
