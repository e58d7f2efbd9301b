package memory

import "errors"

var (
	ErrEmptyWindow     = errors.New("empty window")
	ErrWindowBounds    = errors.New("window exceeds address width")
	ErrOutOfWindow     = errors.New("access outside window")
	ErrArchUnsupported = errors.New("arch unsupported")
	ErrModuleNotFound  = errors.New("module not found")
)
