//go:build !unix && !windows

package vmem

import "errors"

var errUnsupported = errors.New("page protection unsupported on this platform")

func Writable(addr uint64, size int) (func() error, error) {
	return nil, errUnsupported
}
