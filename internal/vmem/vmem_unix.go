//go:build unix

package vmem

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

var pageSize = uint64(unix.Getpagesize())

// Writable flips the pages covering [addr, addr+size) to rwx and returns
// a function that puts them back to r-x. mprotect cannot report the prior
// protection, so restoration assumes code pages.
func Writable(addr uint64, size int) (func() error, error) {
	start, length := pageSpan(addr, uint64(size))
	if err := protect(start, length, unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC); err != nil {
		return nil, err
	}
	return func() error {
		return protect(start, length, unix.PROT_READ|unix.PROT_EXEC)
	}, nil
}

func pageSpan(addr, size uint64) (uint64, uint64) {
	start := pageSize * (addr / pageSize)
	length := pageSize * ((addr + size + pageSize - 1 - start) / pageSize)
	return start, length
}

func protect(start, length uint64, prot int) error {
	for i := uint64(0); i < length; i += pageSize {
		page := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(start+i))), pageSize)
		if err := unix.Mprotect(page, prot); err != nil {
			return err
		}
	}
	return nil
}
