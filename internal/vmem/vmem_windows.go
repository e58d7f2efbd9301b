package vmem

import "golang.org/x/sys/windows"

// Writable flips the span to execute-read-write and returns a function
// that restores the exact prior protection reported by the kernel.
func Writable(addr uint64, size int) (func() error, error) {
	var old uint32
	err := windows.VirtualProtect(uintptr(addr), uintptr(size), windows.PAGE_EXECUTE_READWRITE, &old)
	if err != nil {
		return nil, err
	}
	return func() error {
		var scratch uint32
		return windows.VirtualProtect(uintptr(addr), uintptr(size), old, &scratch)
	}, nil
}
