package memory

import "github.com/uldane/microhook/internal/vmem"

// Restore undoes a protection change made by a Protector.
type Restore func() error

// Protector makes a span of the address space writable for patching and
// hands back the way to restore the prior protection.
type Protector interface {
	Writable(addr uint64, size int) (Restore, error)
}

// NopProtector serves windows the caller already owns writable, such as
// scratch buffers in tests.
type NopProtector struct{}

func (NopProtector) Writable(uint64, int) (Restore, error) {
	return func() error { return nil }, nil
}

// PageProtector flips page protection through the operating system.
func PageProtector() Protector {
	return pageProtector{}
}

type pageProtector struct{}

func (pageProtector) Writable(addr uint64, size int) (Restore, error) {
	restore, err := vmem.Writable(addr, size)
	if err != nil {
		return nil, err
	}
	return Restore(restore), nil
}
