package memory

import (
	"unsafe"
)

// Window is a bounds-checked view over a readable region of the current
// process's address space. base is the virtual address of the first byte.
// All accessors check offsets against the window instead of dereferencing
// raw addresses, and none of them assume any alignment.
type Window struct {
	arch Arch
	base uint64
	data []byte
}

// NewWindow wraps caller-supplied bytes as a window. The region must be
// non-empty and must fit the arch's address width.
func NewWindow(arch Arch, base uint64, data []byte) (*Window, error) {
	if len(data) == 0 {
		return nil, ErrEmptyWindow
	}
	mask := arch.Mask()
	if mask == 0 {
		return nil, ErrArchUnsupported
	}
	if base > mask || uint64(len(data)-1) > mask-base {
		return nil, ErrWindowBounds
	}
	return &Window{arch, base, data}, nil
}

// Live maps size bytes of the process's own address space starting at
// base. The caller must know the region is mapped readable, typically
// from module information (see ModuleWindow).
func Live(arch Arch, base uint64, size int) (*Window, error) {
	if size <= 0 {
		return nil, ErrEmptyWindow
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(base))), size)
	return NewWindow(arch, base, data)
}

func (w *Window) Arch() Arch {
	return w.arch
}

func (w *Window) Base() uint64 {
	return w.base
}

func (w *Window) Size() int {
	return len(w.data)
}

// End returns the address one past the last byte.
func (w *Window) End() uint64 {
	return w.base + uint64(len(w.data))
}

// Addr returns the address of the byte at off. off is not required to be
// inside the window; the one-past-the-end address is meaningful to the
// displacement resolver.
func (w *Window) Addr(off int) uint64 {
	return w.base + uint64(off)
}

// Contains reports whether addr falls inside the window.
func (w *Window) Contains(addr uint64) bool {
	return addr-w.base < uint64(len(w.data))
}

// Offset converts an absolute address back to a window offset.
func (w *Window) Offset(addr uint64) (int, error) {
	if !w.Contains(addr) {
		return 0, ErrOutOfWindow
	}
	return int(addr - w.base), nil
}

// Bytes returns the n bytes at off, aliased, not copied.
func (w *Window) Bytes(off, n int) ([]byte, error) {
	if off < 0 || n <= 0 || off > len(w.data)-n {
		return nil, ErrOutOfWindow
	}
	return w.data[off : off+n], nil
}

// ReadAt implements io.ReaderAt over the window. Short reads are not
// performed: a read crossing the window edge fails whole.
func (w *Window) ReadAt(b []byte, off int64) (int, error) {
	src, err := w.Bytes(int(off), len(b))
	if err != nil {
		return 0, err
	}
	return copy(b, src), nil
}

// WriteAt implements io.WriterAt with the same all-or-nothing rule.
func (w *Window) WriteAt(b []byte, off int64) (int, error) {
	dst, err := w.Bytes(int(off), len(b))
	if err != nil {
		return 0, err
	}
	return copy(dst, b), nil
}

// Uint reads a little-endian unsigned integer of 1 to 8 bytes at off.
// The read is byte-wise and carries no alignment requirement.
func (w *Window) Uint(off, width int) (uint64, error) {
	if width <= 0 || width > 8 {
		return 0, ErrOutOfWindow
	}
	b, err := w.Bytes(off, width)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := width - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

func (w *Window) Uint8(off int) (uint8, error) {
	v, err := w.Uint(off, 1)
	return uint8(v), err
}

func (w *Window) Uint16(off int) (uint16, error) {
	v, err := w.Uint(off, 2)
	return uint16(v), err
}

func (w *Window) Uint32(off int) (uint32, error) {
	v, err := w.Uint(off, 4)
	return uint32(v), err
}

func (w *Window) Uint64(off int) (uint64, error) {
	return w.Uint(off, 8)
}

func (w *Window) Int32(off int) (int32, error) {
	v, err := w.Uint(off, 4)
	return int32(v), err
}
