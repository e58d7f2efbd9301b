package memory

import "fmt"

// Arch identifies the instruction set of the address space a window
// describes. Address arithmetic wraps at the arch's pointer width.
type Arch int

const (
	ARCH_UNKNOWN Arch = iota
	ARCH_X86
	ARCH_X86_64
)

// PtrSize returns the pointer width in bytes, or 0 for ARCH_UNKNOWN.
func (a Arch) PtrSize() int {
	switch a {
	case ARCH_X86:
		return 4
	case ARCH_X86_64:
		return 8
	}
	return 0
}

// Mask returns the address-width mask. Modular address arithmetic in the
// owning process's space is (x & Mask).
func (a Arch) Mask() uint64 {
	switch a {
	case ARCH_X86:
		return 1<<32 - 1
	case ARCH_X86_64:
		return ^uint64(0)
	}
	return 0
}

func (a Arch) String() string {
	switch a {
	case ARCH_X86:
		return "x86"
	case ARCH_X86_64:
		return "x86_64"
	}
	return "unknown"
}

// ParseArch accepts the common spellings of the supported architectures.
func ParseArch(s string) (Arch, error) {
	switch s {
	case "x86", "386", "i386":
		return ARCH_X86, nil
	case "x86_64", "amd64", "x64":
		return ARCH_X86_64, nil
	}
	return ARCH_UNKNOWN, fmt.Errorf("%w: %q", ErrArchUnsupported, s)
}
