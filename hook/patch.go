package hook

import (
	"encoding/binary"
	"math"

	"golang.org/x/arch/x86/x86asm"

	"github.com/uldane/microhook/memory"
)

const jmpRel32Len = 5

// JumpPatch emits the control transfer written over a target entry:
// JMP rel32 when the displacement fits, the MOV R11 indirect form for
// 64-bit targets further away. The displacement is computed relative to
// the end of the JMP instruction and wraps at the address width.
func JumpPatch(arch memory.Arch, from, to uint64) ([]byte, error) {
	switch arch {
	case memory.ARCH_X86:
		rel := uint32(to) - uint32(from) - jmpRel32Len
		p := make([]byte, jmpRel32Len)
		p[0] = 0xE9
		binary.LittleEndian.PutUint32(p[1:], rel)
		return p, nil
	case memory.ARCH_X86_64:
		rel := int64(to - from - jmpRel32Len)
		if rel >= math.MinInt32 && rel <= math.MaxInt32 {
			p := make([]byte, jmpRel32Len)
			p[0] = 0xE9
			binary.LittleEndian.PutUint32(p[1:], uint32(rel))
			return p, nil
		}
		p := make([]byte, 13)
		p[0], p[1] = 0x49, 0xBB // mov r11, to
		binary.LittleEndian.PutUint64(p[2:], to)
		p[10], p[11], p[12] = 0x41, 0xFF, 0xE3 // jmp r11
		return p, nil
	}
	return nil, memory.ErrArchUnsupported
}

// coverLength walks instruction boundaries from the start of code until
// at least n bytes are covered, and returns the covered length. It fails
// when decoding stops early, which would mean the patch cuts an
// instruction whose tail keeps executing on other threads.
func coverLength(code []byte, mode, n int) (int, error) {
	total := 0
	for total < n {
		inst, err := x86asm.Decode(code[total:], mode)
		if err != nil {
			return 0, err
		}
		total += inst.Len
	}
	return total, nil
}
