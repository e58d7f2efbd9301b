package abi

import (
	"encoding/binary"

	"github.com/uldane/microhook/memory"
)

// EntryThunk emits the machine-code bridge placed at a hook's entry.
// It converts an invocation arriving under the intercepted function's
// convention (receiver in ECX, scratch in EDX, three stack arguments,
// callee-cleaned) into a plain call of dispatcher with five explicit
// arguments: receiver, scratch, method, params, ret. Only bytes are
// produced; the caller places them in executable memory.
func EntryThunk(arch memory.Arch, dispatcher uint64) ([]byte, error) {
	switch arch {
	case memory.ARCH_X86:
		// push the three stack args back-to-front, then the registers,
		// call the dispatcher (stdcall, cleans its five), and return
		// clearing the callee's 12 bytes like the original would.
		code := []byte{
			0xFF, 0x74, 0x24, 0x0C, // push [esp+0x0C]   ; ret slot
			0xFF, 0x74, 0x24, 0x0C, // push [esp+0x0C]   ; params
			0xFF, 0x74, 0x24, 0x0C, // push [esp+0x0C]   ; method
			0x52,                   // push edx
			0x51,                   // push ecx
			0xB8, 0, 0, 0, 0, // mov eax, dispatcher
			0xFF, 0xD0, // call eax
			0xC2, 0x0C, 0x00, // ret 0x0C
		}
		binary.LittleEndian.PutUint32(code[15:], uint32(dispatcher))
		return code, nil
	case memory.ARCH_X86_64:
		// The four register arguments already sit where the dispatcher
		// expects them; only the fifth stack argument moves into the new
		// frame. sub 0x38 keeps the stack 16-byte aligned at the call.
		code := []byte{
			0x48, 0x83, 0xEC, 0x38, // sub rsp, 0x38
			0x48, 0x8B, 0x44, 0x24, 0x60, // mov rax, [rsp+0x60]  ; ret slot
			0x48, 0x89, 0x44, 0x24, 0x20, // mov [rsp+0x20], rax
			0x48, 0xB8, 0, 0, 0, 0, 0, 0, 0, 0, // mov rax, dispatcher
			0xFF, 0xD0, // call rax
			0x48, 0x83, 0xC4, 0x38, // add rsp, 0x38
			0xC3, // ret
		}
		binary.LittleEndian.PutUint64(code[16:], dispatcher)
		return code, nil
	}
	return nil, memory.ErrArchUnsupported
}

// CallThunk emits the inverse bridge used to reach the saved original:
// a plain five-argument call (receiver, scratch, method, params, ret)
// is folded back into the intercepted function's convention before
// jumping into the original implementation.
func CallThunk(arch memory.Arch, original uint64) ([]byte, error) {
	switch arch {
	case memory.ARCH_X86:
		code := []byte{
			0xFF, 0x74, 0x24, 0x14, // push [esp+0x14]   ; ret slot
			0xFF, 0x74, 0x24, 0x14, // push [esp+0x14]   ; params
			0xFF, 0x74, 0x24, 0x14, // push [esp+0x14]   ; method
			0x8B, 0x4C, 0x24, 0x10, // mov ecx, [esp+0x10]
			0x8B, 0x54, 0x24, 0x14, // mov edx, [esp+0x14]
			0xB8, 0, 0, 0, 0, // mov eax, original
			0xFF, 0xD0, // call eax          ; callee pops its 12
			0xC2, 0x14, 0x00, // ret 0x14    ; clean our five
		}
		binary.LittleEndian.PutUint32(code[20:], uint32(original))
		return code, nil
	case memory.ARCH_X86_64:
		code := []byte{
			0x48, 0x83, 0xEC, 0x38, // sub rsp, 0x38
			0x48, 0x8B, 0x44, 0x24, 0x60, // mov rax, [rsp+0x60]
			0x48, 0x89, 0x44, 0x24, 0x20, // mov [rsp+0x20], rax
			0x48, 0xB8, 0, 0, 0, 0, 0, 0, 0, 0, // mov rax, original
			0xFF, 0xD0, // call rax
			0x48, 0x83, 0xC4, 0x38, // add rsp, 0x38
			0xC3, // ret
		}
		binary.LittleEndian.PutUint64(code[16:], original)
		return code, nil
	}
	return nil, memory.ErrArchUnsupported
}
