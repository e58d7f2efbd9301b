package hook_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/uldane/microhook/hook"
	"github.com/uldane/microhook/memory"
)

func TestJumpPatch(t *testing.T) {
	tests := []struct {
		name string
		arch memory.Arch
		from uint64
		to   uint64
		want []byte
	}{
		{
			name: "x86-forward",
			arch: memory.ARCH_X86,
			from: 0x1000,
			to:   0x2000,
			want: []byte{0xE9, 0xFB, 0x0F, 0x00, 0x00},
		},
		{
			name: "x86-backward",
			arch: memory.ARCH_X86,
			from: 0x2000,
			to:   0x1000,
			want: []byte{0xE9, 0xFB, 0xEF, 0xFF, 0xFF},
		},
		{
			name: "x86-wraps-address-space",
			arch: memory.ARCH_X86,
			from: 0xFFFFFFF0,
			to:   0x10,
			// rel = 0x10 - 0xFFFFFFF5 wraps to 0x1B
			want: []byte{0xE9, 0x1B, 0x00, 0x00, 0x00},
		},
		{
			name: "x64-near",
			arch: memory.ARCH_X86_64,
			from: 0x7FFE00001000,
			to:   0x7FFE00002000,
			want: []byte{0xE9, 0xFB, 0x0F, 0x00, 0x00},
		},
		{
			name: "x64-far",
			arch: memory.ARCH_X86_64,
			from: 0x1000,
			to:   0x7FFE11223344,
			want: []byte{
				0x49, 0xBB, 0x44, 0x33, 0x22, 0x11, 0xFE, 0x7F, 0x00, 0x00, // mov r11, to
				0x41, 0xFF, 0xE3, // jmp r11
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hook.JumpPatch(tt.arch, tt.from, tt.to)
			if err != nil {
				t.Fatalf("JumpPatch: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("patch\n got % X\nwant % X", got, tt.want)
			}
		})
	}
}

func TestJumpPatchUnknownArch(t *testing.T) {
	if _, err := hook.JumpPatch(memory.ARCH_UNKNOWN, 0, 0); !errors.Is(err, memory.ErrArchUnsupported) {
		t.Fatalf("error = %v", err)
	}
}
