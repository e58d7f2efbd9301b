package hook_test

import (
	"fmt"

	"github.com/uldane/microhook/hook"
	"github.com/uldane/microhook/memory"
)

func ExampleGuard() {
	code := []byte{
		0x50, 0x51, 0x52, 0x8B, 0xCE,
		0xE8, 0x3D, 0x8E, 0xFF, 0xFF,
		0x5E, 0x5D, 0xC2, 0x0C, 0x00,
	}
	win, err := memory.NewWindow(memory.ARCH_X86, 0x01154BA9, code)
	if err != nil {
		panic(err)
	}
	g, err := hook.New(win, 0, 0x00500000, hook.WithProtector(memory.NopProtector{}))
	if err != nil {
		panic(err)
	}
	if err = g.Install(); err != nil {
		panic(err)
	}
	fmt.Printf("patched % X\n", code[:5])
	if err = g.Close(); err != nil {
		panic(err)
	}
	fmt.Printf("restored % X\n", code[:5])
	// Output:
	// patched E9 52 B4 3A FF
	// restored 50 51 52 8B CE
}
