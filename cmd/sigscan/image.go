package main

import (
	"debug/elf"
	"debug/pe"
	"fmt"
	"io"

	"github.com/uldane/microhook/memory"
)

// codeWindow extracts the code section of a PE or ELF image as a memory
// window based at the section's mapped virtual address.
func codeWindow(path string) (*memory.Window, error) {
	if win, err := peCodeWindow(path); err == nil {
		return win, nil
	}
	win, err := elfCodeWindow(path)
	if err != nil {
		return nil, fmt.Errorf("%s: not a usable PE or ELF image: %w", path, err)
	}
	return win, nil
}

func peCodeWindow(path string) (*memory.Window, error) {
	f, err := pe.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var arch memory.Arch
	var imageBase uint64
	switch oh := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		arch = memory.ARCH_X86
		imageBase = uint64(oh.ImageBase)
	case *pe.OptionalHeader64:
		arch = memory.ARCH_X86_64
		imageBase = oh.ImageBase
	default:
		return nil, fmt.Errorf("missing optional header")
	}

	sec := f.Section(".text")
	if sec == nil {
		return nil, fmt.Errorf("no .text section")
	}
	data, err := sec.Data()
	if err != nil && err != io.EOF {
		return nil, err
	}
	return memory.NewWindow(arch, imageBase+uint64(sec.VirtualAddress), data)
}

func elfCodeWindow(path string) (*memory.Window, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var arch memory.Arch
	switch f.Machine {
	case elf.EM_386:
		arch = memory.ARCH_X86
	case elf.EM_X86_64:
		arch = memory.ARCH_X86_64
	default:
		return nil, fmt.Errorf("unsupported ELF machine: %s", f.Machine)
	}

	sec := f.Section(".text")
	if sec == nil {
		return nil, fmt.Errorf("no .text section")
	}
	data, err := sec.Data()
	if err != nil && err != io.EOF {
		return nil, err
	}
	return memory.NewWindow(arch, sec.Addr, data)
}
