package abi

import "errors"

// Calling identifies where a native function expects its receiver and
// arguments.
type Calling int

const (
	Calling_Cdecl Calling = iota
	Calling_Stdcall
	Calling_Fastcall
	Calling_Thiscall
)

var (
	ErrCallingUnsupported = errors.New("calling unsupported")
	ErrBadFrame           = errors.New("frame does not cover the argument slots")
)

func (c Calling) String() string {
	switch c {
	case Calling_Cdecl:
		return "cdecl"
	case Calling_Stdcall:
		return "stdcall"
	case Calling_Fastcall:
		return "fastcall"
	case Calling_Thiscall:
		return "thiscall"
	}
	return "unknown"
}
