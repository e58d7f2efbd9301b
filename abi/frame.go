package abi

import "github.com/uldane/microhook/memory"

// Frame captures the raw conventional slots of one intercepted
// invocation: the receiver register, the scratch register carried
// through untouched, and the stack pointer with a window over the
// stack. Nothing is copied out of the host's memory.
type Frame struct {
	Receiver uint64 // receiver register (ECX under thiscall/fastcall)
	Scratch  uint64 // pass-through scratch register (EDX)
	SP       uint64 // stack pointer at entry, return address on top
	Stack    *memory.Window
}

// Call is the typed record of one intercepted invocation. The Params and
// Ret addresses stay references into memory the host process owns; the
// record itself lives no longer than the detour body.
type Call struct {
	Receiver uint64 // object the function was invoked on
	Method   uint64 // function descriptor identity
	Params   uint64 // parameter block
	Ret      uint64 // return value slot
}

// Conv describes the dispatcher contract of an intercepted function: the
// convention that places the receiver, with the remaining logical
// arguments (method descriptor, parameter block, return slot) laid out
// per the callee's own stack discipline.
type Conv struct {
	Arch    memory.Arch
	Calling Calling
}

// Decode reconstructs the typed call from a captured frame. Stack slots
// are read through the frame's bounds-checked window; a frame whose
// stack does not cover the argument slots fails with ErrBadFrame.
func (c Conv) Decode(f Frame) (Call, error) {
	ptr := c.Arch.PtrSize()
	if ptr == 0 {
		return Call{}, memory.ErrArchUnsupported
	}
	if f.Stack == nil {
		return Call{}, ErrBadFrame
	}
	base, err := f.Stack.Offset(f.SP)
	if err != nil {
		return Call{}, ErrBadFrame
	}
	// slot 0 is the return address pushed by the intercepted call.
	slot := func(i int) uint64 {
		v, serr := f.Stack.Uint(base+(1+i)*ptr, ptr)
		if serr != nil {
			err = ErrBadFrame
		}
		return v
	}
	var call Call
	switch c.Calling {
	case Calling_Fastcall, Calling_Thiscall:
		call.Receiver = f.Receiver
		call.Method = slot(0)
		call.Params = slot(1)
		call.Ret = slot(2)
	case Calling_Cdecl, Calling_Stdcall:
		call.Receiver = slot(0)
		call.Method = slot(1)
		call.Params = slot(2)
		call.Ret = slot(3)
	default:
		return Call{}, ErrCallingUnsupported
	}
	if err != nil {
		return Call{}, err
	}
	return call, nil
}
