package abi

import "syscall"

// Entry wraps fn as a native-callable dispatcher for the bridge emitted
// by EntryThunk. The callback arguments mirror the thunk's layout:
// receiver, scratch, method, params, ret. fn's error cannot propagate
// to the native caller and is dropped.
func Entry(fn func(Call, uint64) error) uintptr {
	return syscall.NewCallback(func(receiver, scratch, method, params, ret uintptr) uintptr {
		_ = fn(Call{
			Receiver: uint64(receiver),
			Method:   uint64(method),
			Params:   uint64(params),
			Ret:      uint64(ret),
		}, uint64(scratch))
		return 0
	})
}

// Forward returns the forwarding half of a live detour: it reaches the
// saved original implementation through the bridge emitted by CallThunk.
func Forward(callThunk uintptr) func(Call, uint64) error {
	return func(c Call, scratch uint64) error {
		_, _, errno := syscall.SyscallN(callThunk,
			uintptr(c.Receiver), uintptr(scratch), uintptr(c.Method), uintptr(c.Params), uintptr(c.Ret))
		if errno != 0 {
			return errno
		}
		return nil
	}
}
