package abi

// Invoker forwards a captured frame to the original implementation with
// every register and stack slot passed through byte for byte.
type Invoker func(Frame) error

// Detour composes one intercepted invocation: decode the frame per the
// convention, run the observation side effect, forward to the original.
// Handle is invoked concurrently from however many host threads call
// the hooked function, so Body must be reentrant and must not block.
type Detour struct {
	Conv     Conv
	Body     func(Call)
	Original Invoker
}

// Handle runs one invocation. The forward happens even when the frame
// fails to decode, so callers of the hooked function observe no
// behavioral difference beyond the observation side effect.
func (d *Detour) Handle(f Frame) error {
	call, err := d.Conv.Decode(f)
	if err == nil && d.Body != nil {
		d.Body(call)
	}
	if d.Original != nil {
		if ferr := d.Original(f); ferr != nil {
			return ferr
		}
	}
	return err
}

// Bridge composes observation and forward for the slot-based entry used
// by a live hook, where the emitted thunk has already unpacked the
// convention into plain arguments.
func Bridge(body func(Call), forward func(Call, uint64) error) func(Call, uint64) error {
	return func(c Call, scratch uint64) error {
		if body != nil {
			body(c)
		}
		if forward != nil {
			return forward(c, scratch)
		}
		return nil
	}
}
