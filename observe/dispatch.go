package observe

import "github.com/uldane/microhook/abi"

// Dispatcher routes calls to handlers by function descriptor identity,
// with an optional fallback for everything else. Register all handlers
// before the hook goes live; Dispatch is then safe from any number of
// host threads because the routing table is no longer written.
type Dispatcher struct {
	handlers map[uint64]func(abi.Call)
	fallback func(abi.Call)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[uint64]func(abi.Call))}
}

// Handle registers fn for the given function descriptor identity.
func (d *Dispatcher) Handle(method uint64, fn func(abi.Call)) {
	d.handlers[method] = fn
}

// Fallback registers fn for calls no handler claims.
func (d *Dispatcher) Fallback(fn func(abi.Call)) {
	d.fallback = fn
}

// Dispatch routes one call. Unrouted calls without a fallback are
// dropped silently; the forward to the original is not the dispatcher's
// concern.
func (d *Dispatcher) Dispatch(c abi.Call) {
	if fn, ok := d.handlers[c.Method]; ok {
		fn(c)
		return
	}
	if d.fallback != nil {
		d.fallback(c)
	}
}
