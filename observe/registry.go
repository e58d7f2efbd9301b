package observe

import (
	"sync"
	"sync/atomic"

	"github.com/uldane/microhook/abi"
)

// Key deduplicates observed calls. The function descriptor identity is
// the natural key: each distinct function is reported once no matter how
// many threads invoke it.
type Key uint64

func KeyOf(c abi.Call) Key {
	return Key(c.Method)
}

// Registry is the deduplicating set shared by all concurrent detour
// invocations. Observe is a single atomic check-and-insert, so exactly
// one caller wins the first observation of a key even under contention.
type Registry struct {
	seen sync.Map // Key -> struct{}
	n    atomic.Int64
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Observe inserts key if absent and reports whether this call was the
// first observation of it.
func (r *Registry) Observe(key Key) bool {
	_, loaded := r.seen.LoadOrStore(key, struct{}{})
	if !loaded {
		r.n.Add(1)
	}
	return !loaded
}

// Len is the count of distinct keys observed so far.
func (r *Registry) Len() int {
	return int(r.n.Load())
}

// Reset forgets all observations. Meant for the boundary between two
// installations, not for use concurrent with Observe.
func (r *Registry) Reset() {
	r.seen.Range(func(k, _ any) bool {
		r.seen.Delete(k)
		return true
	})
	r.n.Store(0)
}
