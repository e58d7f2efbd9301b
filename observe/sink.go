package observe

import (
	"fmt"

	"github.com/apex/log"

	"github.com/uldane/microhook/abi"
)

// Sink receives one record per intercepted invocation together with
// whether this was the first observation of its key. Sinks run inside
// the detour body on the host's threads and must not block.
type Sink interface {
	Emit(c abi.Call, first bool)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(abi.Call, bool)

func (f SinkFunc) Emit(c abi.Call, first bool) {
	f(c, first)
}

// NewLogSink renders observations as structured log entries: first
// observations at info, repeats at debug.
func NewLogSink(l log.Interface) Sink {
	return &logSink{l}
}

type logSink struct {
	log log.Interface
}

func (s *logSink) Emit(c abi.Call, first bool) {
	entry := s.log.WithFields(log.Fields{
		"receiver": fmt.Sprintf("%#x", c.Receiver),
		"method":   fmt.Sprintf("%#x", c.Method),
		"params":   fmt.Sprintf("%#x", c.Params),
		"ret":      fmt.Sprintf("%#x", c.Ret),
	})
	if first {
		entry.Info("call observed")
	} else {
		entry.Debug("call")
	}
}

// Observer composes a registry and a sink into a detour body: every
// invocation is emitted, tagged with its first-observation flag.
func Observer(reg *Registry, sink Sink) func(abi.Call) {
	return func(c abi.Call) {
		first := reg.Observe(KeyOf(c))
		if sink != nil {
			sink.Emit(c, first)
		}
	}
}
