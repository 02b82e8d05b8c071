package otel

import (
	"os"
	"sync/atomic"
)

var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv("MOVIEREC_TRACE") != "")
}

// TraceEnabled reports whether MOVIEREC_TRACE is set. When true the UI logs
// every message it receives.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

func setTraceEnabled(v bool) {
	traceEnabled.Store(v)
}
