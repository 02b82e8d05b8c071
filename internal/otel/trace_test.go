package otel

import "testing"

func TestTraceToggle(t *testing.T) {
	orig := TraceEnabled()
	t.Cleanup(func() { setTraceEnabled(orig) })

	for _, want := range []bool{true, false} {
		setTraceEnabled(want)
		if got := TraceEnabled(); got != want {
			t.Errorf("TraceEnabled() = %v after setTraceEnabled(%v)", got, want)
		}
	}
}
