// Package otel is the diagnostic channel for movierec.
//
// Events are typed structs written as JSONL lines by an async Logger. An
// optional RingBuffer keeps the most recent events in memory for the debug
// overlay. Nothing in here is user-visible; failures that the UI swallows
// (autocomplete errors, stale responses) are recorded here instead.
package otel

import (
	"encoding/json"
	"time"
)

// Level is event severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind is "<subsystem>.<action>".
type EventKind string

const (
	// Autocomplete
	KindSuggestDebounce EventKind = "suggest.debounce"
	KindSuggestStart    EventKind = "suggest.start"
	KindSuggestComplete EventKind = "suggest.complete"
	KindSuggestError    EventKind = "suggest.error"
	KindSuggestStale    EventKind = "suggest.stale"
	KindSuggestSelect   EventKind = "suggest.select"

	// Recommendations
	KindRecommendStart    EventKind = "recommend.start"
	KindRecommendComplete EventKind = "recommend.complete"
	KindRecommendError    EventKind = "recommend.error"
	KindRecommendStale    EventKind = "recommend.stale"

	// History store
	KindHistoryRecord EventKind = "history.record"
	KindHistoryError  EventKind = "history.error"

	// UI
	KindStateChange EventKind = "ui.state"
	KindMouse       EventKind = "ui.mouse"

	// System
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"

	// Message tracing, only when MOVIEREC_TRACE is set
	KindMsgReceived EventKind = "trace.msg_received"
)

// Event is one diagnostic record. Only Kind is required; Time is filled in
// by the Logger when zero.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"` // "ui", "api", "history", "main"
	SessionID string         `json:"session_id,omitempty"`
	Seq       uint64         `json:"seq,omitempty"` // request sequence number
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"`
	Count     int            `json:"count,omitempty"`
	Status    int            `json:"status,omitempty"` // HTTP status when known
	Query     string         `json:"query,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON converts Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	a := alias(e)
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
