// Package ui is the Bubble Tea front end for movierec.
package ui

import (
	"time"

	"github.com/abelbrown/movierec/internal/api"
)

// SuggestionsLoaded is sent when a /search request finishes.
type SuggestionsLoaded struct {
	Seq    uint64 // debouncer generation the request was issued under
	Query  string
	Titles []string
	Dur    time.Duration
	Err    error
}

// RecommendationsLoaded is sent when a /recommend request finishes.
type RecommendationsLoaded struct {
	Seq     uint64 // recommendation sequence the request was issued under
	Movie   string
	Results []api.Recommendation
	Dur     time.Duration
	Err     error
}

// HistoryRecorded is sent after a successful lookup was written to history.
type HistoryRecorded struct {
	Movie string
	Err   error
}
