package ui

// State is the recommendation flow state. Exactly one holds at a time.
//
//	idle -> loading -> results | error -> loading -> ...
type State int

const (
	StateIdle State = iota
	StateLoading
	StateResults
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateResults:
		return "results"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Visibility says which output regions are drawn.
type Visibility struct {
	Loading bool
	Results bool
	Error   bool
}

// Visibility is the only place that decides which of the loading, results
// and error regions are shown. At most one is ever true.
func (s State) Visibility() Visibility {
	switch s {
	case StateLoading:
		return Visibility{Loading: true}
	case StateResults:
		return Visibility{Results: true}
	case StateError:
		return Visibility{Error: true}
	default:
		return Visibility{}
	}
}
