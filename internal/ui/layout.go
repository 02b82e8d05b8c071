package ui

// zone is what a screen row belongs to.
type zone int

const (
	zoneOutside zone = iota
	zoneInput
	zoneSuggestion
	zoneButton
)

func (z zone) String() string {
	switch z {
	case zoneInput:
		return "input"
	case zoneSuggestion:
		return "suggestion"
	case zoneButton:
		return "button"
	default:
		return "outside"
	}
}

// Fixed rows at the top of the screen. View must render exactly this shape:
//
//	row 0        header
//	row 1        blank
//	row 2        query input          \ search container
//	rows 3..3+n  suggestions (if any) /
//	row 3+n      recommend button
//
// followed by a blank row, the output region, a blank row and the status
// bar. Bubble Tea keeps only the last height lines of a taller frame, so
// the suggestion list and the output region are clamped to the terminal.
const (
	headerRow = 0
	inputRow  = 2

	// chromeRows counts every row except suggestions and output.
	chromeRows = 7
)

// layout is where the interactive rows are for the current model.
type layout struct {
	input        int
	suggestFirst int
	suggestCount int
	button       int
}

func (m Model) layout() layout {
	n := 0
	if m.suggestionsVisible {
		n = len(m.suggestions)
		if m.height > 0 {
			// Leave at least one row for the output region.
			n = max(min(n, m.height-chromeRows-1), 0)
		}
	}
	return layout{
		input:        inputRow,
		suggestFirst: inputRow + 1,
		suggestCount: n,
		button:       inputRow + 1 + n,
	}
}

// outputRows is how many lines the output region may use; 0 means no limit.
func (m Model) outputRows() int {
	if m.height <= 0 {
		return 0
	}
	return max(m.height-chromeRows-m.layout().suggestCount, 1)
}

// hitTest maps a screen row to a zone. For zoneSuggestion the index of the
// suggestion is also returned.
func (m Model) hitTest(y int) (zone, int) {
	l := m.layout()
	switch {
	case y == l.input:
		return zoneInput, 0
	case y >= l.suggestFirst && y < l.suggestFirst+l.suggestCount:
		return zoneSuggestion, y - l.suggestFirst
	case y == l.button:
		return zoneButton, 0
	default:
		return zoneOutside, 0
	}
}
