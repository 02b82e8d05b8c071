package ui

import "github.com/charmbracelet/lipgloss"

// None of these styles add vertical padding or margins to single-line
// regions: the mouse hit test in layout.go counts rows.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorError     = lipgloss.Color("196") // Red
)

// Header is the title bar.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// InputLine frames the query input.
var InputLine = lipgloss.NewStyle().
	Padding(0, 1)

// SuggestionItem is one autocomplete row.
var SuggestionItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 2)

// Button is the recommend action.
var Button = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorHighlight).
	Padding(0, 1)

// ButtonRow lays out the button line.
var ButtonRow = lipgloss.NewStyle().
	Padding(0, 1)

// Loading is the spinner line.
var Loading = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// Card frames one recommendation.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// CardTitle is the recommended movie title.
var CardTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// CardScore is the "NN.N% Match" line.
var CardScore = lipgloss.NewStyle().
	Foreground(colorSuccess)

// ErrorStyle is the error region.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorError).
	Bold(true).
	Padding(0, 1)

// HelpStyle is muted hint text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(0, 1)

// StatusBar is the bottom bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey highlights a key in the status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText is descriptive status bar text.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// DebugPanel frames the debug overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DebugHeaderStyle titles debug overlay sections.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)
