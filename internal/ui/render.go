package ui

import (
	"fmt"
	"strings"

	"github.com/abelbrown/movierec/internal/api"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const buttonLabel = "Get Recommendations"

// View implements tea.Model.
func (m Model) View() string {
	if m.showDebug {
		return debugOverlay(m.ring, m.width, m.height) + "\n" + debugStatusBar(m.width)
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	// The row structure here must match layout.go.
	l := m.layout()
	var rows []string
	rows = append(rows, renderHeader(m.title, width))
	rows = append(rows, "")
	rows = append(rows, InputLine.Render(m.input.View()))
	for _, s := range m.suggestions[:l.suggestCount] {
		rows = append(rows, renderSuggestion(s, width))
	}
	rows = append(rows, ButtonRow.Render(Button.Render(buttonLabel)))
	rows = append(rows, "")
	rows = append(rows, m.renderOutput(width, m.outputRows()))
	rows = append(rows, "")
	rows = append(rows, RenderStatusBar(m.state, width))

	return strings.Join(rows, "\n")
}

// renderOutput draws the one region that State.Visibility allows, in at most
// maxLines lines (0 means unlimited).
func (m Model) renderOutput(width, maxLines int) string {
	vis := m.state.Visibility()
	var out string
	switch {
	case vis.Loading:
		out = Loading.Render(m.spinner.View() + " Finding similar movies...")
	case vis.Results:
		out = renderCardsFit(m.results, width, maxLines)
	case vis.Error:
		out = ErrorStyle.Render(truncateWidth(m.errMsg, width))
	default:
		out = HelpStyle.Render("Type a title, pick a suggestion, then press Enter.")
	}
	return clipLines(out, maxLines)
}

func renderHeader(title string, width int) string {
	h := Header.Render("movierec")
	if title == "" {
		return h
	}
	room := width - lipgloss.Width(h) - 1
	if room < 4 {
		return h
	}
	return h + " " + StatusBarText.Render(truncateWidth(title, room))
}

// renderSuggestion draws one suggestion on exactly one row; long titles are
// cut so they never wrap.
func renderSuggestion(title string, width int) string {
	room := width - SuggestionItem.GetHorizontalFrameSize()
	if room < 4 {
		room = 4
	}
	return SuggestionItem.Render(truncateWidth(title, room))
}

// RenderCards renders recommendations as cards, in server order.
func RenderCards(recs []api.Recommendation, width int) string {
	return renderCardsFit(recs, width, 0)
}

// renderCardsFit renders whole cards until maxLines would be exceeded, then
// a "+N more" line for the rest. maxLines 0 renders every card.
func renderCardsFit(recs []api.Recommendation, width, maxLines int) string {
	if len(recs) == 0 {
		return HelpStyle.Render("No recommendations.")
	}

	cardWidth := 44
	if cardWidth > width-2 {
		cardWidth = width - 2
	}
	if cardWidth < 16 {
		cardWidth = 16
	}
	inner := cardWidth - Card.GetHorizontalFrameSize()

	var cards []string
	used := 0
	for i, r := range recs {
		body := CardTitle.Render(truncateWidth(r.Title, inner)) + "\n" +
			CardScore.Render(api.FormatMatch(r.Similarity))
		card := Card.Width(cardWidth).Render(body)
		h := lipgloss.Height(card)

		// Every card but the last keeps one row free for the "+N more" line.
		need := h
		if i < len(recs)-1 {
			need++
		}
		if maxLines > 0 && used+need > maxLines {
			cards = append(cards, HelpStyle.Render(fmt.Sprintf("+%d more", len(recs)-i)))
			break
		}
		cards = append(cards, card)
		used += h
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// RenderStatusBar renders the bottom bar with the flow state and key hints.
func RenderStatusBar(state State, width int) string {
	left := fmt.Sprintf(" %s ", state)

	keys := []string{
		StatusBarKey.Render("Enter") + StatusBarText.Render(":recommend"),
		StatusBarKey.Render("Esc") + StatusBarText.Render(":hide"),
		StatusBarKey.Render("^D") + StatusBarText.Render(":debug"),
		StatusBarKey.Render("^C") + StatusBarText.Render(":quit"),
	}
	hints := strings.Join(keys, " ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(hints) - StatusBar.GetHorizontalFrameSize()
	if padding < 0 {
		padding = 0
	}
	return StatusBar.Width(width).Render(left + strings.Repeat(" ", padding) + hints)
}

// truncateWidth cuts s to at most n terminal cells, ending with "…" when
// cut. Wide runes such as CJK count as two cells.
func truncateWidth(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return ansi.Truncate(s, n, "…")
}

// clipLines keeps the first n lines of s; n 0 keeps everything.
func clipLines(s string, n int) string {
	if n <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}
