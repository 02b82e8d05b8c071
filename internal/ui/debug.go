package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/movierec/internal/otel"
)

// debugOverlay renders the debug panel showing request stats and recent events.
// Returns empty string if ring is nil.
//
// The panel and the one-row debug status bar together fit in height rows.
// Stats always show; the event list keeps the newest events that fit.
func debugOverlay(ring *otel.RingBuffer, width, height int) string {
	if ring == nil {
		return ""
	}

	// Width sets content plus padding; the border is drawn outside it.
	outer := min(80, width)
	panelWidth := max(outer-DebugPanel.GetHorizontalBorderSize(), 20)
	inner := panelWidth - DebugPanel.GetHorizontalPadding()

	stats := ring.Stats()
	head := []string{
		DebugHeaderStyle.Render("Request Stats"),
		fmt.Sprintf("  Suggest:    %d started, %d complete, %d errors, %d stale",
			stats[otel.KindSuggestStart], stats[otel.KindSuggestComplete], stats[otel.KindSuggestError], stats[otel.KindSuggestStale]),
		fmt.Sprintf("  Recommend:  %d started, %d complete, %d errors, %d stale",
			stats[otel.KindRecommendStart], stats[otel.KindRecommendComplete], stats[otel.KindRecommendError], stats[otel.KindRecommendStale]),
		fmt.Sprintf("  History:    %d recorded, %d errors",
			stats[otel.KindHistoryRecord], stats[otel.KindHistoryError]),
		fmt.Sprintf("  Buffer:     %d / %d events", ring.Len(), ring.Cap()),
		"",
		DebugHeaderStyle.Render("Recent Events"),
	}

	budget := max(height-DebugPanel.GetVerticalFrameSize()-1, 1)
	if budget < len(head) {
		head = head[:budget]
	}
	room := budget - len(head)

	recent := ring.Last(room)
	lines := make([]string, 0, len(head)+len(recent))
	lines = append(lines, head...)
	now := time.Now()
	for _, e := range recent {
		lines = append(lines, eventLine(e, now))
	}
	for i, l := range lines {
		lines[i] = truncateWidth(l, inner)
	}

	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

// eventLine formats one ring event on a single row.
func eventLine(e otel.Event, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %6s  %-22s", formatAge(now.Sub(e.Time)), e.Kind)
	if e.Msg != "" {
		b.WriteString("  " + e.Msg)
	}
	if e.Err != "" {
		b.WriteString("  ERR:" + truncateWidth(e.Err, 30))
	}
	if e.Query != "" {
		fmt.Fprintf(&b, "  q:%q", truncateWidth(e.Query, 20))
	}
	if e.Seq != 0 {
		fmt.Fprintf(&b, "  #%d", e.Seq)
	}
	return b.String()
}

// formatAge formats a duration as a compact human string.
// Handles negative durations from clock skew by clamping to "0ms".
func formatAge(d time.Duration) string {
	if d < 0 {
		return "0ms"
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}

// debugStatusBar renders the status bar for the debug overlay.
func debugStatusBar(width int) string {
	keys := StatusBarKey.Render("^D") + StatusBarText.Render(":close") + " " +
		StatusBarKey.Render("Esc") + StatusBarText.Render(":close")
	return StatusBar.Width(width).Render("  [DEBUG]  " + keys)
}
