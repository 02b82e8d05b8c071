package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// debounceFired is delivered when a debounce tick elapses.
type debounceFired struct {
	gen   uint64
	query string
}

// Debouncer collapses bursts of keystrokes into one suggestion request.
//
// Every Arm or Cancel bumps the generation. A tick only counts if it carries
// the current generation, so re-arming cancels whatever was pending. The
// generation also tags the request issued when a tick fires; a response is
// current only while the generation is unchanged.
type Debouncer struct {
	delay time.Duration
	gen   uint64
	armed bool
}

// NewDebouncer returns a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) Debouncer {
	return Debouncer{delay: delay}
}

// Arm cancels any pending tick and schedules a new one for query.
func (d *Debouncer) Arm(query string) tea.Cmd {
	d.gen++
	d.armed = true
	gen := d.gen
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return debounceFired{gen: gen, query: query}
	})
}

// Cancel drops the pending tick and invalidates in-flight requests tagged
// with the old generation.
func (d *Debouncer) Cancel() {
	d.gen++
	d.armed = false
}

// Fire reports whether msg is the live tick. It disarms on success.
func (d *Debouncer) Fire(msg debounceFired) bool {
	if !d.armed || msg.gen != d.gen {
		return false
	}
	d.armed = false
	return true
}

// Current reports whether a request tagged gen is still current.
func (d *Debouncer) Current(gen uint64) bool {
	return gen == d.gen
}

// Generation returns the current generation.
func (d *Debouncer) Generation() uint64 {
	return d.gen
}

// Pending reports whether a tick is scheduled and not yet fired.
func (d *Debouncer) Pending() bool {
	return d.armed
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}
