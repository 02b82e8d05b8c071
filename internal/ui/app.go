package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abelbrown/movierec/internal/api"
	"github.com/abelbrown/movierec/internal/logging"
	"github.com/abelbrown/movierec/internal/otel"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Backend is the recommendation service as the UI sees it.
type Backend interface {
	Search(ctx context.Context, query string) ([]string, error)
	Recommend(ctx context.Context, movieName string) ([]api.Recommendation, error)
}

// Config wires a Model to its collaborators.
type Config struct {
	Backend Backend

	// Record is called after each successful lookup. Optional.
	Record func(ctx context.Context, movie string, results []api.Recommendation) error

	Debounce    time.Duration // quiet period before a suggestion request
	MinQueryLen int           // shorter queries never hit /search

	Events *otel.Logger     // diagnostic channel; may be nil
	Ring   *otel.RingBuffer // backs the debug overlay; may be nil

	// Title is shown in the header, usually the backend URL.
	Title string
}

// Model is the root Bubble Tea model: a query line with autocomplete, a
// recommend button and an output region driven by State.
type Model struct {
	backend     Backend
	record      func(ctx context.Context, movie string, results []api.Recommendation) error
	events      *otel.Logger
	ring        *otel.RingBuffer
	minQueryLen int
	title       string

	input    textinput.Model
	spinner  spinner.Model
	debounce Debouncer

	suggestions        []string
	suggestionsVisible bool

	state   State
	results []api.Recommendation
	errMsg  string
	recSeq  uint64

	width     int
	height    int
	showDebug bool

	// ctx is cancelled by Close; every request runs under it.
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Model in the idle state with the input focused.
func New(cfg Config) Model {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 300 * time.Millisecond
	}
	if cfg.MinQueryLen <= 0 {
		cfg.MinQueryLen = 2
	}

	ti := textinput.New()
	ti.Placeholder = "Type a movie title..."
	ti.Prompt = "› "
	ti.CharLimit = 200
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Loading

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		backend:     cfg.Backend,
		record:      cfg.Record,
		events:      cfg.Events,
		ring:        cfg.Ring,
		minQueryLen: cfg.MinQueryLen,
		title:       cfg.Title,
		input:       ti,
		spinner:     s,
		debounce:    NewDebouncer(cfg.Debounce),
		state:       StateIdle,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Close tears the model down: the pending debounce tick is dropped and the
// request context is cancelled. Safe to call more than once.
func (m *Model) Close() {
	m.debounce.Cancel()
	if m.cancel != nil {
		m.cancel()
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if otel.TraceEnabled() {
		m.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindMsgReceived, Comp: "ui", Msg: fmt.Sprintf("%T", msg)})
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-4, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case debounceFired:
		return m.handleDebounce(msg)

	case SuggestionsLoaded:
		return m.handleSuggestions(msg), nil

	case RecommendationsLoaded:
		return m.handleRecommendations(msg)

	case HistoryRecorded:
		if msg.Err != nil {
			m.events.Error(otel.KindHistoryError, "history", msg.Err)
			logging.Warn("history write failed", "movie", msg.Movie, "err", msg.Err)
		} else {
			m.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindHistoryRecord, Comp: "history", Query: msg.Movie})
		}
		return m, nil

	case spinner.TickMsg:
		// Let the spinner loop die outside the loading state.
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, keys.Debug):
		m.showDebug = !m.showDebug
		return m, nil

	case key.Matches(msg, keys.Dismiss):
		if m.showDebug {
			m.showDebug = false
			return m, nil
		}
		m.hideSuggestions()
		return m, nil

	case key.Matches(msg, keys.Recommend):
		return m.submit()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.onInput(m.input.Value()))
}

// onInput handles one change of the query text.
func (m *Model) onInput(query string) tea.Cmd {
	if utf8.RuneCountInString(query) < m.minQueryLen {
		m.hideSuggestions()
		return nil
	}
	m.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindSuggestDebounce, Comp: "ui", Query: query, Seq: m.debounce.Generation() + 1})
	return m.debounce.Arm(query)
}

func (m Model) handleDebounce(msg debounceFired) (tea.Model, tea.Cmd) {
	if !m.debounce.Fire(msg) {
		return m, nil
	}
	seq := m.debounce.Generation()
	m.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSuggestStart, Comp: "ui", Query: msg.query, Seq: seq})
	return m, m.suggestCmd(msg.query, seq)
}

func (m Model) suggestCmd(query string, seq uint64) tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		start := time.Now()
		titles, err := backend.Search(ctx, query)
		return SuggestionsLoaded{Seq: seq, Query: query, Titles: titles, Dur: time.Since(start), Err: err}
	}
}

func (m Model) handleSuggestions(msg SuggestionsLoaded) Model {
	if !m.debounce.Current(msg.Seq) {
		m.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindSuggestStale, Comp: "ui", Query: msg.Query, Seq: msg.Seq})
		return m
	}

	if msg.Err != nil {
		// Autocomplete failures are diagnostic only; the list stays as it is.
		m.events.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindSuggestError, Comp: "ui", Query: msg.Query, Seq: msg.Seq, Dur: msg.Dur, Err: msg.Err.Error()})
		logging.Warn("search error", "query", msg.Query, "err", msg.Err)
		return m
	}

	m.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSuggestComplete, Comp: "ui", Query: msg.Query, Seq: msg.Seq, Dur: msg.Dur, Count: len(msg.Titles)})

	if len(msg.Titles) == 0 {
		m.suggestionsVisible = false
		return m
	}
	m.suggestions = msg.Titles
	m.suggestionsVisible = true
	return m
}

// hideSuggestions hides the list and invalidates pending or in-flight
// suggestion work so a late response cannot reopen it.
func (m *Model) hideSuggestions() {
	m.suggestionsVisible = false
	m.debounce.Cancel()
}

// selectSuggestion copies suggestion i into the input. This is not an input
// event, so no new search is scheduled.
func (m *Model) selectSuggestion(i int) {
	if i < 0 || i >= len(m.suggestions) {
		return
	}
	title := m.suggestions[i]
	m.input.SetValue(title)
	m.input.CursorEnd()
	m.hideSuggestions()
	m.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSuggestSelect, Comp: "ui", Query: title})
}

// submit runs the recommend action for the current input.
func (m Model) submit() (tea.Model, tea.Cmd) {
	movie := strings.TrimSpace(m.input.Value())
	if movie == "" {
		return m, nil
	}

	m.hideSuggestions()
	m.setState(StateLoading)
	m.recSeq++
	seq := m.recSeq

	m.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindRecommendStart, Comp: "ui", Query: movie, Seq: seq})

	return m, tea.Batch(m.spinner.Tick, m.recommendCmd(movie, seq))
}

func (m Model) recommendCmd(movie string, seq uint64) tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		start := time.Now()
		results, err := backend.Recommend(ctx, movie)
		return RecommendationsLoaded{Seq: seq, Movie: movie, Results: results, Dur: time.Since(start), Err: err}
	}
}

func (m Model) handleRecommendations(msg RecommendationsLoaded) (tea.Model, tea.Cmd) {
	if msg.Seq != m.recSeq {
		m.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindRecommendStale, Comp: "ui", Query: msg.Movie, Seq: msg.Seq})
		return m, nil
	}

	if msg.Err != nil {
		m.errMsg = api.DisplayMessage(msg.Err)
		m.results = nil
		m.setState(StateError)

		ev := otel.Event{Level: otel.LevelWarn, Kind: otel.KindRecommendError, Comp: "ui", Query: msg.Movie, Seq: msg.Seq, Dur: msg.Dur, Err: msg.Err.Error()}
		var se *api.ServerError
		if errors.As(msg.Err, &se) {
			ev.Status = se.Status
		}
		m.events.Emit(ev)
		logging.Warn("recommend error", "movie", msg.Movie, "err", msg.Err)
		return m, nil
	}

	m.results = msg.Results
	m.errMsg = ""
	m.setState(StateResults)
	m.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindRecommendComplete, Comp: "ui", Query: msg.Movie, Seq: msg.Seq, Dur: msg.Dur, Count: len(msg.Results)})

	return m, m.recordCmd(msg.Movie, msg.Results)
}

func (m Model) recordCmd(movie string, results []api.Recommendation) tea.Cmd {
	if m.record == nil {
		return nil
	}
	record, ctx := m.record, m.ctx
	return func() tea.Msg {
		return HistoryRecorded{Movie: movie, Err: record(ctx, movie, results)}
	}
}

func (m *Model) setState(s State) {
	if m.state == s {
		return
	}
	m.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindStateChange, Comp: "ui", Msg: m.state.String() + " -> " + s.String()})
	m.state = s
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.showDebug {
		return m, nil
	}

	z, idx := m.hitTest(msg.Y)
	m.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindMouse, Comp: "ui", Msg: fmt.Sprintf("press y=%d %s", msg.Y, z)})

	switch z {
	case zoneSuggestion:
		m.selectSuggestion(idx)
		return m, nil
	case zoneInput:
		return m, nil
	case zoneButton:
		// The button sits outside the search container.
		m.hideSuggestions()
		return m.submit()
	default:
		m.hideSuggestions()
		return m, nil
	}
}

// State returns the recommendation flow state.
func (m Model) State() State {
	return m.state
}

// Value returns the current query text.
func (m Model) Value() string {
	return m.input.Value()
}

// Suggestions returns the current suggestion titles and whether they are shown.
func (m Model) Suggestions() ([]string, bool) {
	return m.suggestions, m.suggestionsVisible
}

// Results returns the rendered recommendations.
func (m Model) Results() []api.Recommendation {
	return m.results
}

// ErrorMessage returns the text of the error region.
func (m Model) ErrorMessage() string {
	return m.errMsg
}

var keys = struct {
	Quit      key.Binding
	Debug     key.Binding
	Dismiss   key.Binding
	Recommend key.Binding
}{
	Quit:      key.NewBinding(key.WithKeys("ctrl+c")),
	Debug:     key.NewBinding(key.WithKeys("ctrl+d")),
	Dismiss:   key.NewBinding(key.WithKeys("esc")),
	Recommend: key.NewBinding(key.WithKeys("enter")),
}
