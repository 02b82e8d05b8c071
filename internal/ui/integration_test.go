package ui

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/movierec/internal/api"
	"github.com/abelbrown/movierec/internal/apitest"
)

// newLiveModel wires a Model to the real client and an in-process backend.
func newLiveModel(t *testing.T) (Model, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer(apitest.DefaultCatalog())
	t.Cleanup(srv.Close)

	m := New(Config{Backend: api.NewClient(srv.URL, 2*time.Second), Debounce: time.Millisecond})
	t.Cleanup(m.Close)
	m.width = 100
	m.height = 40
	return m, srv
}

func TestLiveSuggestSelectRecommend(t *testing.T) {
	m, srv := newLiveModel(t)

	m = typeText(m, "incep")
	m, msg := settle(t, m)
	if msg.Err != nil {
		t.Fatalf("search: %v", msg.Err)
	}
	m, _ = update(m, msg)

	got, visible := m.Suggestions()
	if !visible || len(got) != 1 || got[0] != "Inception (2010)" {
		t.Fatalf("suggestions = %v visible=%v", got, visible)
	}
	if q := srv.Queries(); len(q) != 1 || q[0] != "incep" {
		t.Errorf("server saw queries %v", q)
	}

	m, _ = update(m, press(m.layout().suggestFirst))
	if m.Value() != "Inception (2010)" {
		t.Fatalf("input = %q", m.Value())
	}

	m, cmd := update(m, press(m.layout().button))
	m, _ = update(m, recommendMsg(t, cmd))

	if m.State() != StateResults {
		t.Fatalf("state = %v (err %q)", m.State(), m.ErrorMessage())
	}
	view := m.View()
	for _, want := range []string{"The Dark Knight (2008)", "87.3% Match", "Memento (2000)", "70.1% Match"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if srv.SearchHits() != 1 || srv.RecommendHits() != 1 {
		t.Errorf("hits: search=%d recommend=%d", srv.SearchHits(), srv.RecommendHits())
	}
}

func TestLiveMovieNotFound(t *testing.T) {
	m, _ := newLiveModel(t)

	m = typeText(m, "Nope")
	m, cmd := update(m, press(m.layout().button))
	m, _ = update(m, recommendMsg(t, cmd))

	if m.State() != StateError || m.ErrorMessage() != "Movie not found" {
		t.Errorf("state = %v, error = %q", m.State(), m.ErrorMessage())
	}
}

func TestLiveServerErrorWithoutMessage(t *testing.T) {
	m, srv := newLiveModel(t)
	srv.OnRecommend(func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteJSON(w, http.StatusInternalServerError, map[string]string{})
	})

	m = typeText(m, "Heat (1995)")
	m, cmd := update(m, press(m.layout().button))
	m, _ = update(m, recommendMsg(t, cmd))

	if m.ErrorMessage() != "Something went wrong" {
		t.Errorf("error = %q", m.ErrorMessage())
	}
}

func TestLiveServerDown(t *testing.T) {
	m, srv := newLiveModel(t)
	srv.Close()

	m = typeText(m, "Heat")
	m, msg := settle(t, m)
	m, _ = update(m, msg)
	if _, visible := m.Suggestions(); visible {
		t.Error("failed search should not show a list")
	}
	if m.State() != StateIdle {
		t.Errorf("failed search changed state to %v", m.State())
	}

	m, cmd := update(m, press(m.layout().button))
	m, _ = update(m, recommendMsg(t, cmd))
	if m.ErrorMessage() != "Failed to connect to server" {
		t.Errorf("error = %q", m.ErrorMessage())
	}
}
