// Package apitest provides an in-process fake of the recommendation backend.
//
// The fake mirrors the backend's observable behavior: /search does a
// case-insensitive substring match capped at 10 titles, and /recommend
// answers 400 for a missing name, 404 for an unknown title and 200 with the
// configured recommendations otherwise. Tests can override either endpoint
// and count hits.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/abelbrown/movierec/internal/api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SearchLimit is the maximum number of titles /search returns.
const SearchLimit = 10

// Catalog is the data the fake serves.
type Catalog struct {
	// Titles in the order /search reports them.
	Titles []string
	// Recommendations keyed by exact title. A title missing here but present
	// in Titles recommends nothing.
	Recommendations map[string][]api.Recommendation
}

// DefaultCatalog is a small fixed catalog for demos and tests.
func DefaultCatalog() Catalog {
	return Catalog{
		Titles: []string{
			"Inception (2010)",
			"Interstellar (2014)",
			"The Dark Knight (2008)",
			"The Prestige (2006)",
			"Memento (2000)",
			"Toy Story (1995)",
			"Toy Story 2 (1999)",
			"Heat (1995)",
		},
		Recommendations: map[string][]api.Recommendation{
			"Inception (2010)": {
				{Title: "The Dark Knight (2008)", Similarity: 0.873},
				{Title: "Interstellar (2014)", Similarity: 0.812},
				{Title: "The Prestige (2006)", Similarity: 0.764},
				{Title: "Memento (2000)", Similarity: 0.701},
			},
			"Toy Story (1995)": {
				{Title: "Toy Story 2 (1999)", Similarity: 0.902},
			},
		},
	}
}

// Server is a running fake backend.
type Server struct {
	*httptest.Server

	catalog Catalog

	mu                sync.Mutex
	searchOverride    http.HandlerFunc
	recommendOverride http.HandlerFunc
	queries           []string

	searchHits    atomic.Int64
	recommendHits atomic.Int64
}

// NewServer starts a fake backend serving catalog. Close it when done.
func NewServer(catalog Catalog) *Server {
	s := &Server{catalog: catalog}
	s.Server = httptest.NewServer(s.Router())
	return s
}

// Router returns the chi router serving the fake endpoints.
// It is exported so the fake can also be mounted on a real listener.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/search", s.handleSearch)
	r.Post("/recommend", s.handleRecommend)
	return r
}

// NewHandler returns a handler serving catalog without starting a listener.
func NewHandler(catalog Catalog) http.Handler {
	s := &Server{catalog: catalog}
	return s.Router()
}

// OnSearch replaces the /search behavior. Hits are still counted.
func (s *Server) OnSearch(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchOverride = h
}

// OnRecommend replaces the /recommend behavior. Hits are still counted.
func (s *Server) OnRecommend(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recommendOverride = h
}

// SearchHits returns how many /search requests were served.
func (s *Server) SearchHits() int {
	return int(s.searchHits.Load())
}

// RecommendHits returns how many /recommend requests were served.
func (s *Server) RecommendHits() int {
	return int(s.recommendHits.Load())
}

// Queries returns the decoded q parameters seen by /search, in order.
func (s *Server) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.queries))
	copy(out, s.queries)
	return out
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.searchHits.Add(1)
	query := r.URL.Query().Get("q")

	s.mu.Lock()
	s.queries = append(s.queries, query)
	override := s.searchOverride
	s.mu.Unlock()

	if override != nil {
		override(w, r)
		return
	}

	writeJSON(w, http.StatusOK, MatchTitles(s.catalog.Titles, query, SearchLimit))
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	s.recommendHits.Add(1)

	s.mu.Lock()
	override := s.recommendOverride
	s.mu.Unlock()

	if override != nil {
		override(w, r)
		return
	}

	var req struct {
		MovieName string `json:"movie_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MovieName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Movie name is required"})
		return
	}

	if !contains(s.catalog.Titles, req.MovieName) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Movie not found"})
		return
	}

	recs := s.catalog.Recommendations[req.MovieName]
	if recs == nil {
		recs = []api.Recommendation{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// MatchTitles returns up to limit titles containing query, case-insensitively,
// in catalog order. An empty query matches nothing.
func MatchTitles(titles []string, query string, limit int) []string {
	out := []string{}
	if query == "" {
		return out
	}
	q := strings.ToLower(query)
	for _, t := range titles {
		if strings.Contains(strings.ToLower(t), q) {
			out = append(out, t)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func contains(titles []string, title string) bool {
	for _, t := range titles {
		if t == title {
			return true
		}
	}
	return false
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
