// Package api is the HTTP client for the movie recommendation backend.
//
// The backend exposes two endpoints: GET /search for title autocomplete and
// POST /recommend for similarity recommendations. The client never retries
// and never cancels an in-flight request on its own; callers own the context.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Recommendation is a single recommended title with its similarity score in [0, 1].
type Recommendation struct {
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

// recommendRequest is the POST /recommend body.
type recommendRequest struct {
	MovieName string `json:"movie_name"`
}

// ServerError is a non-2xx response whose body was valid JSON.
// Message is empty when the backend did not supply an "error" field.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: server returned status %d", e.Status)
	}
	return fmt.Sprintf("api: server returned status %d: %s", e.Status, e.Message)
}

// Client talks to the recommendation backend.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimit limits outgoing requests to perSecond. Zero or negative means unlimited.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewClient creates a Client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search returns the titles matching query for autocomplete.
// The query is percent-encoded into the q parameter.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	u := c.baseURL + "/search?" + url.Values{"q": {query}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("api: failed to create search request: %w", err)
	}

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, decodeServerError(status, body)
	}

	var titles []string
	if err := json.Unmarshal(body, &titles); err != nil {
		return nil, fmt.Errorf("api: failed to parse search response: %w", err)
	}
	if titles == nil {
		titles = []string{}
	}
	return titles, nil
}

// Recommend asks the backend for titles similar to movieName.
// A non-2xx response with a JSON body is returned as *ServerError.
func (c *Client) Recommend(ctx context.Context, movieName string) ([]Recommendation, error) {
	payload, err := json.Marshal(recommendRequest{MovieName: movieName})
	if err != nil {
		return nil, fmt.Errorf("api: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recommend", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("api: failed to create recommend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, decodeServerError(status, body)
	}

	var recs []Recommendation
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("api: failed to parse recommend response: %w", err)
	}
	if recs == nil {
		recs = []Recommendation{}
	}
	return recs, nil
}

// do sends req and returns the status and (capped) body.
func (c *Client) do(req *http.Request) (int, []byte, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return 0, nil, fmt.Errorf("api: rate limiter wait failed: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return 0, nil, fmt.Errorf("api: request cancelled: %w", ctxErr)
		}
		return 0, nil, fmt.Errorf("api: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("api: failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// decodeServerError turns a non-2xx body into *ServerError. Any JSON value
// counts as a server reply; the message comes from the "error" field of an
// object when that field is truthy. A body that is not JSON, or is JSON null,
// yields a plain error instead, so it is reported like a connection failure.
func decodeServerError(status int, body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("api: failed to parse error response (status %d): %w", status, err)
	}
	if v == nil {
		return fmt.Errorf("api: null error response (status %d)", status)
	}

	se := &ServerError{Status: status}
	if obj, ok := v.(map[string]any); ok {
		se.Message = errorText(obj["error"])
	}
	return se
}

// errorText renders an "error" field as text. Falsy values (missing, null,
// false, 0, "") give "" so the caller falls back to the generic message.
func errorText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if !x {
			return ""
		}
		return "true"
	case float64:
		if x == 0 {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		raw, _ := json.Marshal(x)
		return string(raw)
	}
}

// IsServerError reports whether err came from a non-2xx JSON response.
func IsServerError(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}
