package webplayer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cloudplay/webplayer/pkg/logger"
	"github.com/gofrs/uuid"
	"golang.org/x/time/rate"
)

// Error is a non-2xx response from the session API. Result holds the
// JSON-decoded response body or an empty object.
type Error struct {
	StatusCode int             `json:"statusCode"`
	Result     json.RawMessage `json:"result"`
}

func (e *Error) Error() string { return fmt.Sprintf("webplayer: server returned %v", e.StatusCode) }

type (
	// Rest calls the session API of one project over HTTP.
	Rest struct {
		base    *url.URL
		key     string
		client  *http.Client
		limiter *rate.Limiter
		log     *logger.Logger
	}
	RestOption func(*Rest)
)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) RestOption { return func(r *Rest) { r.client = hc } }

// WithRateLimit caps outgoing calls at rps requests per second.
// Calls over the cap wait, they are not dropped.
func WithRateLimit(rps float64) RestOption {
	return func(r *Rest) { r.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// WithRestLogger overrides the default logger.
func WithRestLogger(log *logger.Logger) RestOption { return func(r *Rest) { r.log = log } }

// NewRest returns a transport for the project API at endpoint, e.g.
// https://api.cloudplay.io/v1/projects/p1. The key is sent as a bearer
// token with every request.
func NewRest(endpoint, key string, options ...RestOption) (*Rest, error) {
	base, err := url.Parse(strings.TrimSuffix(endpoint, "/"))
	if err != nil {
		return nil, err
	}
	r := &Rest{
		base:   base,
		key:    key,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    logger.Default(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// Fetch implements Transport with a single round trip, JSON in and out.
func (r *Rest) Fetch(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.base.String()+"/"+path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+r.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rid, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-Id", rid.String())
	}

	start := time.Now()
	res, err := r.client.Do(req)
	if err != nil {
		observe(method, 0, time.Since(start))
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	out, err := io.ReadAll(res.Body)
	observe(method, res.StatusCode, time.Since(start))
	if err != nil {
		return nil, err
	}
	r.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("code", res.StatusCode).
		Dur("t", time.Since(start)).
		Msg("fetch")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		result := json.RawMessage(`{}`)
		if len(out) > 0 && json.Valid(out) {
			result = out
		}
		return nil, &Error{StatusCode: res.StatusCode, Result: result}
	}
	return out, nil
}
