package webplayer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRestFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer k-123" {
			t.Errorf("authorization = %q", got)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("expected a request id")
		}
		switch r.Method {
		case http.MethodPost:
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q", ct)
			}
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("undecodable body: %v", err)
			}
			if body["projectId"] != "p1" {
				t.Errorf("projectId = %v", body["projectId"])
			}
			_, _ = w.Write([]byte(`{"identifier":"S1"}`))
		case http.MethodGet:
			if r.URL.Path != "/v1/projects/p1/webplayer" {
				t.Errorf("path = %v", r.URL.Path)
			}
			_, _ = w.Write([]byte(`[]`))
		default:
			t.Errorf("unexpected method %v", r.Method)
		}
	}))
	defer ts.Close()

	rest, err := NewRest(ts.URL+"/v1/projects/p1/", "k-123")
	if err != nil {
		t.Fatal(err)
	}

	raw, err := rest.Fetch(context.Background(), http.MethodGet, Resource, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `[]` {
		t.Errorf("unexpected body %s", raw)
	}

	raw, err = rest.Fetch(context.Background(), http.MethodPost, Resource,
		createRequest{ProjectID: "p1", InstanceID: "i1", ExpiresIn: 60})
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"identifier":"S1"}` {
		t.Errorf("unexpected body %s", raw)
	}
}

func TestRestFetchError(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		body   string
		result string
	}{
		{name: "json body", code: 404, body: `{"message":"gone"}`, result: `{"message":"gone"}`},
		{name: "empty body", code: 500, body: "", result: `{}`},
		{name: "non-json body", code: 502, body: "bad gateway", result: `{}`},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(test.code)
				_, _ = w.Write([]byte(test.body))
			}))
			defer ts.Close()

			rest, err := NewRest(ts.URL, "k")
			if err != nil {
				t.Fatal(err)
			}
			_, err = rest.Fetch(context.Background(), http.MethodGet, Resource, nil)
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if apiErr.StatusCode != test.code {
				t.Errorf("statusCode = %v, want %v", apiErr.StatusCode, test.code)
			}
			if string(apiErr.Result) != test.result {
				t.Errorf("result = %s, want %s", apiErr.Result, test.result)
			}
		})
	}
}

func TestRestRateLimit(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	rest, err := NewRest(ts.URL, "k", WithRateLimit(1000))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := rest.Fetch(context.Background(), http.MethodGet, Resource, nil); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 3 {
		t.Errorf("calls = %v, want 3", calls)
	}

	// a cancelled context interrupts the limiter wait
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := rest.Fetch(ctx, http.MethodGet, Resource, nil); err == nil {
		t.Error("expected a context error")
	}
}
