package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/progress"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path. Verifies the HTTP client hits the right paths.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestClientState verifies the full state document round-trips through the client.
func TestClientState(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/state": func(w http.ResponseWriter, r *http.Request) {
			state := models.DefaultState()
			state.Categories = append(state.Categories, models.Category{ID: "c1", Name: "Peito", GroupLetter: models.GroupA})
			writeTestJSON(t, w, state)
		},
	})
	defer ts.Close()

	state, err := NewHTTPClient(ts.URL).State(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Categories) != 1 || state.Categories[0].Name != "Peito" {
		t.Errorf("categories = %+v", state.Categories)
	}
}

// TestClientLoadEvolution verifies the exercise id is path-escaped and the
// point array parses.
func TestClientLoadEvolution(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/progress/evolution/e1": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []progress.LoadPoint{{Date: "2025-03-10", Load: 60}})
		},
	})
	defer ts.Close()

	points, err := NewHTTPClient(ts.URL).LoadEvolution(context.Background(), "e1")
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 1 || points[0].Load != 60 {
		t.Errorf("points = %+v", points)
	}
}

// TestClientNonOKStatus verifies non-200 responses surface as errors with the
// body included.
func TestClientNonOKStatus(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/sessions": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL).Sessions(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

// TestClientTrimsTrailingSlash verifies base URLs with a trailing slash still
// produce clean request paths.
func TestClientTrimsTrailingSlash(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/sessions": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.Session{})
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL + "/").Sessions(context.Background()); err != nil {
		t.Fatal(err)
	}
}
