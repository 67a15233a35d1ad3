// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package discover

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
	"github.com/bureau-foundation/boxoffice/lib/storefront"
)

func testService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := storefront.New(storefront.Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("storefront.New: %v", err)
	}
	return New(client, Config{})
}

func writeJSON(writer http.ResponseWriter, status int, value any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(value)
}

var catalogue = []ticketing.Event{
	{ID: "e1", Title: "Rock Night", Date: "2026-06-01T20:00:00Z", Location: "Vilnius"},
	{ID: "e2", Title: "", Date: "not a date"},
}

func TestRequireIdentity(t *testing.T) {
	t.Parallel()

	var signedIn atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/me", func(writer http.ResponseWriter, _ *http.Request) {
		if signedIn.Load() {
			writeJSON(writer, http.StatusOK, ticketing.Identity{Authenticated: true, UserID: "u1", UserType: "customer"})
			return
		}
		writeJSON(writer, http.StatusOK, map[string]bool{"authenticated": false})
	})
	service := testService(t, mux)

	if _, err := service.RequireIdentity(context.Background()); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("signed out: err = %v, want ErrUnauthenticated", err)
	}
	signedIn.Store(true)
	identity, err := service.RequireIdentity(context.Background())
	if err != nil || identity.UserID != "u1" {
		t.Fatalf("signed in: %+v, %v", identity, err)
	}
}

func TestEvents(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /events", func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Query().Get("q") == "nothing" {
			writeJSON(writer, http.StatusOK, ticketing.EventPage{})
			return
		}
		if request.URL.Query().Get("q") == "broken" {
			http.Error(writer, "boom", http.StatusInternalServerError)
			return
		}
		writeJSON(writer, http.StatusOK, ticketing.EventPage{Data: catalogue})
	})
	service := testService(t, mux)

	list, err := service.Events(context.Background(), "")
	if err != nil || len(list.Events) != 2 || list.Message != "" {
		t.Fatalf("Events() = %+v, %v", list, err)
	}
	if got := list.Events[1].Title; got != "Untitled" {
		t.Errorf("untitled event title = %q", got)
	}
	if got := list.Events[1].When; got != "not a date" {
		t.Errorf("unparsable date rendered as %q", got)
	}

	empty, err := service.Events(context.Background(), " nothing ")
	if err != nil || empty.Message != MessageNoEvents || empty.Query != "nothing" {
		t.Errorf("empty list = %+v, %v", empty, err)
	}

	failed, err := service.Events(context.Background(), "broken")
	if err == nil || failed.Message != MessageEventsFailed {
		t.Errorf("failed list = %+v, %v", failed, err)
	}
}

func TestEventDirectLookup(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /events/{id}", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(writer, http.StatusOK, ticketing.Event{
			ID:          request.PathValue("id"),
			Title:       "Jazz Club",
			Description: "Live \x1b[31mjazz\x1b[0m",
		})
	})
	service := testService(t, mux)

	page, err := service.Event(context.Background(), "e7")
	if err != nil {
		t.Fatalf("Event: %v", err)
	}
	if page.Title != "Jazz Club" || page.Event.ID != "e7" {
		t.Errorf("page = %+v", page)
	}
	if page.Description != "Live jazz" {
		t.Errorf("Description = %q, want escapes stripped", page.Description)
	}
}

func TestEventFallsBackToList(t *testing.T) {
	t.Parallel()

	var listed atomic.Int32
	mux := http.NewServeMux()
	// No /events/{id} route: the mux answers 404.
	mux.HandleFunc("GET /events", func(writer http.ResponseWriter, _ *http.Request) {
		listed.Add(1)
		writeJSON(writer, http.StatusOK, ticketing.EventPage{Data: catalogue})
	})
	service := testService(t, mux)

	page, err := service.Event(context.Background(), "e1")
	if err != nil {
		t.Fatalf("Event: %v", err)
	}
	if page.Title != "Rock Night" || listed.Load() != 1 {
		t.Errorf("page = %+v after %d list calls", page, listed.Load())
	}

	_, err = service.Event(context.Background(), "e404")
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}
	if got := EventMessage(err); got != MessageEventNotFound {
		t.Errorf("EventMessage = %q", got)
	}
}

func TestEventMessages(t *testing.T) {
	t.Parallel()

	service := New(nil, Config{})
	_, err := service.Event(context.Background(), "  ")
	if got := EventMessage(err); got != MessageNoEventSelected {
		t.Errorf("empty id message = %q", got)
	}
	if got := EventMessage(&storefront.HTTPError{Op: "get event", StatusCode: 500}); got != MessageEventFailed {
		t.Errorf("server error message = %q", got)
	}
	if got := EventMessage(nil); got != "" {
		t.Errorf("nil message = %q", got)
	}
}

func TestPanels(t *testing.T) {
	t.Parallel()

	score := 3.0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/recommendations/user/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusOK, []ticketing.Recommendation{{EventID: "e1", Title: "Rock Night", Score: &score}})
	})
	mux.HandleFunc("GET /api/recommendations/user/{id}/nearby", func(writer http.ResponseWriter, _ *http.Request) {
		http.Error(writer, "graph unavailable", http.StatusServiceUnavailable)
	})
	mux.HandleFunc("GET /api/recommendations/user/{id}/deep", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusOK, []ticketing.Recommendation{})
	})
	service := testService(t, mux)

	panels := service.Panels(context.Background(), "u1")
	if len(panels) != 3 {
		t.Fatalf("len(panels) = %d", len(panels))
	}
	forYou, nearby, deep := panels[0], panels[1], panels[2]
	if forYou.Kind != ticketing.RecommendForYou || len(forYou.Picks) != 1 || forYou.Picks[0].Score != "3" {
		t.Errorf("for-you panel = %+v", forYou)
	}
	if nearby.Err == nil || nearby.Message() != "Failed to load recommendations" {
		t.Errorf("nearby panel = %+v", nearby)
	}
	if deep.Err != nil || deep.Message() != "Nothing to recommend yet" {
		t.Errorf("deep panel = %+v", deep)
	}
}

func TestExplain(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/recommendations/explain/{user}/{event}", func(writer http.ResponseWriter, request *http.Request) {
		if request.PathValue("event") == "far" {
			writeJSON(writer, http.StatusNotFound, map[string]string{"error": "no path found"})
			return
		}
		writeJSON(writer, http.StatusOK, ticketing.Explanation{
			Path: []ticketing.PathNode{
				{Type: "User", ID: "u1"},
				{Type: "Category", Name: "Rock"},
				{Type: "Event", ID: "e1", Title: "Rock Night"},
			},
			Distance: 2,
		})
	})
	service := testService(t, mux)

	explanation, err := service.Explain(context.Background(), "u1", "e1")
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if want := "User u1 → Category Rock → Event Rock Night (2 hops)"; explanation.Text != want {
		t.Errorf("Text = %q, want %q", explanation.Text, want)
	}

	missing, err := service.Explain(context.Background(), "u1", "far")
	if err != nil || missing.Text != MessageNoPath {
		t.Errorf("no path: %+v, %v", missing, err)
	}
}

func TestUsers(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(writer http.ResponseWriter, request *http.Request) {
		if got := request.URL.Query().Get("limit"); got != "200" {
			t.Errorf("limit = %q", got)
		}
		writeJSON(writer, http.StatusOK, ticketing.UserPage{Data: []ticketing.User{
			{ID: "u1", Name: "Ada", Email: "ada@example.com"},
			{ID: "", Email: "ghost@example.com"},
			{ID: "u2", Email: "bo@example.com"},
		}})
	})
	service := testService(t, mux)

	options, err := service.Users(context.Background())
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	labels := make([]string, 0, len(options))
	for _, option := range options {
		labels = append(labels, option.Label)
	}
	if got := strings.Join(labels, "|"); got != "Ada (ada@example.com)|bo@example.com" {
		t.Errorf("labels = %q", got)
	}
}
