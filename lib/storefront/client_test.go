// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// testServer starts an httptest server for handler and returns a
// Client pointed at it. The server is closed when the test completes.
func testServer(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func writeJSON(writer http.ResponseWriter, status int, value any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(value)
}

func TestNewValidatesBaseURL(t *testing.T) {
	t.Parallel()

	for _, baseURL := range []string{"", "ftp://example.com", "://broken"} {
		if _, err := New(Config{BaseURL: baseURL}); err == nil {
			t.Errorf("New(%q) succeeded, want error", baseURL)
		}
	}
}

func TestListTicketsQuery(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tickets", func(writer http.ResponseWriter, request *http.Request) {
		query := request.URL.Query()
		if got := query.Get("eventId"); got != "e1" {
			t.Errorf("eventId = %q, want e1", got)
		}
		if got := query.Get("limit"); got != "1000" {
			t.Errorf("limit = %q, want 1000", got)
		}
		if got := query.Get("minPrice"); got != "10" {
			t.Errorf("minPrice = %q, want 10", got)
		}
		if query.Has("seat") || query.Has("maxPrice") {
			t.Errorf("empty filters were sent: %v", query)
		}
		writeJSON(writer, http.StatusOK, map[string]any{
			"data": []map[string]any{
				{"_id": "t1", "type": "Seated", "seat": "A1", "price": 30},
				{"_id": "t2", "type": "GA", "price": "25"},
			},
		})
	})

	client := testServer(t, mux)
	tickets, err := client.ListTickets(context.Background(), TicketQuery{EventID: "e1", MinPrice: "10", Limit: 1000})
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("got %d tickets, want 2", len(tickets))
	}
	if tickets[1].Price.Value() != 25 {
		t.Errorf("string price decoded as %v, want 25", tickets[1].Price.Value())
	}
}

func TestListEventsAcceptsBareArray(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /events", func(writer http.ResponseWriter, request *http.Request) {
		if got := request.URL.Query().Get("q"); got != "jazz" {
			t.Errorf("q = %q, want jazz", got)
		}
		writeJSON(writer, http.StatusOK, []ticketing.Event{{ID: "e1", Title: "Jazz Night"}})
	})

	client := testServer(t, mux)
	events, err := client.ListEvents(context.Background(), EventQuery{Text: "  jazz "})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Jazz Night" {
		t.Errorf("events = %+v", events)
	}
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart", func(writer http.ResponseWriter, request *http.Request) {
		http.Error(writer, "cache unavailable", http.StatusServiceUnavailable)
	})

	client := testServer(t, mux)
	_, err := client.Cart(context.Background())
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error = %v, want *HTTPError", err)
	}
	if httpErr.Op != "view cart" || httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("HTTPError = %+v", httpErr)
	}
	if !strings.Contains(httpErr.Body, "cache unavailable") {
		t.Errorf("Body = %q", httpErr.Body)
	}
	if !IsStatus(err, http.StatusServiceUnavailable) {
		t.Error("IsStatus(503) = false")
	}
	if got := err.Error(); got != "view cart: HTTP 503: cache unavailable" {
		t.Errorf("Error() = %q", got)
	}
}

func TestRequestIDPerRequest(t *testing.T) {
	t.Parallel()

	var mutex sync.Mutex
	seen := map[string]bool{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /cart/clear", func(writer http.ResponseWriter, request *http.Request) {
		identifier := request.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(identifier); err != nil {
			t.Errorf("X-Request-ID %q is not a UUID: %v", identifier, err)
		}
		if agent := request.Header.Get("User-Agent"); !strings.HasPrefix(agent, "boxoffice/") {
			t.Errorf("User-Agent = %q", agent)
		}
		mutex.Lock()
		seen[identifier] = true
		mutex.Unlock()
		writeJSON(writer, http.StatusOK, map[string]bool{"ok": true})
	})

	client := testServer(t, mux)
	for range 3 {
		if err := client.ClearCart(context.Background()); err != nil {
			t.Fatalf("ClearCart: %v", err)
		}
	}
	mutex.Lock()
	defer mutex.Unlock()
	if len(seen) != 3 {
		t.Errorf("saw %d distinct request IDs, want 3", len(seen))
	}
}

func TestCompressedResponses(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !strings.Contains(request.Header.Get("Accept-Encoding"), "gzip") {
			t.Errorf("Accept-Encoding = %q, want gzip offered", request.Header.Get("Accept-Encoding"))
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Header().Set("Content-Encoding", "gzip")
		compressor := gzip.NewWriter(writer)
		json.NewEncoder(compressor).Encode(ticketing.Cart{
			Items: []ticketing.CartItem{{TicketID: "t1", Price: ticketing.NewPrice(30)}},
			Total: ticketing.NewPrice(30),
			Count: 1,
		})
		compressor.Close()
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL, Compression: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cart, err := client.Cart(context.Background())
	if err != nil {
		t.Fatalf("Cart: %v", err)
	}
	if cart.Count != 1 || cart.Total.Value() != 30 {
		t.Errorf("cart = %+v", cart)
	}
}

func TestMeUnauthorizedIsNotAnError(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/me", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(writer, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
	})

	client := testServer(t, mux)
	identity, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if identity.Authenticated {
		t.Error("401 reported as authenticated")
	}
}

func TestLoginSessionRoundTrip(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(writer http.ResponseWriter, request *http.Request) {
		var body ticketing.LoginRequest
		json.NewDecoder(request.Body).Decode(&body)
		if body.Email != "ada@example.com" {
			writeJSON(writer, http.StatusNotFound, map[string]string{"error": "email not found"})
			return
		}
		http.SetCookie(writer, &http.Cookie{Name: "session", Value: "s3cret", Path: "/", HttpOnly: true})
		writeJSON(writer, http.StatusOK, ticketing.LoginResponse{OK: true, UserID: "u1", UserType: "customer"})
	})
	mux.HandleFunc("GET /auth/me", func(writer http.ResponseWriter, request *http.Request) {
		cookie, err := request.Cookie("session")
		if err != nil || cookie.Value != "s3cret" {
			writeJSON(writer, http.StatusOK, ticketing.Identity{})
			return
		}
		writeJSON(writer, http.StatusOK, ticketing.Identity{Authenticated: true, UserID: "u1", UserType: "customer"})
	})
	mux.HandleFunc("POST /auth/logout", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(writer, http.StatusOK, map[string]bool{"ok": true})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	first, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	if _, err := first.Login(ctx, "nobody@example.com"); !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("Login(unknown) error = %v, want 404", err)
	}
	login, err := first.Login(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.UserID != "u1" {
		t.Errorf("UserID = %q", login.UserID)
	}

	session := first.Session()
	if session == nil {
		t.Fatal("Session() = nil after login")
	}
	session.UserID = login.UserID
	path := filepath.Join(t.TempDir(), "boxoffice", "session.json")
	if err := SaveSessionTo(session, path); err != nil {
		t.Fatalf("SaveSessionTo: %v", err)
	}
	loaded, err := LoadSessionFrom(path)
	if err != nil {
		t.Fatalf("LoadSessionFrom: %v", err)
	}

	second, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := second.RestoreSession(loaded); err != nil {
		t.Fatalf("RestoreSession: %v", err)
	}
	identity, err := second.Me(ctx)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if !identity.Authenticated || identity.UserID != "u1" {
		t.Errorf("restored identity = %+v", identity)
	}

	if err := second.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if second.Session() != nil {
		t.Error("cookies survived Logout")
	}
	identity, err = second.Me(ctx)
	if err != nil {
		t.Fatalf("Me after logout: %v", err)
	}
	if identity.Authenticated {
		t.Error("still authenticated after Logout")
	}

	if err := RemoveSession(path); err != nil {
		t.Fatalf("RemoveSession: %v", err)
	}
	if err := RemoveSession(path); err != nil {
		t.Errorf("RemoveSession on missing file: %v", err)
	}
}

func TestRestoreSessionRejectsOtherPlatform(t *testing.T) {
	t.Parallel()

	client, err := New(Config{BaseURL: "http://platform.test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = client.RestoreSession(&Session{APIURL: "http://elsewhere.test", Cookies: []SessionCookie{{Name: "session", Value: "x"}}})
	if err == nil {
		t.Error("restored a session issued by another platform")
	}
}

func TestAddGeneralAdmissionBody(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /cart/items", func(writer http.ResponseWriter, request *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if body["ticketId"] != "GA" || body["quantity"] != float64(3) || body["eventId"] != "e1" {
			t.Errorf("body = %v", body)
		}
		writeJSON(writer, http.StatusOK, ticketing.Cart{Count: 3})
	})

	client := testServer(t, mux)
	if err := client.AddGeneralAdmission(context.Background(), "e1", 3); err != nil {
		t.Fatalf("AddGeneralAdmission: %v", err)
	}
	if err := client.AddGeneralAdmission(context.Background(), "e1", 0); err == nil {
		t.Error("quantity 0 accepted")
	}
}

func TestAddToCartConflict(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /cart/items", func(writer http.ResponseWriter, request *http.Request) {
		var body ticketing.AddItemRequest
		json.NewDecoder(request.Body).Decode(&body)
		if body.TicketID != "t1" || body.Quantity != 0 || body.EventID != "" {
			t.Errorf("seated add body = %+v", body)
		}
		writeJSON(writer, http.StatusConflict, map[string]string{"error": "ticket already reserved/sold"})
	})

	client := testServer(t, mux)
	err := client.AddToCart(context.Background(), "t1")
	if !IsStatus(err, http.StatusConflict) {
		t.Fatalf("AddToCart error = %v, want 409", err)
	}
}

func TestRemoveFromCartEscapesID(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	paths := make(chan string, 1)
	mux.HandleFunc("DELETE /cart/items/{id}", func(writer http.ResponseWriter, request *http.Request) {
		paths <- request.PathValue("id")
		writeJSON(writer, http.StatusOK, map[string]bool{"removed": true})
	})

	client := testServer(t, mux)
	if err := client.RemoveFromCart(context.Background(), "a b"); err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	if got := <-paths; got != "a b" {
		t.Errorf("server saw id %q, want %q", got, "a b")
	}
}

func TestCheckoutCreated(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /cart/checkout", func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)
		if len(body) != 0 {
			t.Errorf("checkout sent a body: %q", body)
		}
		writeJSON(writer, http.StatusCreated, map[string]any{"ok": true, "order": map[string]string{"_id": "abc123"}})
	})

	client := testServer(t, mux)
	result, err := client.Checkout(context.Background())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if !result.Created() || result.OrderID != "abc123" {
		t.Errorf("result = %+v", result)
	}
}

func TestCheckoutFailureIsAResult(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /cart/checkout", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusConflict)
		io.WriteString(writer, "sold out")
	})

	client := testServer(t, mux)
	result, err := client.Checkout(context.Background())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if result.Created() || result.StatusCode != http.StatusConflict || result.Body != "sold out" {
		t.Errorf("result = %+v", result)
	}
}

func TestCheckoutNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := New(Config{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Checkout(context.Background()); err == nil {
		t.Fatal("Checkout against a closed server succeeded")
	}
}

func TestCreateOrder(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders", func(writer http.ResponseWriter, request *http.Request) {
		var body ticketing.CreateOrderRequest
		json.NewDecoder(request.Body).Decode(&body)
		if body.UserID != "u1" || len(body.Items) != 2 {
			t.Errorf("body = %+v", body)
		}
		writeJSON(writer, http.StatusCreated, map[string]string{"_id": "o-9", "status": "pending"})
	})

	client := testServer(t, mux)
	ctx := context.Background()
	result, err := client.CreateOrder(ctx, ticketing.CreateOrderRequest{
		UserID: "u1",
		Items:  []ticketing.OrderLine{{TicketID: "t1"}, {TicketID: "t2"}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if !result.Created() || result.OrderID != "o-9" {
		t.Errorf("result = %+v", result)
	}

	if _, err := client.CreateOrder(ctx, ticketing.CreateOrderRequest{UserID: "u1"}); err == nil {
		t.Error("order without tickets accepted")
	}
	if _, err := client.CreateOrder(ctx, ticketing.CreateOrderRequest{Items: []ticketing.OrderLine{{TicketID: "t1"}}}); err == nil {
		t.Error("order without user accepted")
	}
}

func TestRecommendationFeeds(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/recommendations/user/{id}", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(writer, http.StatusOK, []map[string]any{{"eventId": "e1", "title": "A", "score": 4}})
	})
	mux.HandleFunc("GET /api/recommendations/user/{id}/nearby", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(writer, http.StatusOK, []map[string]any{{"eventId": "e2", "title": "B", "relevance": 2}})
	})
	mux.HandleFunc("GET /api/recommendations/user/{id}/deep", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(writer, http.StatusOK, []map[string]any{{"eventId": "e3", "title": "C", "deepScore": 9}})
	})

	client := testServer(t, mux)
	want := map[ticketing.RecommendationKind]float64{
		ticketing.RecommendForYou: 4,
		ticketing.RecommendNearby: 2,
		ticketing.RecommendDeep:   9,
	}
	for kind, rank := range want {
		recommendations, err := client.Recommendations(context.Background(), "u1", kind)
		if err != nil {
			t.Fatalf("Recommendations(%s): %v", kind, err)
		}
		if len(recommendations) != 1 || recommendations[0].Rank() != rank {
			t.Errorf("Recommendations(%s) = %+v", kind, recommendations)
		}
	}
	if _, err := client.Recommendations(context.Background(), "u1", "sideways"); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestExplain(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/recommendations/explain/{user}/{event}", func(writer http.ResponseWriter, request *http.Request) {
		if request.PathValue("event") == "lonely" {
			writeJSON(writer, http.StatusNotFound, map[string]string{"error": "no path found"})
			return
		}
		writeJSON(writer, http.StatusOK, ticketing.Explanation{
			Path: []ticketing.PathNode{
				{Type: "User", ID: request.PathValue("user")},
				{Type: "Event", ID: request.PathValue("event"), Title: "Jazz Night"},
			},
			Distance: 1,
		})
	})

	client := testServer(t, mux)
	explanation, err := client.Explain(context.Background(), "u1", "e1")
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if explanation.Distance != 1 || len(explanation.Path) != 2 || explanation.Path[1].Label() != "Jazz Night" {
		t.Errorf("explanation = %+v", explanation)
	}
	if _, err := client.Explain(context.Background(), "u1", "lonely"); !errors.Is(err, ErrNoPath) {
		t.Errorf("Explain(no path) error = %v, want ErrNoPath", err)
	}
}

func TestAutocompleteCancellation(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search/autocomplete", func(writer http.ResponseWriter, request *http.Request) {
		close(started)
		<-request.Context().Done()
	})

	client := testServer(t, mux)
	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		_, err := client.Autocomplete(ctx, "ja")
		result <- err
	}()
	<-started
	cancel()
	if err := <-result; !errors.Is(err, context.Canceled) {
		t.Errorf("Autocomplete error = %v, want context.Canceled", err)
	}
}

func TestGetEventRouteMissing(t *testing.T) {
	t.Parallel()

	client := testServer(t, http.NewServeMux())
	_, err := client.GetEvent(context.Background(), "e1")
	if !IsRouteMissing(err) {
		t.Errorf("GetEvent on unserved route: %v, want route-missing", err)
	}
}
