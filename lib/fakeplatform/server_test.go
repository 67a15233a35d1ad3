// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fakeplatform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
	"github.com/bureau-foundation/boxoffice/lib/storefront"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newPlatform serves a freshly seeded platform and returns a client for
// it.
func newPlatform(t *testing.T, config Config) (*Server, *storefront.Client) {
	t.Helper()
	server := New(config)
	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)

	client, err := storefront.New(storefront.Config{BaseURL: httpServer.URL, Compression: config.Compress})
	if err != nil {
		t.Fatalf("storefront.New: %v", err)
	}
	return server, client
}

func login(t *testing.T, client *storefront.Client, email string) {
	t.Helper()
	if _, err := client.Login(context.Background(), email); err != nil {
		t.Fatalf("Login(%s): %v", email, err)
	}
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()
	_, client := newPlatform(t, Config{})
	ctx := context.Background()

	identity, err := client.Me(ctx)
	if err != nil || identity.Authenticated {
		t.Fatalf("Me() before login = %+v, %v", identity, err)
	}
	if _, err := client.Cart(ctx); !storefront.IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("Cart() signed out: err = %v, want 401", err)
	}

	if _, err := client.Login(ctx, "nobody@example.com"); !storefront.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("unknown email: err = %v, want 404", err)
	}

	response, err := client.Login(ctx, "ADA@example.com")
	if err != nil || !response.OK || response.UserID != SeedUserAda {
		t.Fatalf("Login = %+v, %v", response, err)
	}
	identity, err = client.Me(ctx)
	if err != nil || !identity.Authenticated || identity.UserID != SeedUserAda {
		t.Fatalf("Me() after login = %+v, %v", identity, err)
	}
	if client.Session() == nil {
		t.Error("no session cookie captured")
	}

	if err := client.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	identity, err = client.Me(ctx)
	if err != nil || identity.Authenticated {
		t.Fatalf("Me() after logout = %+v, %v", identity, err)
	}
}

func TestTicketListing(t *testing.T) {
	t.Parallel()
	_, client := newPlatform(t, Config{})
	ctx := context.Background()

	tickets, err := client.ListTickets(ctx, storefront.TicketQuery{EventID: SeedEventRock})
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(tickets) == 0 || !tickets[0].IsGeneralAdmission() {
		t.Fatalf("first ticket = %+v, want the GA aggregate", tickets[0])
	}
	// Seeded orders hold A1 and A2.
	if got := tickets[0].AvailableCount(); got != 40 {
		t.Errorf("GA available = %d, want 40", got)
	}
	if got := len(tickets); got != 1+22 {
		t.Errorf("len(tickets) = %d, want GA plus 22 free seats", got)
	}
	if tickets[1].Seat != "A3" || tickets[10].Seat != "A12" {
		t.Errorf("seats not naturally ordered: %s ... %s", tickets[1].Seat, tickets[10].Seat)
	}

	filtered, err := client.ListTickets(ctx, storefront.TicketQuery{EventID: SeedEventRock, Seat: "b1", MaxPrice: "45"})
	if err != nil {
		t.Fatalf("filtered ListTickets: %v", err)
	}
	for _, ticket := range filtered {
		if ticket.Seat != "B1" && ticket.Seat != "B10" && ticket.Seat != "B11" && ticket.Seat != "B12" {
			t.Errorf("seat filter returned %q", ticket.Seat)
		}
	}

	if _, err := client.ListTickets(ctx, storefront.TicketQuery{EventID: SeedEventRock, MinPrice: "cheap"}); !storefront.IsStatus(err, http.StatusBadRequest) {
		t.Errorf("invalid price filter: err = %v, want 400", err)
	}
}

func TestCartAndCheckout(t *testing.T) {
	t.Parallel()
	server, client := newPlatform(t, Config{Compress: true})
	ctx := context.Background()
	login(t, client, "bo@example.com")

	if err := client.AddToCart(ctx, "t-rock-B3"); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if err := client.AddGeneralAdmission(ctx, SeedEventRock, 2); err != nil {
		t.Fatalf("AddGeneralAdmission: %v", err)
	}
	cart, err := client.Cart(ctx)
	if err != nil {
		t.Fatalf("Cart: %v", err)
	}
	if cart.Count != 3 || cart.Total.Value() != 90 {
		t.Fatalf("cart = %d items, total %v; want 3, 90", cart.Count, cart.Total.Value())
	}

	// Held tickets are refused to everyone else.
	_, other := newPlatformClient(t, server)
	login(t, other, "cyd@example.com")
	if err := other.AddToCart(ctx, "t-rock-B3"); !storefront.IsStatus(err, http.StatusConflict) {
		t.Errorf("second reservation: err = %v, want 409", err)
	}
	if err := other.AddGeneralAdmission(ctx, SeedEventRock, 39); !storefront.IsStatus(err, http.StatusConflict) {
		t.Errorf("GA beyond availability: err = %v, want 409", err)
	}

	result, err := client.Checkout(ctx)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if !result.Created() || result.OrderID == "" {
		t.Fatalf("Checkout result = %+v", result)
	}
	cart, err = client.Cart(ctx)
	if err != nil || cart.Count != 0 {
		t.Errorf("cart after checkout = %+v, %v", cart, err)
	}

	again, err := client.Checkout(ctx)
	if err != nil || again.StatusCode != http.StatusBadRequest {
		t.Errorf("empty checkout = %+v, %v; want 400", again, err)
	}
}

// newPlatformClient returns a second client, with its own cookie jar,
// for an existing server.
func newPlatformClient(t *testing.T, server *Server) (*httptest.Server, *storefront.Client) {
	t.Helper()
	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)
	client, err := storefront.New(storefront.Config{BaseURL: httpServer.URL})
	if err != nil {
		t.Fatalf("storefront.New: %v", err)
	}
	return httpServer, client
}

func TestRemoveAndClear(t *testing.T) {
	t.Parallel()
	_, client := newPlatform(t, Config{})
	ctx := context.Background()
	login(t, client, "ada@example.com")

	for _, ticketID := range []string{"t-jazz-T2", "t-jazz-T3"} {
		if err := client.AddToCart(ctx, ticketID); err != nil {
			t.Fatalf("AddToCart(%s): %v", ticketID, err)
		}
	}
	if err := client.RemoveFromCart(ctx, "t-jazz-T2"); err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	cart, _ := client.Cart(ctx)
	if cart.Count != 1 || cart.Items[0].TicketID != "t-jazz-T3" {
		t.Fatalf("cart after remove = %+v", cart)
	}
	if err := client.ClearCart(ctx); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	cart, _ = client.Cart(ctx)
	if cart.Count != 0 {
		t.Fatalf("cart after clear = %+v", cart)
	}
}

func TestCreateOrder(t *testing.T) {
	t.Parallel()
	_, client := newPlatform(t, Config{})
	ctx := context.Background()

	result, err := client.CreateOrder(ctx, ticketing.CreateOrderRequest{
		UserID: SeedUserCyd,
		Items:  []ticketing.OrderLine{{TicketID: "t-opera-S4"}},
	})
	if err != nil || !result.Created() || result.OrderID == "" {
		t.Fatalf("CreateOrder = %+v, %v", result, err)
	}

	conflict, err := client.CreateOrder(ctx, ticketing.CreateOrderRequest{
		UserID: SeedUserBo,
		Items:  []ticketing.OrderLine{{TicketID: "t-opera-S4"}},
	})
	if err != nil || conflict.StatusCode != http.StatusConflict {
		t.Fatalf("double sale = %+v, %v; want 409", conflict, err)
	}
}

func TestEventsAndLookupFallback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, client := newPlatform(t, Config{})
	events, err := client.ListEvents(ctx, storefront.EventQuery{Text: "ro"})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 || events[0].ID != SeedEventRock || events[1].ID != SeedEventIndie {
		t.Errorf("ListEvents(ro) = %+v", events)
	}
	event, err := client.GetEvent(ctx, SeedEventJazz)
	if err != nil || event.Title != "Jazz Club Sessions" {
		t.Errorf("GetEvent = %+v, %v", event, err)
	}
	if _, err := client.GetEvent(ctx, "e-missing"); !storefront.IsStatus(err, http.StatusNotFound) {
		t.Errorf("GetEvent(missing): err = %v", err)
	}

	_, legacy := newPlatform(t, Config{WithoutEventLookup: true})
	if _, err := legacy.GetEvent(ctx, SeedEventJazz); !storefront.IsRouteMissing(err) {
		t.Errorf("GetEvent without the route: err = %v, want a missing route", err)
	}
}

func TestAutocomplete(t *testing.T) {
	t.Parallel()
	_, client := newPlatform(t, Config{})
	ctx := context.Background()

	suggestions, err := client.Autocomplete(ctx, "vi")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Text != "Vilnius Arena" || suggestions[0].Type != SuggestionTypeVenue {
		t.Errorf("Autocomplete(vi) = %+v", suggestions)
	}

	suggestions, err = client.Autocomplete(ctx, "r")
	if err != nil || len(suggestions) != 0 {
		t.Errorf("Autocomplete(r) = %+v, %v", suggestions, err)
	}

	suggestions, err = client.Autocomplete(ctx, "RO")
	if err != nil || len(suggestions) != 2 || suggestions[0].Type != ticketing.SuggestionTypeEvent {
		t.Errorf("Autocomplete(RO) = %+v, %v", suggestions, err)
	}
}

func TestRecommendations(t *testing.T) {
	t.Parallel()
	_, client := newPlatform(t, Config{})
	ctx := context.Background()

	forYou, err := client.Recommendations(ctx, SeedUserAda, ticketing.RecommendForYou)
	if err != nil || len(forYou) != 1 || forYou[0].EventID != SeedEventJazz || forYou[0].Score == nil {
		t.Errorf("for-you = %+v, %v", forYou, err)
	}
	nearby, err := client.Recommendations(ctx, SeedUserAda, ticketing.RecommendNearby)
	if err != nil || len(nearby) != 1 || nearby[0].EventID != SeedEventOpera || nearby[0].Relevance == nil {
		t.Errorf("nearby = %+v, %v", nearby, err)
	}
	deep, err := client.Recommendations(ctx, SeedUserAda, ticketing.RecommendDeep)
	if err != nil || len(deep) != 2 || deep[0].EventID != SeedEventIndie || deep[1].EventID != SeedEventJazz {
		t.Errorf("deep = %+v, %v", deep, err)
	}

	explanation, err := client.Explain(ctx, SeedUserAda, SeedEventJazz)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if explanation.Distance != 3 || explanation.Path[0].ID != SeedUserAda || explanation.Path[3].Title != "Jazz Club Sessions" {
		t.Errorf("explanation = %+v", explanation)
	}

	if _, err := client.Explain(ctx, SeedUserCyd, SeedEventJazz); !errors.Is(err, storefront.ErrNoPath) {
		t.Errorf("unconnected Explain: err = %v, want ErrNoPath", err)
	}
}
