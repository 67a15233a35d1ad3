// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fakeplatform

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// Clamps applied to list limits, as the platform does.
const (
	defaultListLimit = 20
	maxListLimit     = 200
)

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return defaultListLimit
	}
	return min(max(limit, 1), maxListLimit)
}

func (server *Server) login(c *gin.Context) {
	var request ticketing.LoginRequest
	_ = c.ShouldBindJSON(&request)
	email := strings.ToLower(strings.TrimSpace(request.Email))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email required"})
		return
	}
	user, err := server.store.UserByEmail(email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	server.startSession(c, session{userID: user.ID, userType: "user"})
	c.JSON(http.StatusOK, ticketing.LoginResponse{OK: true, UserID: user.ID, UserType: "user"})
}

func (server *Server) logout(c *gin.Context) {
	server.endSession(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (server *Server) me(c *gin.Context) {
	current, ok := server.sessionFor(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, ticketing.Identity{Authenticated: true, UserID: current.userID, UserType: current.userType})
}

func (server *Server) listEvents(c *gin.Context) {
	limit := parseLimit(c)
	events, total := server.store.Events(c.Query("q"), limit)
	c.JSON(http.StatusOK, ticketing.EventPage{
		Data: events,
		Meta: ticketing.PageMeta{Page: 1, Limit: limit, Total: total},
	})
}

func (server *Server) getEvent(c *gin.Context) {
	event, ok := server.store.Event(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (server *Server) listTickets(c *gin.Context) {
	eventID := c.Query("eventId")
	if eventID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventId is required"})
		return
	}
	filter := TicketFilter{EventID: eventID, Seat: c.Query("seat"), MinCents: -1, MaxCents: -1}
	for parameter, bound := range map[string]*int{"minPrice": &filter.MinCents, "maxPrice": &filter.MaxCents} {
		text := c.Query(parameter)
		if text == "" {
			continue
		}
		amount, err := strconv.ParseFloat(text, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price filter"})
			return
		}
		*bound = toCents(amount)
	}
	tickets := server.store.Tickets(filter)
	c.JSON(http.StatusOK, ticketing.TicketPage{
		Data: tickets,
		Meta: ticketing.PageMeta{Total: len(tickets)},
	})
}

func (server *Server) listUsers(c *gin.Context) {
	limit := parseLimit(c)
	users := server.store.Users(limit)
	c.JSON(http.StatusOK, ticketing.UserPage{
		Data: users,
		Meta: ticketing.PageMeta{Page: 1, Limit: limit, Total: len(users)},
	})
}

func (server *Server) autocomplete(c *gin.Context) {
	c.JSON(http.StatusOK, server.store.Suggest(c.Query("q")))
}

func userID(c *gin.Context) string {
	return c.GetString("user_id")
}

func (server *Server) viewCart(c *gin.Context) {
	c.JSON(http.StatusOK, server.store.Cart(userID(c)))
}

func (server *Server) addToCart(c *gin.Context) {
	var request ticketing.AddItemRequest
	if err := c.ShouldBindJSON(&request); err != nil || request.TicketID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticketId"})
		return
	}

	if request.IsGeneralAdmission() {
		quantity := request.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if err := server.store.AddGeneralAdmission(userID(c), request.EventID, quantity); err != nil {
			server.storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, server.store.Cart(userID(c)))
		return
	}

	added, err := server.store.AddToCart(userID(c), request.TicketID)
	if err != nil {
		server.storeError(c, err)
		return
	}
	if !added {
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "already in cart"})
		return
	}
	c.JSON(http.StatusOK, server.store.Cart(userID(c)))
}

func (server *Server) removeFromCart(c *gin.Context) {
	removed := server.store.RemoveFromCart(userID(c), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (server *Server) clearCart(c *gin.Context) {
	server.store.ClearCart(userID(c))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (server *Server) checkout(c *gin.Context) {
	order, err := server.store.Checkout(userID(c))
	if err != nil {
		server.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "order": order})
}

type createOrderRequest struct {
	UserID  string `json:"userId"`
	EventID string `json:"eventId"`
	Items   []struct {
		TicketID string `json:"ticketId"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
}

func (server *Server) createOrder(c *gin.Context) {
	var request createOrderRequest
	_ = c.ShouldBindJSON(&request)
	buyer := request.UserID
	if current, ok := server.sessionFor(c); ok {
		buyer = current.userID
	}
	if buyer == "" || len(request.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and items are required"})
		return
	}
	lines := make([]OrderLine, 0, len(request.Items))
	for _, item := range request.Items {
		if item.TicketID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticketId in items"})
			return
		}
		lines = append(lines, OrderLine{TicketID: item.TicketID, Quantity: item.Quantity, EventID: request.EventID})
	}
	order, err := server.store.CreateOrder(buyer, lines)
	if err != nil {
		server.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (server *Server) recommend(c *gin.Context) {
	kind := ticketing.RecommendForYou
	switch {
	case strings.HasSuffix(c.FullPath(), "/nearby"):
		kind = ticketing.RecommendNearby
	case strings.HasSuffix(c.FullPath(), "/deep"):
		kind = ticketing.RecommendDeep
	}
	c.JSON(http.StatusOK, server.store.Recommendations(c.Param("id"), kind))
}

func (server *Server) explain(c *gin.Context) {
	explanation, ok := server.store.Explain(c.Param("user"), c.Param("event"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no path found"})
		return
	}
	c.JSON(http.StatusOK, explanation)
}

// storeError maps Store errors to the platform's statuses.
func (server *Server) storeError(c *gin.Context, err error) {
	var availability *AvailabilityError
	switch {
	case errors.As(err, &availability):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "available": availability.Available})
	case errors.Is(err, ErrTicketReserved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrTicketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrCartEmpty), errors.Is(err, ErrEventIDRequired), errors.Is(err, ErrQuantityTooSmall):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		server.logger.Error("store failure", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
