// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fakeplatform

import (
	"errors"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/boxoffice/lib/catalog"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// Order statuses that hold their tickets.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// User is an account that can sign in.
type User struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// Event is a ticketed event. Location doubles as the venue.
type Event struct {
	ID          string
	Title       string
	Category    string
	Date        time.Time
	Location    string
	Description string
}

// Ticket is one sellable ticket. PriceCents is the price in minor
// units, as the platform stores it.
type Ticket struct {
	ID               string
	EventID          string
	Type             string
	Seat             string
	PriceCents       int
	GeneralAdmission bool
}

func (ticket Ticket) isGeneralAdmission() bool {
	return ticket.GeneralAdmission ||
		strings.EqualFold(ticket.Type, ticketing.GeneralAdmissionID) ||
		strings.EqualFold(ticket.Seat, ticketing.GeneralAdmissionID)
}

// OrderItem is one ticket of an order, priced at purchase time.
type OrderItem struct {
	TicketID   string `json:"ticketId"`
	EventID    string `json:"eventId,omitempty"`
	Type       string `json:"type,omitempty"`
	Seat       string `json:"seat,omitempty"`
	PriceCents int    `json:"price"`
}

// Order is a purchase.
type Order struct {
	ID         string      `json:"_id"`
	UserID     string      `json:"userId"`
	Status     string      `json:"status"`
	Items      []OrderItem `json:"items"`
	TotalCents int         `json:"totalPrice"`
	OrderDate  time.Time   `json:"orderDate"`
}

// Errors returned by Store mutations. Handlers map them to statuses.
var (
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrTicketReserved   = errors.New("ticket already reserved/sold")
	ErrNotEnoughGA      = errors.New("not enough GA available")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrUserNotFound     = errors.New("email not found")
	ErrEventIDRequired  = errors.New("eventId required for GA")
	ErrQuantityTooSmall = errors.New("quantity must be >=1")
)

// AvailabilityError carries the free GA count with ErrNotEnoughGA.
type AvailabilityError struct {
	Available int
}

func (e *AvailabilityError) Error() string { return ErrNotEnoughGA.Error() }

func (e *AvailabilityError) Unwrap() error { return ErrNotEnoughGA }

// Store is the platform's state. Safe for concurrent use.
type Store struct {
	mutex   sync.Mutex
	now     func() time.Time
	users   []User
	events  []Event
	tickets []Ticket
	orders  []Order
	// carts maps a user ID to ticket IDs in insertion order.
	carts map[string][]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now, carts: make(map[string][]string)}
}

// AddUser registers an account.
func (store *Store) AddUser(user User) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	store.users = append(store.users, user)
}

// AddEvent registers an event.
func (store *Store) AddEvent(event Event) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.events = append(store.events, event)
}

// AddTickets registers tickets.
func (store *Store) AddTickets(tickets ...Ticket) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.tickets = append(store.tickets, tickets...)
}

// AddOrder records a historical order, e.g. to give recommendation
// feeds something to work with.
func (store *Store) AddOrder(order Order) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = StatusPaid
	}
	store.orders = append(store.orders, order)
}

// Orders returns a copy of every order.
func (store *Store) Orders() []Order {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return slices.Clone(store.orders)
}

// UserByEmail finds an account by email, ignoring case.
func (store *Store) UserByEmail(email string) (User, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range store.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

// Users returns up to limit accounts sorted by name.
func (store *Store) Users(limit int) []ticketing.User {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	users := slices.Clone(store.users)
	slices.SortStableFunc(users, func(a, b User) int { return catalog.CompareLabels(a.Name, b.Name) })
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	result := make([]ticketing.User, 0, len(users))
	for _, user := range users {
		result = append(result, ticketing.User{ID: user.ID, Name: user.Name, Email: user.Email, PhoneNumber: user.Phone})
	}
	return result
}

// Events returns events whose title contains query, ignoring case,
// sorted by date, with the total before limiting.
func (store *Store) Events(query string, limit int) ([]ticketing.Event, int) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	query = strings.ToLower(strings.TrimSpace(query))
	var matched []Event
	for _, event := range store.events {
		if query == "" || strings.Contains(strings.ToLower(event.Title), query) {
			matched = append(matched, event)
		}
	}
	slices.SortStableFunc(matched, func(a, b Event) int { return a.Date.Compare(b.Date) })
	total := len(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	result := make([]ticketing.Event, 0, len(matched))
	for _, event := range matched {
		result = append(result, event.wire())
	}
	return result, total
}

// Event finds one event.
func (store *Store) Event(eventID string) (ticketing.Event, bool) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	event, ok := store.eventLocked(eventID)
	return event.wire(), ok
}

func (store *Store) eventLocked(eventID string) (Event, bool) {
	for _, event := range store.events {
		if event.ID == eventID {
			return event, true
		}
	}
	return Event{}, false
}

func (event Event) wire() ticketing.Event {
	wire := ticketing.Event{
		ID:          event.ID,
		Title:       event.Title,
		Category:    event.Category,
		Location:    event.Location,
		Description: event.Description,
	}
	if !event.Date.IsZero() {
		wire.Date = event.Date.UTC().Format(time.RFC3339)
	}
	return wire
}

// TicketFilter narrows GET /tickets. Prices are in cents; a negative
// bound is unset.
type TicketFilter struct {
	EventID  string
	Seat     string
	MinCents int
	MaxCents int
}

func (filter TicketFilter) matches(ticket Ticket) bool {
	if ticket.EventID != filter.EventID {
		return false
	}
	if filter.MinCents >= 0 && ticket.PriceCents < filter.MinCents {
		return false
	}
	if filter.MaxCents >= 0 && ticket.PriceCents > filter.MaxCents {
		return false
	}
	seat := strings.ToUpper(strings.TrimSpace(filter.Seat))
	switch seat {
	case "", "ALL":
		return true
	case "GA", "GENERAL", "GENERAL ADMISSION":
		return ticket.isGeneralAdmission()
	default:
		return strings.HasPrefix(strings.ToUpper(ticket.Seat), seat) ||
			strings.HasPrefix(strings.ToUpper(ticket.Type), seat)
	}
}

// Tickets lists the free tickets of an event: one aggregated GA row
// first, then each seated ticket.
func (store *Store) Tickets(filter TicketFilter) []ticketing.Ticket {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	held := store.heldLocked()
	var generalAdmission, seated []Ticket
	for _, ticket := range store.tickets {
		if held[ticket.ID] || !filter.matches(ticket) {
			continue
		}
		if ticket.isGeneralAdmission() {
			generalAdmission = append(generalAdmission, ticket)
		} else {
			seated = append(seated, ticket)
		}
	}

	var result []ticketing.Ticket
	if len(generalAdmission) > 0 {
		available := len(generalAdmission)
		result = append(result, ticketing.Ticket{
			ID:        ticketing.GeneralAdmissionID,
			EventID:   filter.EventID,
			Type:      ticketing.GeneralAdmissionID,
			Price:     ticketing.NewPrice(fromCents(generalAdmission[0].PriceCents)),
			Available: &available,
		})
	}
	for _, ticket := range seated {
		one := 1
		result = append(result, ticketing.Ticket{
			ID:        ticket.ID,
			EventID:   ticket.EventID,
			Type:      ticket.Type,
			Seat:      ticket.Seat,
			Price:     ticketing.NewPrice(fromCents(ticket.PriceCents)),
			Available: &one,
		})
	}
	catalog.SortTickets(result)
	return result
}

// heldLocked is the set of tickets in an active order or in any cart.
func (store *Store) heldLocked() map[string]bool {
	held := make(map[string]bool)
	for _, order := range store.orders {
		if order.Status != StatusPaid && order.Status != StatusPending {
			continue
		}
		for _, item := range order.Items {
			held[item.TicketID] = true
		}
	}
	for _, ticketIDs := range store.carts {
		for _, ticketID := range ticketIDs {
			held[ticketID] = true
		}
	}
	return held
}

func (store *Store) ticketLocked(ticketID string) (Ticket, bool) {
	for _, ticket := range store.tickets {
		if ticket.ID == ticketID {
			return ticket, true
		}
	}
	return Ticket{}, false
}

// Cart renders a user's cart.
func (store *Store) Cart(userID string) ticketing.Cart {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.cartLocked(userID)
}

func (store *Store) cartLocked(userID string) ticketing.Cart {
	cart := ticketing.Cart{Items: []ticketing.CartItem{}}
	totalCents := 0
	for _, ticketID := range store.carts[userID] {
		ticket, ok := store.ticketLocked(ticketID)
		if !ok {
			continue
		}
		totalCents += ticket.PriceCents
		cart.Items = append(cart.Items, ticketing.CartItem{
			TicketID: ticket.ID,
			EventID:  ticket.EventID,
			Type:     ticket.Type,
			Seat:     ticket.Seat,
			Price:    ticketing.NewPrice(fromCents(ticket.PriceCents)),
		})
	}
	cart.Total = ticketing.NewPrice(fromCents(totalCents))
	cart.Count = len(cart.Items)
	return cart
}

// AddToCart reserves a seated ticket for userID. added is false when
// the ticket was already in this user's cart.
func (store *Store) AddToCart(userID, ticketID string) (added bool, err error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if _, ok := store.ticketLocked(ticketID); !ok {
		return false, ErrTicketNotFound
	}
	if slices.Contains(store.carts[userID], ticketID) {
		return false, nil
	}
	if store.heldLocked()[ticketID] {
		return false, ErrTicketReserved
	}
	store.carts[userID] = append(store.carts[userID], ticketID)
	return true, nil
}

// AddGeneralAdmission reserves quantity free GA tickets of eventID.
func (store *Store) AddGeneralAdmission(userID, eventID string, quantity int) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if eventID == "" {
		return ErrEventIDRequired
	}
	if quantity < 1 {
		return ErrQuantityTooSmall
	}
	free := store.freeGeneralAdmissionLocked(eventID)
	if len(free) < quantity {
		return &AvailabilityError{Available: len(free)}
	}
	for _, ticket := range free[:quantity] {
		store.carts[userID] = append(store.carts[userID], ticket.ID)
	}
	return nil
}

func (store *Store) freeGeneralAdmissionLocked(eventID string) []Ticket {
	held := store.heldLocked()
	var free []Ticket
	for _, ticket := range store.tickets {
		if ticket.EventID == eventID && ticket.isGeneralAdmission() && !held[ticket.ID] {
			free = append(free, ticket)
		}
	}
	return free
}

// RemoveFromCart releases a ticket from a user's cart.
func (store *Store) RemoveFromCart(userID, ticketID string) bool {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	index := slices.Index(store.carts[userID], ticketID)
	if index < 0 {
		return false
	}
	store.carts[userID] = slices.Delete(store.carts[userID], index, index+1)
	return true
}

// ClearCart releases every ticket in a user's cart.
func (store *Store) ClearCart(userID string) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	delete(store.carts, userID)
}

// Checkout turns a user's cart into a paid order and empties the cart.
func (store *Store) Checkout(userID string) (Order, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	ticketIDs := store.carts[userID]
	if len(ticketIDs) == 0 {
		return Order{}, ErrCartEmpty
	}
	// Release the cart first so its own tickets do not count as held.
	delete(store.carts, userID)
	order, err := store.createOrderLocked(userID, ticketIDs, StatusPaid)
	if err != nil {
		store.carts[userID] = ticketIDs
		return Order{}, err
	}
	return order, nil
}

// OrderLine is one requested line of a direct order: a seated ticket,
// or Quantity GA tickets of EventID.
type OrderLine struct {
	TicketID string
	Quantity int
	EventID  string
}

// CreateOrder places a pending order for userID directly, bypassing
// the cart.
func (store *Store) CreateOrder(userID string, lines []OrderLine) (Order, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	var ticketIDs []string
	for _, line := range lines {
		if line.TicketID != ticketing.GeneralAdmissionID {
			ticketIDs = append(ticketIDs, line.TicketID)
			continue
		}
		quantity := max(line.Quantity, 1)
		free := store.freeGeneralAdmissionLocked(line.EventID)
		if line.EventID == "" {
			return Order{}, ErrEventIDRequired
		}
		if len(free) < quantity {
			return Order{}, &AvailabilityError{Available: len(free)}
		}
		for _, ticket := range free[:quantity] {
			ticketIDs = append(ticketIDs, ticket.ID)
		}
	}
	return store.createOrderLocked(userID, ticketIDs, StatusPending)
}

func (store *Store) createOrderLocked(userID string, ticketIDs []string, status string) (Order, error) {
	held := store.heldLocked()
	order := Order{ID: uuid.NewString(), UserID: userID, Status: status, OrderDate: store.now().UTC()}
	seen := make(map[string]bool)
	for _, ticketID := range ticketIDs {
		ticket, ok := store.ticketLocked(ticketID)
		if !ok {
			return Order{}, ErrTicketNotFound
		}
		if held[ticketID] || seen[ticketID] {
			return Order{}, ErrTicketReserved
		}
		seen[ticketID] = true
		order.Items = append(order.Items, OrderItem{
			TicketID:   ticket.ID,
			EventID:    ticket.EventID,
			Type:       ticket.Type,
			Seat:       ticket.Seat,
			PriceCents: ticket.PriceCents,
		})
		order.TotalCents += ticket.PriceCents
	}
	store.orders = append(store.orders, order)
	return order, nil
}

func fromCents(cents int) float64 {
	return math.Round(float64(cents)) / 100
}

// toCents converts a decimal amount to cents, truncating like the
// platform's price filter.
func toCents(amount float64) int {
	return int(amount * 100)
}
