// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
	"github.com/bureau-foundation/boxoffice/lib/storefront"
)

// fakePlatform is an in-memory cart. Tickets listed in refuse fail to
// add; every call is counted.
type fakePlatform struct {
	mutex sync.Mutex

	items  []ticketing.CartItem
	refuse map[string]bool

	cartErr     error
	removeErr   error
	checkout    func(ctx context.Context) (*storefront.SubmitResult, error)
	createOrder func(ctx context.Context, request ticketing.CreateOrderRequest) (*storefront.SubmitResult, error)

	cartCalls   int
	addCalls    int
	gaCalls     int
	removeCalls int
	clearCalls  int
	orders      []ticketing.CreateOrderRequest
}

var errReserved = errors.New("add to cart: HTTP 409: ticket already reserved/sold")

func (platform *fakePlatform) Cart(context.Context) (*ticketing.Cart, error) {
	platform.mutex.Lock()
	defer platform.mutex.Unlock()
	platform.cartCalls++
	if platform.cartErr != nil {
		return nil, platform.cartErr
	}
	cart := &ticketing.Cart{Items: append([]ticketing.CartItem(nil), platform.items...)}
	total := 0.0
	for _, item := range platform.items {
		total += item.Price.Value()
	}
	cart.Total = ticketing.NewPrice(total)
	cart.Count = len(platform.items)
	return cart, nil
}

func (platform *fakePlatform) AddToCart(_ context.Context, ticketID string) error {
	platform.mutex.Lock()
	defer platform.mutex.Unlock()
	platform.addCalls++
	if platform.refuse[ticketID] {
		return errReserved
	}
	platform.items = append(platform.items, ticketing.CartItem{
		TicketID: ticketID,
		Type:     "Seated",
		Seat:     ticketID,
		Price:    ticketing.NewPrice(10),
	})
	return nil
}

func (platform *fakePlatform) AddGeneralAdmission(_ context.Context, eventID string, quantity int) error {
	platform.mutex.Lock()
	defer platform.mutex.Unlock()
	platform.gaCalls++
	if platform.refuse[ticketing.GeneralAdmissionID] {
		return errors.New("add general admission: HTTP 409: not enough GA available")
	}
	for range quantity {
		platform.items = append(platform.items, ticketing.CartItem{
			TicketID: ticketing.GeneralAdmissionID,
			EventID:  eventID,
			Type:     "GA",
			Price:    ticketing.NewPrice(25),
		})
	}
	return nil
}

func (platform *fakePlatform) RemoveFromCart(_ context.Context, ticketID string) error {
	platform.mutex.Lock()
	defer platform.mutex.Unlock()
	platform.removeCalls++
	if platform.removeErr != nil {
		return platform.removeErr
	}
	for index, item := range platform.items {
		if item.TicketID == ticketID {
			platform.items = append(platform.items[:index], platform.items[index+1:]...)
			break
		}
	}
	return nil
}

func (platform *fakePlatform) ClearCart(context.Context) error {
	platform.mutex.Lock()
	defer platform.mutex.Unlock()
	platform.clearCalls++
	platform.items = nil
	return nil
}

func (platform *fakePlatform) Checkout(ctx context.Context) (*storefront.SubmitResult, error) {
	return platform.checkout(ctx)
}

func (platform *fakePlatform) CreateOrder(ctx context.Context, request ticketing.CreateOrderRequest) (*storefront.SubmitResult, error) {
	platform.mutex.Lock()
	platform.orders = append(platform.orders, request)
	platform.mutex.Unlock()
	return platform.createOrder(ctx, request)
}

func (platform *fakePlatform) counts() (cart, add, ga, remove, clear int) {
	platform.mutex.Lock()
	defer platform.mutex.Unlock()
	return platform.cartCalls, platform.addCalls, platform.gaCalls, platform.removeCalls, platform.clearCalls
}
