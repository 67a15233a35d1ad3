// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fakeplatform

import (
	"fmt"
	"time"
)

// Seed identifiers, stable so tests and demos can refer to them.
const (
	SeedUserAda    = "u-ada"
	SeedUserBo     = "u-bo"
	SeedUserCyd    = "u-cyd"
	SeedEventRock  = "e-rock"
	SeedEventJazz  = "e-jazz"
	SeedEventOpera = "e-opera"
	SeedEventIndie = "e-indie"
)

// SeedData fills store with a small box office: three users, four
// events with seated and general admission tickets, and purchase
// history that gives every recommendation feed something to show.
func SeedData(store *Store) {
	store.AddUser(User{ID: SeedUserAda, Name: "Ada Lovelace", Email: "ada@example.com", Phone: "+370 600 00001"})
	store.AddUser(User{ID: SeedUserBo, Name: "Bo Diddley", Email: "bo@example.com"})
	store.AddUser(User{ID: SeedUserCyd, Name: "Cyd Charisse", Email: "cyd@example.com"})

	base := time.Date(2026, time.November, 6, 19, 0, 0, 0, time.UTC)
	store.AddEvent(Event{
		ID: SeedEventRock, Title: "Rock Night", Category: "Rock", Date: base,
		Location: "Vilnius Arena", Description: "Three bands, one **loud** evening.",
	})
	store.AddEvent(Event{
		ID: SeedEventJazz, Title: "Jazz Club Sessions", Category: "Jazz", Date: base.AddDate(0, 0, 7),
		Location: "Kaunas Jazz Cellar", Description: "Late set with the house trio.",
	})
	store.AddEvent(Event{
		ID: SeedEventOpera, Title: "La Traviata", Category: "Opera", Date: base.AddDate(0, 0, 14),
		Location: "Vilnius Arena", Description: "Verdi in three acts.",
	})
	store.AddEvent(Event{
		ID: SeedEventIndie, Title: "Rooftop Indie", Category: "Rock", Date: base.AddDate(0, 1, 0),
		Location: "Klaipeda Harbour", Description: "Open air, bring a jacket.",
	})

	for index := 1; index <= 40; index++ {
		store.AddTickets(Ticket{
			ID: fmt.Sprintf("t-rock-ga-%02d", index), EventID: SeedEventRock,
			Type: "GA", PriceCents: 2500, GeneralAdmission: true,
		})
	}
	for _, row := range []string{"A", "B"} {
		for seat := 1; seat <= 12; seat++ {
			store.AddTickets(Ticket{
				ID: fmt.Sprintf("t-rock-%s%d", row, seat), EventID: SeedEventRock,
				Type: "Seated", Seat: fmt.Sprintf("%s%d", row, seat), PriceCents: 4000,
			})
		}
	}
	for seat := 1; seat <= 10; seat++ {
		store.AddTickets(Ticket{
			ID: fmt.Sprintf("t-jazz-T%d", seat), EventID: SeedEventJazz,
			Type: "Table", Seat: fmt.Sprintf("T%d", seat), PriceCents: 3550,
		})
	}
	for seat := 1; seat <= 8; seat++ {
		store.AddTickets(Ticket{
			ID: fmt.Sprintf("t-opera-S%d", seat), EventID: SeedEventOpera,
			Type: "Stalls", Seat: fmt.Sprintf("S%d", seat), PriceCents: 8900,
		})
	}
	for index := 1; index <= 15; index++ {
		store.AddTickets(Ticket{
			ID: fmt.Sprintf("t-indie-ga-%02d", index), EventID: SeedEventIndie,
			Type: "GA", PriceCents: 1800, GeneralAdmission: true,
		})
	}

	// Ada and Bo both went to Rock Night; Bo also bought jazz. Cyd is
	// the opera regular.
	store.AddOrder(Order{UserID: SeedUserAda, Items: []OrderItem{{TicketID: "t-rock-A1", EventID: SeedEventRock, PriceCents: 4000}}, TotalCents: 4000})
	store.AddOrder(Order{UserID: SeedUserBo, Items: []OrderItem{{TicketID: "t-rock-A2", EventID: SeedEventRock, PriceCents: 4000}}, TotalCents: 4000})
	store.AddOrder(Order{UserID: SeedUserBo, Items: []OrderItem{{TicketID: "t-jazz-T1", EventID: SeedEventJazz, PriceCents: 3550}}, TotalCents: 3550})
	store.AddOrder(Order{UserID: SeedUserCyd, Items: []OrderItem{{TicketID: "t-opera-S1", EventID: SeedEventOpera, PriceCents: 8900}}, TotalCents: 8900})
}
