// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fakeplatform

import (
	"cmp"
	"slices"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// maxRecommendations matches the platform's LIMIT on each feed.
const maxRecommendations = 10

// maxPathLength bounds explanation searches, in hops.
const maxPathLength = 5

// purchasesLocked maps each user to the set of events they hold paid
// or pending tickets for.
func (store *Store) purchasesLocked() map[string]map[string]bool {
	purchases := make(map[string]map[string]bool)
	for _, order := range store.orders {
		if order.Status != StatusPaid && order.Status != StatusPending {
			continue
		}
		for _, item := range order.Items {
			eventID := item.EventID
			if eventID == "" {
				if ticket, ok := store.ticketLocked(item.TicketID); ok {
					eventID = ticket.EventID
				}
			}
			if eventID == "" {
				continue
			}
			if purchases[order.UserID] == nil {
				purchases[order.UserID] = make(map[string]bool)
			}
			purchases[order.UserID][eventID] = true
		}
	}
	return purchases
}

type scored struct {
	event Event
	score float64
}

func (store *Store) rank(scores map[string]float64) []scored {
	var ranked []scored
	for eventID, score := range scores {
		if event, ok := store.eventLocked(eventID); ok {
			ranked = append(ranked, scored{event: event, score: score})
		}
	}
	slices.SortFunc(ranked, func(a, b scored) int {
		if order := cmp.Compare(b.score, a.score); order != 0 {
			return order
		}
		return cmp.Compare(a.event.ID, b.event.ID)
	})
	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}
	return ranked
}

func (ranked scored) recommendation() ticketing.Recommendation {
	wire := ranked.event.wire()
	return ticketing.Recommendation{
		EventID:   wire.ID,
		Title:     wire.Title,
		Category:  wire.Category,
		EventDate: wire.Date,
		VenueID:   ranked.event.Location,
	}
}

// Recommendations computes one feed for userID:
//
//   - for-you: events bought by users who share a purchase with the
//     user, scored by the number of such neighbours
//   - nearby: events at venues the user has bought for, scored by the
//     number of the user's events at that venue
//   - deep: events in categories the user's neighbours bought, scored
//     by neighbour purchase count in the category
//
// Events the user already holds are never recommended.
func (store *Store) Recommendations(userID string, kind ticketing.RecommendationKind) []ticketing.Recommendation {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	purchases := store.purchasesLocked()
	mine := purchases[userID]
	neighbours := make(map[string]bool)
	for other, events := range purchases {
		if other == userID {
			continue
		}
		for eventID := range events {
			if mine[eventID] {
				neighbours[other] = true
				break
			}
		}
	}

	scores := make(map[string]float64)
	switch kind {
	case ticketing.RecommendNearby:
		venues := make(map[string]float64)
		for eventID := range mine {
			if event, ok := store.eventLocked(eventID); ok && event.Location != "" {
				venues[event.Location]++
			}
		}
		for _, event := range store.events {
			if weight := venues[event.Location]; weight > 0 && !mine[event.ID] {
				scores[event.ID] = weight
			}
		}
	case ticketing.RecommendDeep:
		categories := make(map[string]float64)
		for neighbour := range neighbours {
			for eventID := range purchases[neighbour] {
				if event, ok := store.eventLocked(eventID); ok && event.Category != "" {
					categories[event.Category]++
				}
			}
		}
		for _, event := range store.events {
			if weight := categories[event.Category]; weight > 0 && !mine[event.ID] {
				scores[event.ID] = weight
			}
		}
	default:
		for neighbour := range neighbours {
			for eventID := range purchases[neighbour] {
				if !mine[eventID] {
					scores[eventID]++
				}
			}
		}
	}

	result := []ticketing.Recommendation{}
	for _, ranked := range store.rank(scores) {
		recommendation := ranked.recommendation()
		score := ranked.score
		switch kind {
		case ticketing.RecommendNearby:
			recommendation.Relevance = &score
		case ticketing.RecommendDeep:
			recommendation.DeepScore = &score
		default:
			recommendation.Score = &score
		}
		result = append(result, recommendation)
	}
	return result
}

// node identifies a vertex of the purchase graph.
type node struct {
	kind string // "User", "Event" or "Category"
	id   string
}

// Explain finds the shortest path from userID to eventID through
// purchases (User-Event) and categories (Event-Category), up to
// maxPathLength hops.
func (store *Store) Explain(userID, eventID string) (ticketing.Explanation, bool) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	purchases := store.purchasesLocked()
	edges := make(map[node][]node)
	link := func(a, b node) {
		edges[a] = append(edges[a], b)
		edges[b] = append(edges[b], a)
	}
	for buyer, events := range purchases {
		for purchased := range events {
			link(node{"User", buyer}, node{"Event", purchased})
		}
	}
	for _, event := range store.events {
		if event.Category != "" {
			link(node{"Event", event.ID}, node{"Category", event.Category})
		}
	}
	for from := range edges {
		slices.SortFunc(edges[from], func(a, b node) int {
			return cmp.Or(cmp.Compare(a.kind, b.kind), cmp.Compare(a.id, b.id))
		})
	}

	start, goal := node{"User", userID}, node{"Event", eventID}
	previous := map[node]node{start: start}
	depth := map[node]int{start: 0}
	queue := []node{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			break
		}
		if depth[current] == maxPathLength {
			continue
		}
		for _, next := range edges[current] {
			if _, seen := previous[next]; seen {
				continue
			}
			previous[next] = current
			depth[next] = depth[current] + 1
			queue = append(queue, next)
		}
	}
	if _, found := previous[goal]; !found {
		return ticketing.Explanation{}, false
	}

	var path []node
	for current := goal; current != start; current = previous[current] {
		path = append(path, current)
	}
	path = append(path, start)
	slices.Reverse(path)

	explanation := ticketing.Explanation{Distance: len(path) - 1}
	for _, step := range path {
		explanation.Path = append(explanation.Path, store.pathNodeLocked(step))
	}
	return explanation, true
}

func (store *Store) pathNodeLocked(step node) ticketing.PathNode {
	switch step.kind {
	case "Event":
		event, _ := store.eventLocked(step.id)
		return ticketing.PathNode{Type: step.kind, ID: step.id, Title: event.Title}
	case "Category":
		return ticketing.PathNode{Type: step.kind, Name: step.id}
	default:
		return ticketing.PathNode{Type: step.kind, ID: step.id}
	}
}
