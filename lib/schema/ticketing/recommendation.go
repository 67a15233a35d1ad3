// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketing

// RecommendationKind selects one of the graph recommendation feeds.
type RecommendationKind string

const (
	// RecommendForYou ranks events bought by users with similar
	// purchase and view history.
	RecommendForYou RecommendationKind = "for-you"
	// RecommendNearby ranks events at venues the user already visited.
	RecommendNearby RecommendationKind = "nearby"
	// RecommendDeep ranks events in the categories most viewed by the
	// user's closest neighbours.
	RecommendDeep RecommendationKind = "deep"
)

// RecommendationKinds lists the feeds in panel order.
var RecommendationKinds = []RecommendationKind{RecommendForYou, RecommendNearby, RecommendDeep}

// Recommendation is one recommended event. Each feed reports its
// ranking under a different field; Rank returns whichever is set.
type Recommendation struct {
	EventID   string `json:"eventId"`
	Title     string `json:"title"`
	Category  string `json:"category,omitempty"`
	EventDate string `json:"eventDate,omitempty"`
	VenueID   string `json:"venueId,omitempty"`

	Score     *float64 `json:"score,omitempty"`
	Relevance *float64 `json:"relevance,omitempty"`
	DeepScore *float64 `json:"deepScore,omitempty"`
}

// Rank returns the feed-specific score, or zero when none was sent.
func (recommendation Recommendation) Rank() float64 {
	for _, value := range []*float64{recommendation.Score, recommendation.Relevance, recommendation.DeepScore} {
		if value != nil {
			return *value
		}
	}
	return 0
}

// PathNode is one hop of a recommendation explanation.
type PathNode struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Label is the most human-readable identifier of the node.
func (node PathNode) Label() string {
	switch {
	case node.Title != "":
		return node.Title
	case node.Name != "":
		return node.Name
	default:
		return node.ID
	}
}

// Explanation is the shortest graph path from a user to a
// recommended event.
type Explanation struct {
	Path     []PathNode `json:"path"`
	Distance int        `json:"distance"`
}
