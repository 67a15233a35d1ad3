// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package discover

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/bureau-foundation/boxoffice/lib/format"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
	"github.com/bureau-foundation/boxoffice/lib/storefront"
)

// PanelTitle is the heading of each recommendation feed.
func PanelTitle(kind ticketing.RecommendationKind) string {
	switch kind {
	case ticketing.RecommendNearby:
		return "Popular near you"
	case ticketing.RecommendDeep:
		return "You might also like"
	default:
		return "Recommended for you"
	}
}

// Pick is one recommended event.
type Pick struct {
	EventID  string
	Title    string
	Category string
	When     string
	// Score is the feed's ranking value, "" when the feed sent none.
	Score string
}

// Panel is one recommendation feed. A failed feed has Err set and no
// picks; the other panels are unaffected.
type Panel struct {
	Kind  ticketing.RecommendationKind
	Title string
	Picks []Pick
	Err   error
}

// Message is the placeholder for a panel without picks.
func (panel Panel) Message() string {
	switch {
	case panel.Err != nil:
		return "Failed to load recommendations"
	case len(panel.Picks) == 0:
		return "Nothing to recommend yet"
	default:
		return ""
	}
}

// Recommendations fetches one feed.
func (service *Service) Recommendations(ctx context.Context, userID string, kind ticketing.RecommendationKind) Panel {
	if kind == "" {
		kind = ticketing.RecommendForYou
	}
	panel := Panel{Kind: kind, Title: PanelTitle(kind)}
	recommendations, err := service.platform.Recommendations(ctx, userID, kind)
	if err != nil {
		service.logger.Warn("loading recommendations failed", "kind", string(kind), "error", err)
		panel.Err = err
		return panel
	}
	for _, recommendation := range recommendations {
		panel.Picks = append(panel.Picks, service.pick(recommendation))
	}
	return panel
}

// Panels fetches every feed concurrently, in RecommendationKinds
// order.
func (service *Service) Panels(ctx context.Context, userID string) []Panel {
	panels := make([]Panel, len(ticketing.RecommendationKinds))
	var group sync.WaitGroup
	for index, kind := range ticketing.RecommendationKinds {
		group.Go(func() {
			panels[index] = service.Recommendations(ctx, userID, kind)
		})
	}
	group.Wait()
	return panels
}

func (service *Service) pick(recommendation ticketing.Recommendation) Pick {
	title := format.Line(recommendation.Title)
	if title == "" {
		title = untitled
	}
	pick := Pick{
		EventID:  recommendation.EventID,
		Title:    title,
		Category: format.Line(recommendation.Category),
		When:     service.formatter.Date(recommendation.EventDate),
	}
	if recommendation.Score != nil || recommendation.Relevance != nil || recommendation.DeepScore != nil {
		pick.Score = strconv.FormatFloat(recommendation.Rank(), 'f', -1, 64)
	}
	return pick
}

// MessageNoPath is shown when the graph has no path between the user
// and the event.
const MessageNoPath = "No connection found"

// Explanation is the rendered path from the user to a recommended
// event.
type Explanation struct {
	Steps    []string
	Distance int
	// Text is the whole path on one line, or MessageNoPath.
	Text string
}

// Explain describes why eventID was recommended to userID. A missing
// path is not an error: Text is MessageNoPath.
func (service *Service) Explain(ctx context.Context, userID, eventID string) (Explanation, error) {
	explanation, err := service.platform.Explain(ctx, userID, eventID)
	if errors.Is(err, storefront.ErrNoPath) {
		return Explanation{Text: MessageNoPath}, nil
	}
	if err != nil {
		return Explanation{}, err
	}
	result := Explanation{Distance: explanation.Distance}
	for _, node := range explanation.Path {
		label := format.Line(node.Label())
		if node.Type != "" {
			label = fmt.Sprintf("%s %s", node.Type, label)
		}
		result.Steps = append(result.Steps, label)
	}
	if len(result.Steps) == 0 {
		result.Text = MessageNoPath
		return result, nil
	}
	result.Text = strings.Join(result.Steps, " → ") + " (" + format.Plural(result.Distance, "hop", "") + ")"
	return result, nil
}
