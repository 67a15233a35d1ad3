// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefront

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// recommendationPath returns the route serving one feed.
func recommendationPath(userID string, kind ticketing.RecommendationKind) (string, error) {
	base := "/api/recommendations/user/" + url.PathEscape(userID)
	switch kind {
	case ticketing.RecommendForYou, "":
		return base, nil
	case ticketing.RecommendNearby:
		return base + "/nearby", nil
	case ticketing.RecommendDeep:
		return base + "/deep", nil
	default:
		return "", fmt.Errorf("unknown recommendation kind %q", kind)
	}
}

// Recommendations returns one graph recommendation feed for a user.
func (client *Client) Recommendations(ctx context.Context, userID string, kind ticketing.RecommendationKind) ([]ticketing.Recommendation, error) {
	if userID == "" {
		return nil, fmt.Errorf("recommendations: user ID is required")
	}
	path, err := recommendationPath(userID, kind)
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	return list[ticketing.Recommendation](ctx, client, "recommendations", path, nil)
}

// Explain returns the shortest graph path linking a user to a
// recommended event, or ErrNoPath when none exists.
func (client *Client) Explain(ctx context.Context, userID, eventID string) (*ticketing.Explanation, error) {
	if userID == "" || eventID == "" {
		return nil, fmt.Errorf("explain: user ID and event ID are required")
	}
	path := "/api/recommendations/explain/" + url.PathEscape(userID) + "/" + url.PathEscape(eventID)
	var explanation ticketing.Explanation
	err := client.call(ctx, "explain", http.MethodGet, path, nil, nil, &explanation)
	if IsStatus(err, http.StatusNotFound) {
		return nil, ErrNoPath
	}
	if err != nil {
		return nil, err
	}
	return &explanation, nil
}
