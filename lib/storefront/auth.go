// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// Login starts a session for the account with the given email. The
// platform answers with a session cookie, which the client's jar keeps
// for subsequent calls.
func (client *Client) Login(ctx context.Context, email string) (*ticketing.LoginResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("login: email is required")
	}
	var result ticketing.LoginResponse
	if err := client.call(ctx, "login", http.MethodPost, "/auth/login", nil, ticketing.LoginRequest{Email: email}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me reports the identity behind the current session. A 401 response
// is not an error: it yields an unauthenticated Identity.
func (client *Client) Me(ctx context.Context) (*ticketing.Identity, error) {
	var result ticketing.Identity
	err := client.call(ctx, "auth check", http.MethodGet, "/auth/me", nil, nil, &result)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
			return &ticketing.Identity{}, nil
		}
		return nil, err
	}
	return &result, nil
}

// Logout ends the session on the platform and drops the local session
// cookie regardless of the outcome.
func (client *Client) Logout(ctx context.Context) error {
	err := client.call(ctx, "logout", http.MethodPost, "/auth/logout", nil, nil, nil)
	client.ForgetSession()
	return err
}
