// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketing

// Identity is the GET /auth/me response.
type Identity struct {
	Authenticated bool   `json:"authenticated"`
	UserType      string `json:"userType,omitempty"`
	UserID        string `json:"userId,omitempty"`
}

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Email string `json:"email"`
}

// LoginResponse is the POST /auth/login success body.
type LoginResponse struct {
	OK       bool   `json:"ok"`
	UserID   string `json:"userId"`
	UserType string `json:"userType"`
}

// User is a platform account, listed for the direct purchase picker.
type User struct {
	ID          string `json:"_id"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// DisplayName is "Name (email)", or the email alone.
func (user User) DisplayName() string {
	if user.Name == "" {
		return user.Email
	}
	return user.Name + " (" + user.Email + ")"
}

// UserPage is the envelope of GET /users.
type UserPage struct {
	Data []User   `json:"data"`
	Meta PageMeta `json:"meta,omitempty"`
}
