// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Price is a monetary amount in major units as sent by the platform.
// Prices arrive as JSON numbers or numeric strings; anything else
// (null, empty, "n/a", NaN) decodes without error into an invalid
// Price, which contributes nothing to totals.
type Price struct {
	Amount float64
	Valid  bool
}

// NewPrice returns a valid Price.
func NewPrice(amount float64) Price {
	return Price{Amount: amount, Valid: true}
}

// ParsePrice coerces user or wire text into a Price. A comma decimal
// separator is accepted.
func ParsePrice(text string) Price {
	text = strings.TrimSpace(text)
	if text == "" {
		return Price{}
	}
	amount, err := strconv.ParseFloat(strings.Replace(text, ",", ".", 1), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Price{}
	}
	return NewPrice(amount)
}

// Value returns the amount, or zero for an invalid price.
func (price Price) Value() float64 {
	if !price.Valid {
		return 0
	}
	return price.Amount
}

// UnmarshalJSON accepts a number, a numeric string, or null.
func (price *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*price = Price{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return nil
		}
		*price = ParsePrice(text)
		return nil
	}
	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return nil
	}
	*price = NewPrice(amount)
	return nil
}

// MarshalJSON writes the amount as a number, or null when invalid.
func (price Price) MarshalJSON() ([]byte, error) {
	if !price.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(price.Amount)
}
