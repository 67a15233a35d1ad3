// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/bureau-foundation/boxoffice/lib/format"
	"github.com/bureau-foundation/boxoffice/lib/schema/ticketing"
)

// PriceRecord is what the aggregator knows about one row.
type PriceRecord struct {
	Price     ticketing.Price
	Available int
}

// Submission is a selection ready for the cart: seated ticket IDs in
// display order plus an optional GA quantity.
type Submission struct {
	EventID   string
	TicketIDs []string

	// Quantity of general-admission tickets; zero means none.
	GeneralAdmission int
}

// Len is the number of add-to-cart calls the submission produces.
func (submission Submission) Len() int {
	count := len(submission.TicketIDs)
	if submission.GeneralAdmission > 0 {
		count++
	}
	return count
}

// Selection is the client-local overlay on one loaded View. Build a new
// Selection for every successful load; a selection never outlives the
// view it was created from. Safe for concurrent use.
type Selection struct {
	eventID   string
	formatter *format.Formatter

	// records maps every row ID, including the GA aggregate, to its
	// price and availability.
	records map[string]PriceRecord
	// order lists seated IDs in display order.
	order []string

	mutex      sync.Mutex
	checked    map[string]bool
	gaSelected bool
	gaQuantity int
}

// NewSelection creates an empty selection over view. A nil formatter
// uses format.Default.
func NewSelection(view View, formatter *format.Formatter) *Selection {
	if formatter == nil {
		formatter = format.Default()
	}
	selection := &Selection{
		eventID:   view.EventID,
		formatter: formatter,
		records:   make(map[string]PriceRecord, len(view.Seated)+1),
		checked:   make(map[string]bool),
	}
	if view.GeneralAdmission != nil {
		selection.records[ticketing.GeneralAdmissionID] = PriceRecord{
			Price:     view.GeneralAdmission.Price,
			Available: view.GeneralAdmission.Available,
		}
	}
	for _, row := range view.Seated {
		selection.records[row.ID] = PriceRecord{Price: row.Price, Available: row.Available}
		selection.order = append(selection.order, row.ID)
	}
	return selection
}

// Record returns the price record of a row.
func (selection *Selection) Record(id string) (PriceRecord, bool) {
	record, ok := selection.records[id]
	return record, ok
}

// SetChecked checks or unchecks a seated row.
func (selection *Selection) SetChecked(id string, checked bool) error {
	if id == ticketing.GeneralAdmissionID {
		return fmt.Errorf("general admission is selected by quantity, not checked")
	}
	if _, ok := selection.records[id]; !ok {
		return fmt.Errorf("ticket %q is not in the catalog", id)
	}
	selection.mutex.Lock()
	defer selection.mutex.Unlock()
	if checked {
		selection.checked[id] = true
	} else {
		delete(selection.checked, id)
	}
	return nil
}

// Toggle flips a seated row and returns its new state.
func (selection *Selection) Toggle(id string) (bool, error) {
	checked := !selection.IsChecked(id)
	if err := selection.SetChecked(id, checked); err != nil {
		return false, err
	}
	return checked, nil
}

// IsChecked reports whether a seated row is checked.
func (selection *Selection) IsChecked(id string) bool {
	selection.mutex.Lock()
	defer selection.mutex.Unlock()
	return selection.checked[id]
}

// ClampQuantity clamps a GA quantity into [1, available].
func ClampQuantity(quantity, available int) int {
	if available < 1 {
		return 0
	}
	return max(1, min(quantity, available))
}

// ParseQuantity reads a quantity typed by the user. Fractions are
// truncated; anything non-numeric reads as 0, which clamping raises
// to 1.
func ParseQuantity(text string) int {
	text = strings.TrimSpace(text)
	if quantity, err := strconv.Atoi(text); err == nil {
		return quantity
	}
	value, err := strconv.ParseFloat(strings.Replace(text, ",", ".", 1), 64)
	if err != nil || math.IsNaN(value) {
		return 0
	}
	if value > math.MaxInt32 {
		return math.MaxInt32
	}
	if value < math.MinInt32 {
		return math.MinInt32
	}
	return int(value)
}

// SetGeneralAdmission selects quantity GA tickets, clamped into
// [1, available]. It returns the effective quantity. Selecting GA on
// an event without GA availability is an error.
func (selection *Selection) SetGeneralAdmission(quantity int) (int, error) {
	record, ok := selection.records[ticketing.GeneralAdmissionID]
	if !ok || record.Available < 1 {
		return 0, fmt.Errorf("no general admission tickets available")
	}
	effective := ClampQuantity(quantity, record.Available)
	selection.mutex.Lock()
	defer selection.mutex.Unlock()
	selection.gaSelected = true
	selection.gaQuantity = effective
	return effective, nil
}

// SetGeneralAdmissionText is SetGeneralAdmission for raw input.
func (selection *Selection) SetGeneralAdmissionText(text string) (int, error) {
	return selection.SetGeneralAdmission(ParseQuantity(text))
}

// ClearGeneralAdmission drops the GA pseudo-selection.
func (selection *Selection) ClearGeneralAdmission() {
	selection.mutex.Lock()
	defer selection.mutex.Unlock()
	selection.gaSelected = false
	selection.gaQuantity = 0
}

// GeneralAdmission returns the selected GA quantity, 0 when none.
func (selection *Selection) GeneralAdmission() int {
	selection.mutex.Lock()
	defer selection.mutex.Unlock()
	if !selection.gaSelected {
		return 0
	}
	return selection.gaQuantity
}

// Reset unchecks everything.
func (selection *Selection) Reset() {
	selection.mutex.Lock()
	defer selection.mutex.Unlock()
	selection.checked = make(map[string]bool)
	selection.gaSelected = false
	selection.gaQuantity = 0
}

// Total sums the checked seated prices and GA quantity times the GA
// price. Invalid prices contribute zero.
func (selection *Selection) Total() float64 {
	selection.mutex.Lock()
	defer selection.mutex.Unlock()

	total := 0.0
	for _, id := range selection.order {
		if selection.checked[id] {
			total += selection.records[id].Price.Value()
		}
	}
	if selection.gaSelected {
		total += float64(selection.gaQuantity) * selection.records[ticketing.GeneralAdmissionID].Price.Value()
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0
	}
	return total
}

// DisplayTotal formats Total, or the em-dash placeholder when it is
// zero.
func (selection *Selection) DisplayTotal() string {
	return selection.formatter.Total(selection.Total())
}

// TotalLabel is the order total line, e.g. "Order total: € 55.00".
func (selection *Selection) TotalLabel() string {
	return "Order total: " + selection.DisplayTotal()
}

// Count is the number of tickets selected, GA quantity included.
func (selection *Selection) Count() int {
	selection.mutex.Lock()
	defer selection.mutex.Unlock()
	count := len(selection.checked)
	if selection.gaSelected {
		count += selection.gaQuantity
	}
	return count
}

// Submission returns the current selection for submission to the
// cart.
func (selection *Selection) Submission() Submission {
	selection.mutex.Lock()
	defer selection.mutex.Unlock()
	submission := Submission{EventID: selection.eventID}
	for _, id := range selection.order {
		if selection.checked[id] {
			submission.TicketIDs = append(submission.TicketIDs, id)
		}
	}
	if selection.gaSelected {
		submission.GeneralAdmission = selection.gaQuantity
	}
	return submission
}
