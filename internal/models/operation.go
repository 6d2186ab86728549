// Package models defines the tracker domain types
package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day format operations are recorded with.
// Day granularity, no time component.
const DateLayout = "02/01/2006"

// PeriodLayout is the normalized period-key format derived from an
// operation date. Zero-padded and year-first so that lexicographic order
// over period keys equals chronological order.
const PeriodLayout = "2006-01-02"

// MaxOperationValue bounds amount and qty on input.
var MaxOperationValue = decimal.NewFromInt(1_000_000_000)

// Operation is a single recorded contribution/purchase event for one
// ticker. Operations are immutable and append-only: the ordered sequence
// of operations (the ledger) is the sole persisted mutable state of the
// domain. Removal happens only by explicit deletion by ledger position.
type Operation struct {
	Date   string          `json:"date"` // DD/MM/YYYY
	Ticker string          `json:"ticker"`
	Amount decimal.Decimal `json:"amount"`
	Qty    decimal.Decimal `json:"qty"`
}

// ParseDate returns the operation date as a time value.
func (o Operation) ParseDate() (time.Time, error) {
	return time.Parse(DateLayout, o.Date)
}

// PeriodKey returns the normalized period key for this operation,
// truncated to day granularity.
func (o Operation) PeriodKey() (string, error) {
	t, err := o.ParseDate()
	if err != nil {
		return "", err
	}
	return t.Format(PeriodLayout), nil
}

// Validate checks an operation against the input contract. Invalid
// operations are rejected before they enter the ledger; the ledger never
// contains invalid rows.
func (o Operation) Validate() error {
	if _, err := o.ParseDate(); err != nil {
		return &ValidationError{Field: "date", Message: fmt.Sprintf("invalid date %q, expected DD/MM/YYYY", o.Date)}
	}
	if o.Ticker == "" {
		return &ValidationError{Field: "ticker", Message: "ticker is required"}
	}
	if o.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Message: "amount cannot be negative"}
	}
	if o.Qty.IsNegative() {
		return &ValidationError{Field: "qty", Message: "qty cannot be negative"}
	}
	if o.Amount.GreaterThan(MaxOperationValue) {
		return &ValidationError{Field: "amount", Message: "amount is too large"}
	}
	if o.Qty.GreaterThan(MaxOperationValue) {
		return &ValidationError{Field: "qty", Message: "qty is too large"}
	}
	if o.Amount.IsZero() && o.Qty.IsZero() {
		return &ValidationError{Field: "amount", Message: "amount and qty cannot both be zero"}
	}
	return nil
}
