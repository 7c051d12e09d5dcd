package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tells expenses from income.
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// Transaction is a single record as served by the finance API.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`   // raw, parsed on demand
	Amount      decimal.Decimal `json:"amount"` // minor units; negative = expense
	Type        TransactionType `json:"type,omitempty"`
	Category    Category        `json:"category"`
	Title       string          `json:"title"`
	Observation string          `json:"observation,omitempty"`
	IsFixed     bool            `json:"isFixed,omitempty"`
}

// Kind returns the transaction type, defaulting to expense when absent.
func (t Transaction) Kind() TransactionType {
	if t.Type == TypeIncome {
		return TypeIncome
	}
	return TypeExpense
}

// Time parses the transaction date in loc.
// The second result is false when the date cannot be parsed.
func (t Transaction) Time(loc *time.Location) (time.Time, bool) {
	ts, err := ParseDate(t.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// UnmarshalJSON accepts both "_id" (API payloads) and "id".
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	var wire struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decoding transaction: %w", err)
	}
	*t = Transaction(wire.plain)
	if t.ID == "" {
		t.ID = wire.MongoID
	}
	return nil
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the date formats the API is known to emit.
// Zoned timestamps are converted into loc; zone-less ones are read in loc,
// so "2024-01-05" is always January 5th regardless of loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range zonedLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.In(loc), nil
		}
	}
	for _, layout := range localLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
