package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Goal is a savings target tracked by the user.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	Deadline      string          `json:"deadline"`
}

// Progress returns how far the goal is, as a percentage capped at 100.
// A goal without a positive target has no progress.
func (g Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	p := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if p.GreaterThan(hundred) {
		return hundred
	}
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// Completed reports whether the target has been reached.
func (g Goal) Completed() bool {
	return g.Progress().GreaterThanOrEqual(hundred)
}

// UnmarshalJSON accepts both "_id" and "id".
func (g *Goal) UnmarshalJSON(data []byte) error {
	type plain Goal
	var wire struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decoding goal: %w", err)
	}
	*g = Goal(wire.plain)
	if g.ID == "" {
		g.ID = wire.MongoID
	}
	return nil
}
