package model

import "github.com/shopspring/decimal"

// MonthSection is one calendar month of transactions, ready for a list view.
// Month is 0-based (0 = January).
type MonthSection struct {
	Title string        `json:"title"`
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Data  []Transaction `json:"data"`
}

// CategoryTotal is one slice of the category chart.
type CategoryTotal struct {
	ID    string          `json:"id"`
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// MonthBalance is one point of the income/expense evolution chart.
type MonthBalance struct {
	Title   string          `json:"title"`
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}
