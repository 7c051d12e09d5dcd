// Package ledger turns a flat list of transactions into the shapes the
// transaction list and dashboard charts consume: monthly sections, category
// totals and a month-by-month income/expense series.
//
// Everything here is pure. Callers fetch a snapshot, pass it in, and pass the
// current time explicitly where ordering depends on it.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/uillasnr/mobilefinance/internal/locale"
	"github.com/uillasnr/mobilefinance/internal/model"
	"github.com/uillasnr/mobilefinance/internal/period"
)

// Placeholder values for an empty category chart.
const (
	PlaceholderID    = "dummy"
	PlaceholderColor = "#CCCCCC"
)

// Aggregator groups and sums transactions for one display locale and time zone.
type Aggregator struct {
	loc    *time.Location
	labels locale.Locale
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLocation sets the time zone used to decide which month a timestamp falls in.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// WithLocale sets the language of section titles and placeholder labels.
func WithLocale(l locale.Locale) Option {
	return func(a *Aggregator) {
		a.labels = l
	}
}

// New creates an Aggregator. Defaults are UTC and English.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{loc: time.UTC, labels: locale.English}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Location returns the aggregator's time zone.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// Locale returns the aggregator's display locale.
func (a *Aggregator) Locale() locale.Locale {
	return a.labels
}

// FilterByPeriod keeps transactions dated in the given 0-based month and year.
// If either is nil the input is returned as is. The input is never modified.
func (a *Aggregator) FilterByPeriod(txns []model.Transaction, month, year *int) []model.Transaction {
	if month == nil || year == nil {
		return txns
	}
	want := period.Period{Year: *year, Month: *month}

	out := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		ts, ok := txn.Time(a.loc)
		if !ok {
			continue
		}
		if period.Of(ts) == want {
			out = append(out, txn)
		}
	}
	return out
}

// FilterByType keeps transactions of one type. Untyped transactions count as expenses.
func (a *Aggregator) FilterByType(txns []model.Transaction, typ model.TransactionType) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.Kind() == typ {
			out = append(out, txn)
		}
	}
	return out
}

// GroupByMonth partitions transactions into one section per calendar month.
//
// Transactions with an unparseable date are left out. Within a section the
// input order is kept. The section for now's month comes first; the rest are
// newest first.
func (a *Aggregator) GroupByMonth(txns []model.Transaction, now time.Time) []model.MonthSection {
	groups := make(map[period.Period][]model.Transaction)
	var order []period.Period
	for _, txn := range txns {
		ts, ok := txn.Time(a.loc)
		if !ok {
			continue
		}
		p := period.Of(ts)
		if _, seen := groups[p]; !seen {
			order = append(order, p)
		}
		groups[p] = append(groups[p], txn)
	}

	current := period.Of(now.In(a.loc))
	sort.SliceStable(order, func(i, j int) bool {
		pi, pj := order[i], order[j]
		if pi == current || pj == current {
			return pi == current && pj != current
		}
		return pj.Before(pi)
	})

	sections := make([]model.MonthSection, 0, len(order))
	for _, p := range order {
		sections = append(sections, model.MonthSection{
			Title: a.labels.MonthYear(p.Year, p.Month),
			Year:  p.Year,
			Month: p.Month,
			Data:  groups[p],
		})
	}
	return sections
}

// SumByCategory totals the absolute amounts per category, in order of first
// appearance.
//
// Transactions without a usable category (no ID or no title) are skipped;
// Check reports them. Categories summing to zero are dropped. When nothing is
// left a single zero-valued placeholder is returned so a chart always has a
// series to draw.
func (a *Aggregator) SumByCategory(txns []model.Transaction) []model.CategoryTotal {
	if len(txns) == 0 {
		return []model.CategoryTotal{a.placeholder(a.labels.NoCategories)}
	}

	totals := make(map[string]*model.CategoryTotal)
	var order []string
	for _, txn := range txns {
		if !txn.Category.Valid() {
			continue
		}
		id := txn.Category.ID
		ct, ok := totals[id]
		if !ok {
			ct = &model.CategoryTotal{
				ID:    id,
				Label: txn.Category.Title,
				Value: decimal.Zero,
				Color: txn.Category.Color,
			}
			totals[id] = ct
			order = append(order, id)
		}
		ct.Value = ct.Value.Add(txn.Amount.Abs())
	}

	out := make([]model.CategoryTotal, 0, len(order))
	for _, id := range order {
		if ct := totals[id]; !ct.Value.IsZero() {
			out = append(out, *ct)
		}
	}
	if len(out) == 0 {
		return []model.CategoryTotal{a.placeholder(a.labels.NoExpenses)}
	}
	return out
}

// IsPlaceholder reports whether totals is the empty-chart placeholder.
func IsPlaceholder(totals []model.CategoryTotal) bool {
	return len(totals) == 1 && totals[0].ID == PlaceholderID
}

func (a *Aggregator) placeholder(label string) model.CategoryTotal {
	return model.CategoryTotal{
		ID:    PlaceholderID,
		Label: label,
		Value: decimal.Zero,
		Color: PlaceholderColor,
	}
}
