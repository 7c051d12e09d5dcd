package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/uillasnr/mobilefinance/internal/model"
	"github.com/uillasnr/mobilefinance/internal/period"
)

// Evolution returns income, expense and net per month, oldest first.
// Amounts are taken as absolute values; the transaction type decides the side.
func (a *Aggregator) Evolution(txns []model.Transaction) []model.MonthBalance {
	byPeriod := make(map[period.Period]*model.MonthBalance)
	var order []period.Period
	for _, txn := range txns {
		ts, ok := txn.Time(a.loc)
		if !ok {
			continue
		}
		p := period.Of(ts)
		mb, seen := byPeriod[p]
		if !seen {
			mb = &model.MonthBalance{
				Title:   a.labels.MonthYear(p.Year, p.Month),
				Year:    p.Year,
				Month:   p.Month,
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			}
			byPeriod[p] = mb
			order = append(order, p)
		}
		if txn.Kind() == model.TypeIncome {
			mb.Income = mb.Income.Add(txn.Amount.Abs())
		} else {
			mb.Expense = mb.Expense.Add(txn.Amount.Abs())
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	out := make([]model.MonthBalance, 0, len(order))
	for _, p := range order {
		mb := byPeriod[p]
		mb.Net = mb.Income.Sub(mb.Expense)
		out = append(out, *mb)
	}
	return out
}
