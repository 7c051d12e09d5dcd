package ledger

import (
	"fmt"

	"github.com/uillasnr/mobilefinance/internal/model"
)

// IssueKind names an anomaly that makes a transaction drop out of an aggregate.
type IssueKind string

const (
	IssueInvalidDate     IssueKind = "invalid-date"
	IssueMissingCategory IssueKind = "missing-category"
	IssueLegacyCategory  IssueKind = "legacy-category"
	IssueMissingID       IssueKind = "missing-id"
)

// Issue describes one anomaly in one transaction.
type Issue struct {
	Kind          IssueKind
	TransactionID string
	Index         int // position in the checked slice
	Description   string
}

func (i Issue) Error() string {
	id := i.TransactionID
	if id == "" {
		id = fmt.Sprintf("#%d", i.Index)
	}
	return fmt.Sprintf("%s [%s]: %s", i.Kind, id, i.Description)
}

// Check lists the transactions GroupByMonth or SumByCategory would silently
// leave out, so callers can log them.
func (a *Aggregator) Check(txns []model.Transaction) []Issue {
	var issues []Issue
	for i, txn := range txns {
		if txn.ID == "" {
			issues = append(issues, Issue{
				Kind:        IssueMissingID,
				Index:       i,
				Description: "transaction has no id",
			})
		}

		if _, ok := txn.Time(a.loc); !ok {
			issues = append(issues, Issue{
				Kind:          IssueInvalidDate,
				TransactionID: txn.ID,
				Index:         i,
				Description:   fmt.Sprintf("unparseable date %q", txn.Date),
			})
		}

		switch {
		case txn.Category.Legacy():
			issues = append(issues, Issue{
				Kind:          IssueLegacyCategory,
				TransactionID: txn.ID,
				Index:         i,
				Description:   fmt.Sprintf("category %q has no id", txn.Category.Title),
			})
		case !txn.Category.Valid():
			issues = append(issues, Issue{
				Kind:          IssueMissingCategory,
				TransactionID: txn.ID,
				Index:         i,
				Description:   "category is missing an id or title",
			})
		}
	}
	return issues
}
