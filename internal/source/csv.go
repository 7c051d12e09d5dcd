package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/uillasnr/mobilefinance/internal/model"
)

// CSVHeader is the header of a transactions CSV export.
const CSVHeader = "id,date,amount,type,category_id,category_title,category_color,title,observation"

const (
	numFields   = 9
	colID       = 0
	colDate     = 1
	colAmount   = 2
	colType     = 3
	colCatID    = 4
	colCatTitle = 5
	colCatColor = 6
	colTitle    = 7
	colObs      = 8
)

// CSVDecoder reads transactions exported as CSV.
type CSVDecoder struct {
	// NewID generates IDs for rows without one. Defaults to random UUIDs.
	NewID func() string
}

// Format returns the decoder name.
func (d *CSVDecoder) Format() string { return "csv" }

// Decode reads all rows after the header.
// Amounts must parse; dates are kept verbatim and checked later.
func (d *CSVDecoder) Decode(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	newID := d.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if txn.ID == "" {
			txn.ID = newID()
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes a CSV export including the header.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = txn.ID
	row[colDate] = txn.Date
	row[colAmount] = txn.Amount.String()
	row[colType] = string(txn.Type)
	row[colCatID] = txn.Category.ID
	row[colCatTitle] = txn.Category.Title
	row[colCatColor] = txn.Category.Color
	row[colTitle] = txn.Title
	row[colObs] = txn.Observation
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[colAmount]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	typ := model.TransactionType(strings.ToLower(strings.TrimSpace(record[colType])))
	switch typ {
	case "", model.TypeExpense, model.TypeIncome:
	default:
		return model.Transaction{}, fmt.Errorf("unknown type %q", record[colType])
	}

	return model.Transaction{
		ID:     strings.TrimSpace(record[colID]),
		Date:   strings.TrimSpace(record[colDate]),
		Amount: amount,
		Type:   typ,
		Category: model.Category{
			ID:    strings.TrimSpace(record[colCatID]),
			Title: record[colCatTitle],
			Color: record[colCatColor],
		},
		Title:       record[colTitle],
		Observation: record[colObs],
	}, nil
}
