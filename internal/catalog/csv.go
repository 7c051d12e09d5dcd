package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/uillasnr/mobilefinance/internal/model"
)

// Header is the CSV header for categories.csv.
const Header = "id,title,color,icon"

const (
	numFields = 4
	colID     = 0
	colTitle  = 1
	colColor  = 2
	colIcon   = 3
)

// ReadCategories reads categories.csv.
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var cats []model.Category
	for i, rec := range records[1:] {
		cat, err := UnmarshalCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// WriteCategories writes categories.csv.
func WriteCategories(w io.Writer, cats []model.Category) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, cat := range cats {
		if err := cw.Write(MarshalCategory(cat)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalCategory converts a Category to a CSV row.
func MarshalCategory(cat model.Category) []string {
	row := make([]string, numFields)
	row[colID] = cat.ID
	row[colTitle] = cat.Title
	row[colColor] = cat.Color
	row[colIcon] = cat.Icon
	return row
}

// UnmarshalCategory converts a CSV row to a Category.
func UnmarshalCategory(record []string) (model.Category, error) {
	if len(record) != numFields {
		return model.Category{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	cat := model.Category{
		ID:    strings.TrimSpace(record[colID]),
		Title: record[colTitle],
		Color: record[colColor],
		Icon:  record[colIcon],
	}
	if !cat.Valid() {
		return model.Category{}, fmt.Errorf("category needs an id and a title, got %q/%q", record[colID], record[colTitle])
	}
	return cat, nil
}
