package source

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/uillasnr/mobilefinance/internal/model"
)

// JSONDecoder reads a JSON array of API transaction objects.
type JSONDecoder struct{}

// Format returns the decoder name.
func (d *JSONDecoder) Format() string { return "json" }

// Decode reads the array. An empty body or "null" yields no transactions.
func (d *JSONDecoder) Decode(r io.Reader) ([]model.Transaction, error) {
	var txns []model.Transaction
	if err := decodeArray(r, &txns); err != nil {
		return nil, fmt.Errorf("reading transactions JSON: %w", err)
	}
	return txns, nil
}

// DecodeGoals reads a JSON array of goals.
func DecodeGoals(r io.Reader) ([]model.Goal, error) {
	var goals []model.Goal
	if err := decodeArray(r, &goals); err != nil {
		return nil, fmt.Errorf("reading goals JSON: %w", err)
	}
	return goals, nil
}

func decodeArray(r io.Reader, v any) error {
	err := json.NewDecoder(r).Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
}
