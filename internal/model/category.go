package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the category a transaction is filed under.
//
// The API sends either a full object or, for older records, a bare string.
// A bare string is kept as the Title only; it has no ID and is therefore
// display-only.
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// Valid reports whether the category can be used as an aggregation key.
func (c Category) Valid() bool {
	return strings.TrimSpace(c.ID) != "" && strings.TrimSpace(c.Title) != ""
}

// Legacy reports whether the category came in as a bare string.
func (c Category) Legacy() bool {
	return c.ID == "" && c.Title != ""
}

// String returns the display name.
func (c Category) String() string {
	return c.Title
}

// UnmarshalJSON decodes either the object or the bare-string form.
func (c *Category) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = Category{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var title string
		if err := json.Unmarshal(data, &title); err != nil {
			return fmt.Errorf("decoding category: %w", err)
		}
		*c = Category{Title: title}
		return nil
	}

	var wire struct {
		ID        string `json:"id"`
		MongoID   string `json:"_id"`
		Title     string `json:"title"`
		Color     string `json:"color"`
		Icon      string `json:"icon"`
		IconUpper string `json:"Icon"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decoding category: %w", err)
	}
	*c = Category{
		ID:    wire.ID,
		Title: wire.Title,
		Color: wire.Color,
		Icon:  wire.Icon,
	}
	if c.ID == "" {
		c.ID = wire.MongoID
	}
	if c.Icon == "" {
		c.Icon = wire.IconUpper
	}
	return nil
}
