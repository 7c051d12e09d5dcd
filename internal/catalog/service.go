// Package catalog keeps the user's category list: titles, chart colors and
// icon keys, keyed by category ID.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/uillasnr/mobilefinance/internal/model"
)

// FileName is the catalog file inside a project directory.
const FileName = "categories.csv"

// Service provides in-memory lookup over the category catalog.
type Service struct {
	cats []model.Category
	byID map[string]model.Category
}

// NewService creates a Service from a slice of categories.
func NewService(cats []model.Category) *Service {
	byID := make(map[string]model.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	return &Service{cats: cats, byID: byID}
}

// Load reads categories.csv from dir.
func Load(dir string) (*Service, error) {
	path := filepath.Join(dir, FileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening category catalog: %w", err)
	}
	defer f.Close()

	cats, err := ReadCategories(f)
	if err != nil {
		return nil, fmt.Errorf("reading category catalog: %w", err)
	}
	return NewService(cats), nil
}

// All returns every category.
func (s *Service) All() []model.Category {
	return s.cats
}

// Get returns a category by ID.
func (s *Service) Get(id string) (model.Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Exists reports whether a category ID is known.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Resolve fills a category's empty title, color and icon from the catalog.
// Categories without an ID are returned untouched.
func (s *Service) Resolve(c model.Category) model.Category {
	if c.ID == "" {
		return c
	}
	known, ok := s.byID[c.ID]
	if !ok {
		return c
	}
	if c.Title == "" {
		c.Title = known.Title
	}
	if c.Color == "" {
		c.Color = known.Color
	}
	if c.Icon == "" {
		c.Icon = known.Icon
	}
	return c
}

// ResolveAll returns a copy of txns with every category resolved.
func (s *Service) ResolveAll(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, txn := range txns {
		txn.Category = s.Resolve(txn.Category)
		out[i] = txn
	}
	return out
}

// Save writes the catalog to dir/categories.csv.
func (s *Service) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating catalog dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating category catalog: %w", err)
	}
	defer f.Close()

	if err := WriteCategories(f, s.cats); err != nil {
		return fmt.Errorf("writing category catalog: %w", err)
	}
	return nil
}
