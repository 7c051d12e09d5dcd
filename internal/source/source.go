// Package source fetches transaction and goal snapshots from the places the
// finance API data can live: exported files or the API itself.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/uillasnr/mobilefinance/internal/model"
)

// ErrUnknownFormat is returned when no decoder is registered for a file.
var ErrUnknownFormat = errors.New("unknown format")

// Source supplies one snapshot per call.
type Source interface {
	Transactions(ctx context.Context) ([]model.Transaction, error)
	Goals(ctx context.Context) ([]model.Goal, error)
}

// Decoder converts a file into transactions.
type Decoder interface {
	Decode(r io.Reader) ([]model.Transaction, error)
	Format() string
}

// Registry holds decoders keyed by format name.
type Registry struct {
	decoders map[string]Decoder
}

// NewRegistry creates an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register adds a decoder. Panics on duplicate format.
func (r *Registry) Register(d Decoder) {
	key := strings.ToLower(d.Format())
	if _, ok := r.decoders[key]; ok {
		panic("duplicate decoder format: " + key)
	}
	r.decoders[key] = d
}

// Get returns the decoder for format, or nil.
func (r *Registry) Get(format string) Decoder {
	return r.decoders[strings.ToLower(format)]
}

// ForPath returns the decoder matching a file extension.
func (r *Registry) ForPath(path string) (Decoder, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	d := r.Get(ext)
	if d == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
	return d, nil
}

// DefaultRegistry returns a registry with all built-in decoders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&JSONDecoder{})
	r.Register(&CSVDecoder{})
	return r
}

// FileSource reads snapshots from exported files.
// An empty GoalsPath yields no goals.
type FileSource struct {
	TransactionsPath string
	GoalsPath        string
	Registry         *Registry
}

// NewFileSource creates a FileSource using the default registry.
func NewFileSource(transactionsPath, goalsPath string) *FileSource {
	return &FileSource{
		TransactionsPath: transactionsPath,
		GoalsPath:        goalsPath,
		Registry:         DefaultRegistry(),
	}
}

// Transactions decodes the transactions file.
func (s *FileSource) Transactions(ctx context.Context) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dec, err := s.Registry.ForPath(s.TransactionsPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.TransactionsPath)
	if err != nil {
		return nil, fmt.Errorf("opening transactions: %w", err)
	}
	defer f.Close()

	txns, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.TransactionsPath, err)
	}
	return txns, nil
}

// Goals decodes the goals JSON file.
func (s *FileSource) Goals(ctx context.Context) ([]model.Goal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.GoalsPath == "" {
		return nil, nil
	}

	f, err := os.Open(s.GoalsPath)
	if err != nil {
		return nil, fmt.Errorf("opening goals: %w", err)
	}
	defer f.Close()

	goals, err := DecodeGoals(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.GoalsPath, err)
	}
	return goals, nil
}
