// Package storage is the output sink registry. Backends register a Factory
// under a kind at init time; the pipeline opens one by kind and writes every
// result table through the Repository interface.
package storage

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"nbastats/pkg/records"
)

// Repository receives named result tables.
type Repository interface {
	// WriteTable stores t under name, replacing any earlier table of that name.
	WriteTable(ctx context.Context, name string, t *records.Table) error
	Close() error
}

// Config selects and parameterizes a backend.
type Config struct {
	Kind string
	// Dir is the destination directory for file-based backends.
	Dir string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for kind.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// ListKinds returns the registered kinds, sorted. The slice is a copy.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Disabled reports whether kind turns output off.
func Disabled(kind string) bool {
	return kind == "" || kind == "none"
}

// New opens the backend registered for cfg.Kind. Kind "" or "none" yields a
// Repository that discards everything.
func New(ctx context.Context, cfg Config) (Repository, error) {
	if Disabled(cfg.Kind) {
		return Discard{}, nil
	}
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, errors.Newf("unsupported storage.kind=%s (registered: %s)", cfg.Kind, strings.Join(ListKinds(), ", "))
	}
	repo, err := f(ctx, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "open storage %s", cfg.Kind)
	}
	return repo, nil
}

// Discard drops every table.
type Discard struct{}

func (Discard) WriteTable(context.Context, string, *records.Table) error { return nil }
func (Discard) Close() error                                             { return nil }
