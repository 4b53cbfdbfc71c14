// Package csvfile is the "csv" storage backend. Each table becomes
// <dir>/<name>.csv with a header row.
package csvfile

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"nbastats/internal/storage"
	"nbastats/pkg/records"
)

// Kind is the registered storage kind.
const Kind = "csv"

func init() {
	storage.Register(Kind, func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(cfg.Dir)
	})
}

// Repository writes tables under a directory.
type Repository struct {
	dir string
}

// NewRepository creates dir if needed.
func NewRepository(dir string) (*Repository, error) {
	if dir == "" {
		return nil, errors.New("csvfile: dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "csvfile: create %s", dir)
	}
	return &Repository{dir: dir}, nil
}

// Path returns the file written for name.
func (r *Repository) Path(name string) string {
	return filepath.Join(r.dir, name+".csv")
}

// WriteTable writes t to Path(name). Missing cells are written as empty fields.
func (r *Repository) WriteTable(ctx context.Context, name string, t *records.Table) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t == nil {
		return errors.Newf("csvfile: table %q is nil", name)
	}
	p := r.Path(name)
	f, err := os.Create(p)
	if err != nil {
		return errors.Wrapf(err, "csvfile: create %s", p)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "csvfile: close %s", p)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.WriteAll(t.Strings()); err != nil {
		return errors.Wrapf(err, "csvfile: write %s", p)
	}
	return nil
}

// Close is a no-op; every WriteTable closes its own file.
func (r *Repository) Close() error { return nil }
