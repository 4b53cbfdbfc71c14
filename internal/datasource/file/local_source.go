// Package file implements local filesystem data sources.
package file

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// Local opens a file from the local disk.
type Local struct{ path string }

// NewLocal returns a Local bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Describe returns the file path.
func (l *Local) Describe() string { return l.path }

// Open returns the context error without touching the filesystem when ctx is
// already done. Filesystem errors keep their identity for errors.Is checks
// (e.g. os.ErrNotExist).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", l.path)
	}
	return f, nil
}
