// Package datasource defines where pipeline inputs come from.
package datasource

import (
	"context"
	"fmt"
	"io"
)

// Source opens one input stream. Callers close the returned reader.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Describer is implemented by sources that can name themselves in logs and
// error messages.
type Describer interface {
	Describe() string
}

// Name returns a printable name for s.
func Name(s Source) string {
	if d, ok := s.(Describer); ok {
		return d.Describe()
	}
	return fmt.Sprintf("%T", s)
}
