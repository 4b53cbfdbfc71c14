// Package parser turns raw input streams into ordered tables.
package parser

import (
	"io"

	"github.com/cockroachdb/errors"

	"nbastats/internal/config"
	"nbastats/internal/logging"
	"nbastats/internal/parser/csv"
	"nbastats/pkg/records"
)

// Parser reads one input into a table named name. The int result counts rows
// dropped by a lenient parser.
type Parser interface {
	Parse(name string, r io.Reader) (*records.Table, int, error)
}

// New builds the parser selected by cfg.Kind.
func New(cfg config.Parser, log *logging.Logger) (Parser, error) {
	switch cfg.Kind {
	case "", "csv":
		return csv.NewParser(csv.Options{
			Comma:        cfg.Options.Rune("comma", ','),
			TrimSpace:    cfg.Options.Bool("trim_space", true),
			Lenient:      cfg.Options.Bool("lenient", false),
			NullValues:   cfg.Options.StringSlice("null_values"),
			SkipLogLimit: cfg.Options.Int("skip_log_limit", 0),
			Logger:       log,
		}), nil
	}
	return nil, errors.Newf("unsupported parser kind %q", cfg.Kind)
}
