// Package csv loads delimited text exports into ordered tables. Parsing is
// strict by default: a quoting error or a row whose width differs from the
// header fails the load with records.ErrParse. Lenient mode skips such rows
// and reports how many were dropped.
package csv

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"nbastats/internal/logging"
	"nbastats/pkg/records"
)

// Options configures the CSV parser. The zero value reads comma-separated
// input strictly without trimming cells.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each cell.
	TrimSpace bool

	// Lenient skips malformed rows instead of failing the load. LazyQuotes is
	// enabled on the underlying reader.
	Lenient bool

	// NullValues lists cell texts read as missing in addition to the empty
	// string, e.g. "NaN" or "N/A". Matched after trimming when TrimSpace is set.
	NullValues []string

	// Logger receives one line per skipped row, up to SkipLogLimit lines.
	// logging.Default() is used when nil.
	Logger       *logging.Logger
	SkipLogLimit int
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs but not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser {
	if opt.SkipLogLimit <= 0 {
		opt.SkipLogLimit = 100
	}
	return &Parser{opt: opt}
}

// Parse reads the header and every body row of r into a table named name.
// Empty cells and NullValues become nil; all other cells stay strings until
// coerced.
// The int result is the number of rows skipped in lenient mode.
func (p *Parser) Parse(name string, r io.Reader) (*records.Table, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	// Width is checked here so that a mismatch carries the row's line number.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = p.opt.Lenient

	raw, err := cr.Read()
	if err == io.EOF {
		return nil, 0, records.Malformed(name, 1, errors.New("missing header row"))
	}
	if err != nil {
		return nil, 0, records.Malformed(name, lineOf(err, 1), err)
	}
	headers := Headers(raw)

	log := p.opt.Logger
	if log == nil {
		log = logging.Default()
	}
	nulls := make(map[string]struct{}, len(p.opt.NullValues)+1)
	nulls[""] = struct{}{}
	for _, s := range p.opt.NullValues {
		nulls[s] = struct{}{}
	}

	var rows []records.Record
	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		var bad error
		line := 0
		if err != nil {
			bad, line = err, lineOf(err, 0)
		} else if len(row) != len(headers) {
			line, _ = cr.FieldPos(0)
			bad = errors.Newf("wrong number of fields: expected %d, got %d", len(headers), len(row))
		}
		if bad != nil {
			if !p.opt.Lenient {
				return nil, skipped, records.Malformed(name, line, bad)
			}
			if skipped < p.opt.SkipLogLimit {
				log.Warn("skipping malformed row", "source", name, "line", line, "error", bad)
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			if _, null := nulls[val]; null {
				rec[headers[i]] = nil
				continue
			}
			rec[headers[i]] = val
		}
		rows = append(rows, rec)
	}

	if skipped > 0 {
		log.Warn("skipped malformed rows", "source", name, "skipped", skipped, "kept", len(rows))
	}
	return records.NewTable(name, headers, rows), skipped, nil
}

// lineOf extracts the input line from a csv.ParseError, or def.
func lineOf(err error, def int) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.StartLine
	}
	return def
}

