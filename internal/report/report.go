// Package report prints tables and views to a console. Tables are rendered
// through gota data frames, which also provide Describe summaries.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/go-gota/gota/dataframe"

	"nbastats/internal/views"
	"nbastats/pkg/records"
)

// Printer writes titled sections to W.
type Printer struct {
	W io.Writer
}

func NewPrinter(w io.Writer) *Printer { return &Printer{W: w} }

// Frame converts t to a gota DataFrame with column types detected from the
// formatted cells. Missing cells load as NaN in numeric columns.
func Frame(t *records.Table) (dataframe.DataFrame, error) {
	df := dataframe.LoadRecords(t.Strings(), dataframe.HasHeader(true), dataframe.DetectTypes(true))
	if df.Err != nil {
		return df, errors.Wrapf(df.Err, "frame %s", t.Name)
	}
	return df, nil
}

func (p *Printer) section(title string) {
	fmt.Fprintf(p.W, "\n== %s ==\n", title)
}

// Table prints t. A table without rows prints its header only.
func (p *Printer) Table(title string, t *records.Table) error {
	p.section(title)
	if t.Len() == 0 {
		fmt.Fprintf(p.W, "(no rows) columns: %s\n", strings.Join(t.Columns, ", "))
		return nil
	}
	df, err := Frame(t)
	if err != nil {
		return err
	}
	fmt.Fprintln(p.W, df)
	return nil
}

// Describe prints summary statistics for every column of t.
func (p *Printer) Describe(title string, t *records.Table) error {
	p.section(title)
	if t.Len() == 0 {
		fmt.Fprintln(p.W, "(no rows)")
		return nil
	}
	df, err := Frame(t)
	if err != nil {
		return err
	}
	d := df.Describe()
	if d.Err != nil {
		return errors.Wrapf(d.Err, "describe %s", t.Name)
	}
	fmt.Fprintln(p.W, d)
	return nil
}

// Series prints a pivoted series as index, column, value rows.
func (p *Printer) Series(title string, s views.Series) error {
	return p.Table(title, s.Table())
}

// WinShare prints home and away shares as percentages.
func (p *Printer) WinShare(title string, w views.WinShare) error {
	p.section(title)
	tw := tabwriter.NewWriter(p.W, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Home\t%.2f%%\n", 100*w.Home)
	fmt.Fprintf(tw, "Away\t%.2f%%\n", 100*w.Away)
	fmt.Fprintf(tw, "Games\t%s\n", humanize.Comma(int64(w.Games)))
	return tw.Flush()
}

// Count is one line of a run summary.
type Count struct {
	Name string
	Rows int
}

// Summary prints row counts, one per line, with thousands separators.
func (p *Printer) Summary(title string, counts []Count) error {
	p.section(title)
	tw := tabwriter.NewWriter(p.W, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%s rows\t\n", c.Name, humanize.Comma(int64(c.Rows)))
	}
	return tw.Flush()
}
