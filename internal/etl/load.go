package etl

import (
	"context"
	"maps"
	"net/http"

	"github.com/cockroachdb/errors"

	"nbastats/internal/config"
	"nbastats/internal/datasource"
	"nbastats/internal/datasource/file"
	"nbastats/internal/datasource/httpds"
	"nbastats/internal/metrics"
	"nbastats/internal/parser"
	"nbastats/internal/schema"
	"nbastats/internal/transformer"
	"nbastats/internal/transformer/builtin"
	"nbastats/pkg/records"
)

var httpClient = httpds.NewClient(httpds.Config{
	Header: http.Header{"User-Agent": {"nbastats"}},
})

// openSource maps an input entry to its datasource.
func openSource(s config.Source) (datasource.Source, error) {
	switch s.Kind {
	case "", "file":
		return file.NewLocal(s.Path), nil
	case "http":
		return httpds.NewSource(httpClient, s.URL), nil
	}
	return nil, errors.Newf("unsupported source kind %q", s.Kind)
}

// load reads the three exports and the team list.
func (r *runner) load(ctx context.Context, p parser.Parser) error {
	inputs := []struct {
		name     string
		src      config.Source
		contract schema.Contract
		dst      **records.Table
	}{
		{"advanced", r.cfg.Inputs.Advanced, schema.Advanced(), &r.res.Advanced},
		{"regular", r.cfg.Inputs.Regular, schema.Regular(), &r.res.Regular},
		{"season", r.cfg.Inputs.Season, schema.Season(), &r.res.Season},
	}
	for _, in := range inputs {
		t, err := r.loadTable(ctx, p, in.name, in.src, in.contract)
		if err != nil {
			return err
		}
		*in.dst = t
	}

	teams, err := r.loadTeams(ctx)
	if err != nil {
		return err
	}
	r.res.Teams = teams
	return nil
}

// loadTable parses one export, cleans its text cells, checks it against
// contract and converts numeric columns. Declared contract types win over
// inferred ones; a declared numeric column holding text fails the load.
func (r *runner) loadTable(ctx context.Context, p parser.Parser, name string, s config.Source, contract schema.Contract) (*records.Table, error) {
	src, err := openSource(s)
	if err != nil {
		return nil, errors.Wrapf(err, "input %s", name)
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raw, skipped, err := p.Parse(name, rc)
	if err != nil {
		return nil, err
	}
	r.res.Skipped += skipped
	metrics.RecordRow(r.cfg.Job, "skipped", int64(skipped))

	t := transformer.Table(raw, builtin.Normalize{})
	if err := (builtin.Validate{Contract: contract}).Check(t); err != nil {
		return nil, err
	}

	types := builtin.InferTypes(t)
	maps.Copy(types, contract.Types())
	if err := (builtin.Coerce{Types: types}).Check(t); err != nil {
		return nil, err
	}

	metrics.RecordRow(r.cfg.Job, "loaded", int64(t.Len()))
	r.log.Info("loaded input",
		"table", name,
		"source", datasource.Name(src),
		"rows", t.Len(),
		"columns", len(t.Columns),
		"skipped", skipped,
	)
	return t, nil
}

// loadTeams returns the inline team names, or the team list file when no
// names are given. Neither yields an empty list.
func (r *runner) loadTeams(ctx context.Context) ([]string, error) {
	tl := r.cfg.Inputs.Teams
	if len(tl.Names) > 0 {
		return tl.Names, nil
	}
	if tl.Path == "" {
		return nil, nil
	}
	teams, err := file.ReadList(ctx, file.NewLocal(tl.Path))
	if err != nil {
		return nil, errors.Wrap(err, "team list")
	}
	r.log.Debug("loaded team list", "path", tl.Path, "teams", len(teams))
	return teams, nil
}
