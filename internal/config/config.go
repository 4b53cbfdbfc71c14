// Package config defines the run configuration for nbastats. A Run can be
// decoded from JSON or YAML, overlaid with NBASTATS_* environment variables,
// and linted with ValidateRun before the pipeline starts.
//
// Example (trimmed):
//
//	{
//	  "job": "nba_2024",
//	  "inputs": { "advanced": { "path": "advanced_stats.csv" }, ... },
//	  "parser": { "kind": "csv", "options": { "has_header": true } },
//	  "views":  { "threshold": { "column": "PTS", "value": 20 } },
//	  "output": { "kind": "csv", "dir": "out/tables" }
//	}
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Run is the top-level object decoded from a run file.
type Run struct {
	// Job labels metrics and log lines for this run.
	Job string `json:"job" yaml:"job" validate:"required"`

	Inputs Inputs `json:"inputs" yaml:"inputs"`
	Parser Parser `json:"parser" yaml:"parser"`
	Merge  Merge  `json:"merge" yaml:"merge"`
	Views  Views  `json:"views" yaml:"views"`
	Charts Charts `json:"charts" yaml:"charts"`
	Output Output `json:"output" yaml:"output"`
}

// Inputs names the three season exports plus the team list used by the
// team performance chart.
type Inputs struct {
	Advanced Source   `json:"advanced" yaml:"advanced"`
	Regular  Source   `json:"regular" yaml:"regular"`
	Season   Source   `json:"season" yaml:"season"`
	Teams    TeamList `json:"teams" yaml:"teams"`
}

// Source identifies one input: a local file, or a URL when Kind is "http".
type Source struct {
	// Kind selects the source implementation: "file" (default) or "http".
	Kind string `json:"kind" yaml:"kind"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
}

// TeamList is either an inline list of names or a file with one name per line.
// Names wins when both are set.
type TeamList struct {
	Path  string   `json:"path" yaml:"path"`
	Names []string `json:"names" yaml:"names"`
}

// Parser selects how raw bytes become tables.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind" yaml:"kind" validate:"required"`

	// Options is interpreted by the parser implementation. For CSV:
	//   has_header (bool), comma (string), trim_space (bool), lenient (bool),
	//   null_values (list of cell texts read as missing)
	Options Options `json:"options" yaml:"options"`
}

// Merge configures the stat merger.
type Merge struct {
	Key      string   `json:"key" yaml:"key" validate:"required"`
	Drop     []string `json:"drop" yaml:"drop"`
	LeftTag  string   `json:"left_tag" yaml:"left_tag" validate:"required"`
	RightTag string   `json:"right_tag" yaml:"right_tag" validate:"required,nefield=LeftTag"`
}

// Views configures the view builders run over the processed table.
type Views struct {
	Threshold Threshold `json:"threshold" yaml:"threshold"`
	Sort      Sort      `json:"sort" yaml:"sort"`
	Pivot     Pivot     `json:"pivot" yaml:"pivot"`

	// Parallel builds independent views concurrently.
	Parallel bool `json:"parallel" yaml:"parallel"`
}

type Threshold struct {
	Column string  `json:"column" yaml:"column" validate:"required"`
	Value  float64 `json:"value" yaml:"value"`
}

type Sort struct {
	Column string `json:"column" yaml:"column" validate:"required"`
}

type Pivot struct {
	Index   string `json:"index" yaml:"index" validate:"required"`
	Columns string `json:"columns" yaml:"columns" validate:"required"`
	Values  string `json:"values" yaml:"values" validate:"required"`
}

// Charts configures the chart renderers. PositionColumn names the merged
// column holding player positions, which after a merge is usually tagged
// (e.g. "Pos (reg)").
type Charts struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	OutDir         string `json:"out_dir" yaml:"out_dir"`
	Format         string `json:"format" yaml:"format" validate:"omitempty,oneof=png svg"`
	PositionColumn string `json:"position_column" yaml:"position_column"`
	TopN           int    `json:"top_n" yaml:"top_n" validate:"gte=0"`
	StemLimit      int    `json:"stem_limit" yaml:"stem_limit" validate:"gte=0"`
	DateLayout     string `json:"date_layout" yaml:"date_layout"`
}

// Output selects the sink for result tables. Kind "" or "none" disables it.
type Output struct {
	Kind string `json:"kind" yaml:"kind"`
	Dir  string `json:"dir" yaml:"dir"`
}

// DefaultTeams is used when the run names no team list.
var DefaultTeams = []string{
	"Atlanta Hawks", "Boston Celtics", "Brooklyn Nets", "Charlotte Hornets",
	"Chicago Bulls", "Cleveland Cavaliers", "Dallas Mavericks", "Denver Nuggets",
	"Detroit Pistons", "Golden State Warriors", "Houston Rockets", "Indiana Pacers",
	"Los Angeles Clippers", "Los Angeles Lakers", "Memphis Grizzlies", "Miami Heat",
	"Milwaukee Bucks", "Minnesota Timberwolves", "New Orleans Pelicans", "New York Knicks",
	"Oklahoma City Thunder", "Orlando Magic", "Philadelphia 76ers", "Phoenix Suns",
	"Portland Trail Blazers", "Sacramento Kings", "San Antonio Spurs", "Toronto Raptors",
	"Utah Jazz", "Washington Wizards",
}

// Default returns a complete configuration that reads the three exports from
// the working directory.
func Default() Run {
	return Run{
		Job: "nbastats",
		Inputs: Inputs{
			Advanced: Source{Kind: "file", Path: "advanced_stats.csv"},
			Regular:  Source{Kind: "file", Path: "player_stats.csv"},
			Season:   Source{Kind: "file", Path: "season_stats.csv"},
			Teams:    TeamList{Names: append([]string(nil), DefaultTeams...)},
		},
		Parser: Parser{
			Kind:    "csv",
			Options: Options{"has_header": true, "trim_space": true},
		},
		Merge: Merge{
			Key:      "Player",
			Drop:     []string{"Player-additional"},
			LeftTag:  "adv",
			RightTag: "reg",
		},
		Views: Views{
			Threshold: Threshold{Column: "PTS", Value: 20},
			Sort:      Sort{Column: "PTS"},
			Pivot:     Pivot{Index: "Player", Columns: "Pos (reg)", Values: "PTS"},
			Parallel:  true,
		},
		Charts: Charts{
			Enabled:        true,
			OutDir:         "charts",
			Format:         "png",
			PositionColumn: "Pos (reg)",
			TopN:           3,
			StemLimit:      10,
			DateLayout:     "Mon Jan 2 2006",
		},
		Output: Output{Kind: "csv", Dir: "tables"},
	}
}

// Load reads a run file over Default(). Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON. Unknown JSON fields are rejected.
func Load(path string) (Run, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	default:
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "decode config %s", path)
	}
	return cfg, nil
}

// WithDataDir resolves relative input paths against dir.
func (r Run) WithDataDir(dir string) Run {
	if dir == "" {
		return r
	}
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	r.Inputs.Advanced.Path = join(r.Inputs.Advanced.Path)
	r.Inputs.Regular.Path = join(r.Inputs.Regular.Path)
	r.Inputs.Season.Path = join(r.Inputs.Season.Path)
	r.Inputs.Teams.Path = join(r.Inputs.Teams.Path)
	return r
}

// WithOutDir places charts and output tables under dir.
func (r Run) WithOutDir(dir string) Run {
	if dir == "" {
		return r
	}
	r.Charts.OutDir = filepath.Join(dir, "charts")
	r.Output.Dir = filepath.Join(dir, "tables")
	return r
}

// Options is a small helper to fetch typed values from decoded JSON or YAML
// maps. It performs only minimal type coercion and returns the provided default
// when a key is absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if s, ok := o[key].(string); ok {
		return s
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if b, ok := o[key].(bool); ok {
		return b
	}
	return def
}

// Int returns the int value for key or def. JSON numbers arrive as float64,
// YAML integers as int.
func (o Options) Int(key string, def int) int {
	switch n := o[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Used for single-character settings such as a delimiter.
func (o Options) Rune(key string, def rune) rune {
	if s, ok := o[key].(string); ok && s != "" {
		return []rune(s)[0]
	}
	return def
}

// StringSlice returns a []string for key when the value is a list of strings.
// Returns nil when the key is missing or the value is not a list.
func (o Options) StringSlice(key string) []string {
	switch vv := o[key].(type) {
	case []any:
		out := make([]string, 0, len(vv))
		for _, x := range vv {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return vv
	}
	return nil
}

// UnmarshalJSON makes a missing or null "options" object decode to an empty,
// non-nil map.
func (o *Options) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	var tmp map[string]any
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
