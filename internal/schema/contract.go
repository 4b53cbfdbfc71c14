// Package schema declares the column contracts of the three season exports.
package schema

// Column types understood by builtin.Coerce and builtin.InferTypes.
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeFloat  = "float"
)

// Field describes one column of an input table.
type Field struct {
	Name string `json:"name"`

	// Type is one of TypeString, TypeInt, TypeFloat. Empty means "infer".
	Type string `json:"type"`

	// Required fields must be present in the header; values may still be missing.
	Required bool `json:"required"`
}

// Contract is the set of columns an input table is checked against.
type Contract struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// RequiredColumns returns the names of required fields in declaration order.
func (c Contract) RequiredColumns() []string {
	var out []string
	for _, f := range c.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// Types returns the declared type of every typed field.
func (c Contract) Types() map[string]string {
	out := make(map[string]string, len(c.Fields))
	for _, f := range c.Fields {
		if f.Type != "" {
			out[f.Name] = f.Type
		}
	}
	return out
}

// Numeric reports whether typ is a numeric column type.
func Numeric(typ string) bool { return typ == TypeInt || typ == TypeFloat }

// playerStats are stat columns consumed by views and charts. They are typed
// when present; an export may carry any subset of them.
func playerStats() []Field {
	return []Field{
		{Name: "Player", Type: TypeString, Required: true},
		{Name: "Player-additional", Type: TypeString, Required: true},
		{Name: "Pos", Type: TypeString},
		{Name: "PTS", Type: TypeFloat},
		{Name: "PER", Type: TypeFloat},
		{Name: "3P", Type: TypeFloat},
		{Name: "TS%", Type: TypeFloat},
	}
}

// Advanced is the contract for advanced_stats.csv.
func Advanced() Contract {
	return Contract{Name: "advanced", Fields: playerStats()}
}

// Regular is the contract for player_stats.csv (per-game stats).
func Regular() Contract {
	return Contract{Name: "regular", Fields: playerStats()}
}

// Season is the contract for season_stats.csv, one row per game. PTS is the
// home score and PTS.1 the visitor score.
func Season() Contract {
	return Contract{Name: "season", Fields: []Field{
		{Name: "Date", Type: TypeString, Required: true},
		{Name: "Home/Neutral", Type: TypeString, Required: true},
		{Name: "Visitor/Neutral", Type: TypeString, Required: true},
		{Name: "PTS", Type: TypeFloat, Required: true},
		{Name: "PTS.1", Type: TypeFloat, Required: true},
	}}
}
