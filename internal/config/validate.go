package config

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks the run.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to users but does not block the run.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Run.
//
// Path is a dotted path into the config (e.g. "merge.right_tag").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be returned directly.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is blocking.
func HasErrors(issues []Issue) bool {
	return slices.ContainsFunc(issues, func(i Issue) bool { return i.Severity == SeverityError })
}

// ValidateRun performs static validation of a Run. It combines struct tag
// rules with cross-field checks and never mutates r.
func ValidateRun(r Run) []Issue {
	issues := validateTags(r)
	issues = append(issues, validateInputs(r.Inputs)...)
	issues = append(issues, validateParser(r.Parser)...)
	issues = append(issues, validateMerge(r.Merge)...)
	issues = append(issues, validateViews(r.Views)...)
	issues = append(issues, validateCharts(r.Charts)...)
	issues = append(issues, validateOutput(r.Output)...)
	return issues
}

var (
	validateOnce sync.Once
	structRules  *validator.Validate
)

func rules() *validator.Validate {
	validateOnce.Do(func() {
		structRules = validator.New(validator.WithRequiredStructEnabled())
		structRules.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return structRules
}

func validateTags(r Run) []Issue {
	err := rules().Struct(r)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Issue{{Severity: SeverityError, Path: "", Message: err.Error()}}
	}
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     path,
			Message:  tagMessage(fe),
		})
	}
	return issues
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", fe.Field(), fe.Param(), fe.Value())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be an absolute URL, got %q", fe.Field(), fe.Value())
	}
	return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
}

func validateInputs(in Inputs) []Issue {
	var issues []Issue
	sources := []struct {
		name string
		src  Source
	}{
		{"advanced", in.Advanced},
		{"regular", in.Regular},
		{"season", in.Season},
	}
	for _, e := range sources {
		s, base := e.src, "inputs."+e.name
		switch s.Kind {
		case "", "file":
			if strings.TrimSpace(s.Path) == "" {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     base + ".path",
					Message:  "path must not be empty",
				})
			}
		case "http":
			if strings.TrimSpace(s.URL) == "" {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     base + ".url",
					Message:  "url must not be empty for an http source",
				})
			}
		default:
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     base + ".kind",
				Message:  fmt.Sprintf("unsupported source kind %q", s.Kind),
			})
		}
	}
	if len(in.Teams.Names) == 0 && strings.TrimSpace(in.Teams.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "inputs.teams",
			Message:  "no team list; the team performance chart will be empty",
		})
	}
	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue
	if p.Kind != "" && p.Kind != "csv" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.kind",
			Message:  fmt.Sprintf("unsupported parser kind %q", p.Kind),
		})
	}
	if c := p.Options.String("comma", ","); len([]rune(c)) != 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.options.comma",
			Message:  fmt.Sprintf("comma must be a single character, got %q", c),
		})
	}
	if !p.Options.Bool("has_header", true) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.options.has_header",
			Message:  "inputs are addressed by column name; has_header cannot be false",
		})
	}
	return issues
}

func validateMerge(m Merge) []Issue {
	var issues []Issue
	if m.Key != "" && slices.Contains(m.Drop, m.Key) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "merge.drop",
			Message:  fmt.Sprintf("join key %q cannot be dropped", m.Key),
		})
	}
	return issues
}

func validateViews(v Views) []Issue {
	var issues []Issue
	if v.Pivot.Index != "" && v.Pivot.Index == v.Pivot.Columns {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "views.pivot.columns",
			Message:  "pivot index and columns must be different columns",
		})
	}
	return issues
}

func validateCharts(c Charts) []Issue {
	if !c.Enabled {
		return nil
	}
	var issues []Issue
	if strings.TrimSpace(c.OutDir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "charts.out_dir",
			Message:  "charts are enabled but out_dir is empty",
		})
	}
	if strings.TrimSpace(c.PositionColumn) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "charts.position_column",
			Message:  "charts are enabled but position_column is empty",
		})
	}
	if c.TopN == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "charts.top_n",
			Message:  "top_n=0; the top-by-position chart will be empty",
		})
	}
	return issues
}

func validateOutput(o Output) []Issue {
	switch o.Kind {
	case "", "none":
		return nil
	case "csv":
		if strings.TrimSpace(o.Dir) == "" {
			return []Issue{{
				Severity: SeverityError,
				Path:     "output.dir",
				Message:  "csv output requires a directory",
			}}
		}
		return nil
	}
	return []Issue{{
		Severity: SeverityWarning,
		Path:     "output.kind",
		Message:  fmt.Sprintf("unknown output kind %q; ensure a matching backend is registered", o.Kind),
	}}
}
