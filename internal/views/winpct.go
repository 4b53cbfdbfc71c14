package views

import (
	"github.com/cockroachdb/errors"

	"nbastats/pkg/records"
)

// Season log columns. PTS is the home score, PTS.1 the visitor score.
const (
	ColDate        = "Date"
	ColHome        = "Home/Neutral"
	ColVisitor     = "Visitor/Neutral"
	ColHomePoints  = "PTS"
	ColVisitPoints = "PTS.1"
)

// WinShare is the fraction of games won by each side.
type WinShare struct {
	Home  float64
	Away  float64
	Games int
}

// Map returns the shares keyed "Home" and "Away".
func (w WinShare) Map() map[string]float64 {
	return map[string]float64{"Home": w.Home, "Away": w.Away}
}

// Table renders the shares as Side,Share rows.
func (w WinShare) Table() *records.Table {
	return records.NewTable("win_pct", []string{"Side", "Share"}, []records.Record{
		{"Side": "Home", "Share": w.Home},
		{"Side": "Away", "Share": w.Away},
	})
}

// WinPercentage counts a game for the visitors when PTS.1 is strictly greater
// than PTS and for the home side otherwise, so a tie is a home win. Home and
// Away always sum to 1.
func WinPercentage(games *records.Table) (WinShare, error) {
	home, err := games.Floats(ColHomePoints)
	if err != nil {
		return WinShare{}, errors.Wrap(err, "win percentage")
	}
	away, err := games.Floats(ColVisitPoints)
	if err != nil {
		return WinShare{}, errors.Wrap(err, "win percentage")
	}
	if len(home) == 0 {
		return WinShare{}, records.EmptyInput("win percentage", games.Name)
	}
	awayWins := 0
	for i := range home {
		if away[i] > home[i] {
			awayWins++
		}
	}
	n := len(home)
	a := float64(awayWins) / float64(n)
	return WinShare{Home: 1 - a, Away: a, Games: n}, nil
}
