package etl

import (
	"fmt"
	"testing"

	"nbastats/internal/merge"
	"nbastats/internal/preprocess"
	"nbastats/internal/views"
	"nbastats/pkg/records"
)

// syntheticStats builds n players with a few repeated names and gaps, close to
// a season export after coercion.
func syntheticStats(name string, n int, stat string) *records.Table {
	rows := make([]records.Record, n)
	for i := range rows {
		r := records.Record{
			"Player":            fmt.Sprintf("Player %d", i%(n-n/20)),
			"Player-additional": fmt.Sprintf("p%d", i),
			"Pos":               []string{"PG", "SG", "SF", "PF", "C"}[i%5],
			stat:                float64(i%37) + 0.5,
		}
		if i%11 == 5 {
			r[stat] = nil
		}
		rows[i] = r
	}
	return records.NewTable(name, []string{"Player", "Player-additional", "Pos", stat}, rows)
}

// BenchmarkMergeAndViews exercises the in-memory hot path: merge, preprocess
// and the sort and pivot views.
//
//	go test ./internal/etl -run=^$ -bench BenchmarkMergeAndViews -benchmem
func BenchmarkMergeAndViews(b *testing.B) {
	for _, n := range []int{500, 5000} {
		adv := syntheticStats("advanced", n, "PER")
		reg := syntheticStats("regular", n, "PTS")
		b.Run(fmt.Sprintf("players=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				merged, err := merge.Merge(adv, reg, merge.DefaultOptions())
				if err != nil {
					b.Fatal(err)
				}
				processed, err := preprocess.Preprocess(merged, "Player")
				if err != nil {
					b.Fatal(err)
				}
				if _, err := views.SortDescending(processed, "PTS"); err != nil {
					b.Fatal(err)
				}
				if _, err := views.PivotAndFlatten(processed, "Player", "Pos (reg)", "PTS"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
