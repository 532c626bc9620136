// Package stats computes percentage shares, cross-raid trends and
// pairwise comparisons over raid parse tables. Every function is pure:
// inputs are never mutated, totals are recomputed on each call, and the
// same inputs always produce the same rows in the same order.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

// PercentageRow is a raid table row with its share of the table's total.
type PercentageRow struct {
	Class      string  `json:"class"`
	Spec       string  `json:"spec"`
	Parses     int     `json:"parses"`
	Percentage float64 `json:"percentage"`
}

// ClassTotal is the per-class sum of parses and its share of the total.
type ClassTotal struct {
	Class      string  `json:"class"`
	Parses     int     `json:"parses"`
	Percentage float64 `json:"percentage"`
}

// round2 rounds half away from zero to two decimals. All percentage
// columns go through this so output is bit-identical across calls.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percentages decorates a table's rows with their share of the table's
// total parse count and returns per-class totals alongside. Row order
// follows the table; class totals are sorted by class name. Returns
// raids.ErrEmptyTable when the total is zero rather than emitting NaN.
func Percentages(t *raids.Table) ([]PercentageRow, []ClassTotal, error) {
	total := t.TotalParses()
	if total == 0 {
		return nil, nil, raids.ErrEmptyTable
	}

	rows := make([]PercentageRow, 0, len(t.Rows))
	byClass := make(map[string]int)
	for _, r := range t.Rows {
		rows = append(rows, PercentageRow{
			Class:      r.Class,
			Spec:       r.Spec,
			Parses:     r.Parses,
			Percentage: round2(float64(r.Parses) / float64(total) * 100),
		})
		byClass[r.Class] += r.Parses
	}

	classes := make([]string, 0, len(byClass))
	for class := range byClass {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	totals := make([]ClassTotal, 0, len(classes))
	for _, class := range classes {
		parses := byClass[class]
		totals = append(totals, ClassTotal{
			Class:      class,
			Parses:     parses,
			Percentage: round2(float64(parses) / float64(total) * 100),
		})
	}

	return rows, totals, nil
}

// TopSpecs returns the n rows with the highest parse counts. Ties keep
// their original relative order, so output is stable across calls.
func TopSpecs(rows []PercentageRow, n int) []PercentageRow {
	sorted := make([]PercentageRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Parses > sorted[j].Parses
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	if n < 0 {
		n = 0
	}
	return sorted[:n]
}

// excludeSet builds a membership set from an exclusion list. Exclusion
// is always a call-time filter, never state carried between calls.
func excludeSet(exclude []string) map[string]bool {
	set := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		set[name] = true
	}
	return set
}

// emptyTableErr wraps ErrEmptyTable with the raid it came from, so a
// zero-parse file surfaces with a name instead of as silent NaN rows.
func emptyTableErr(raid string) error {
	return fmt.Errorf("raid %q: %w", raid, raids.ErrEmptyTable)
}
