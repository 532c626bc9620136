package stats

import (
	"sort"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

// TrendRow is one (raid, class[, spec]) share point of a time series.
// Spec is empty for class-level rows.
type TrendRow struct {
	Raid       string  `json:"raid"`
	Class      string  `json:"class"`
	Spec       string  `json:"spec,omitempty"`
	Percentage float64 `json:"percentage"`
}

// ClassTrends computes each class's share of every non-excluded raid's
// total, one row per (raid, class) pair. Raids appear in the
// collection's chronological order; classes within a raid are sorted by
// name.
func ClassTrends(c *raids.Collection, exclude []string) ([]TrendRow, error) {
	skip := excludeSet(exclude)

	var rows []TrendRow
	for _, name := range c.Names() {
		if skip[name] {
			continue
		}
		t, err := c.Table(name)
		if err != nil {
			return nil, err
		}
		total := t.TotalParses()
		if total == 0 {
			return nil, emptyTableErr(name)
		}

		byClass := make(map[string]int)
		for _, r := range t.Rows {
			byClass[r.Class] += r.Parses
		}
		classes := make([]string, 0, len(byClass))
		for class := range byClass {
			classes = append(classes, class)
		}
		sort.Strings(classes)

		for _, class := range classes {
			rows = append(rows, TrendRow{
				Raid:       name,
				Class:      class,
				Percentage: round2(float64(byClass[class]) / float64(total) * 100),
			})
		}
	}
	return rows, nil
}

// SpecTrends computes each (class, spec) pair's share of every
// non-excluded raid's total, one row per pair. Rows within a raid keep
// the source table's order.
func SpecTrends(c *raids.Collection, exclude []string) ([]TrendRow, error) {
	skip := excludeSet(exclude)

	var rows []TrendRow
	for _, name := range c.Names() {
		if skip[name] {
			continue
		}
		t, err := c.Table(name)
		if err != nil {
			return nil, err
		}
		total := t.TotalParses()
		if total == 0 {
			return nil, emptyTableErr(name)
		}

		for _, r := range t.Rows {
			rows = append(rows, TrendRow{
				Raid:       name,
				Class:      r.Class,
				Spec:       r.Spec,
				Percentage: round2(float64(r.Parses) / float64(total) * 100),
			})
		}
	}
	return rows, nil
}

// FilterTrendsByClass returns the rows of one class, preserving order.
func FilterTrendsByClass(rows []TrendRow, class string) []TrendRow {
	var out []TrendRow
	for _, r := range rows {
		if r.Class == class {
			out = append(out, r)
		}
	}
	return out
}
