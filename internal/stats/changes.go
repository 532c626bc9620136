package stats

import (
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

// ClassChange is one raid-to-raid step of a class's representation.
type ClassChange struct {
	FromRaid       string  `json:"from_raid"`
	ToRaid         string  `json:"to_raid"`
	FromPercentage float64 `json:"from_percentage"`
	ToPercentage   float64 `json:"to_percentage"`
	Change         float64 `json:"change"`
}

// ClassChangeSeries walks the non-excluded raids in chronological order
// and emits the percentage-point change of one class between each
// adjacent pair. An excluded raid is skipped entirely, so the walk goes
// straight from its predecessor to its successor. A class absent from a
// raid counts as 0%. The first raid has no predecessor, so a collection
// with fewer than two non-excluded raids yields an empty series; callers
// treat that as "not enough data", not an error.
func ClassChangeSeries(c *raids.Collection, class string, exclude []string) ([]ClassChange, error) {
	skip := excludeSet(exclude)

	var (
		series   []ClassChange
		havePrev bool
		prevRaid string
		prevPct  float64
	)
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
		pct := round2(float64(t.ClassParses(class)) / float64(total) * 100)

		if havePrev {
			series = append(series, ClassChange{
				FromRaid:       prevRaid,
				ToRaid:         name,
				FromPercentage: prevPct,
				ToPercentage:   pct,
				Change:         round2(pct - prevPct),
			})
		}
		havePrev = true
		prevRaid = name
		prevPct = pct
	}
	return series, nil
}
