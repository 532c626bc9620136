package stats

import (
	"fmt"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

// ComparisonRow is the percentage-point delta for one (class, spec)
// pair between two raids, each measured against its own raid's total.
type ComparisonRow struct {
	Class       string  `json:"class"`
	Spec        string  `json:"spec"`
	PercentageA float64 `json:"percentage_a"`
	PercentageB float64 `json:"percentage_b"`
	Change      float64 `json:"change"`
}

// Compare aligns two raid tables on (class, spec) and computes the
// percentage-point change from a to b. The join is inner: pairs present
// in only one raid are dropped, so specs added or removed between tiers
// do not appear (use ComparisonDropped to surface them). Because of
// that, the positive and negative changes only sum to ~0 when nothing
// was dropped. Row order follows table a.
func Compare(a, b *raids.Table) ([]ComparisonRow, error) {
	rowsA, _, err := Percentages(a)
	if err != nil {
		return nil, fmt.Errorf("raid %q: %w", a.Name, err)
	}
	rowsB, _, err := Percentages(b)
	if err != nil {
		return nil, fmt.Errorf("raid %q: %w", b.Name, err)
	}

	shareB := make(map[[2]string]float64, len(rowsB))
	for _, r := range rowsB {
		shareB[[2]string{r.Class, r.Spec}] = r.Percentage
	}

	var out []ComparisonRow
	for _, r := range rowsA {
		pctB, ok := shareB[[2]string{r.Class, r.Spec}]
		if !ok {
			continue
		}
		out = append(out, ComparisonRow{
			Class:       r.Class,
			Spec:        r.Spec,
			PercentageA: r.Percentage,
			PercentageB: pctB,
			Change:      round2(pctB - r.Percentage),
		})
	}
	return out, nil
}

// ComparisonDropped lists the "Class/Spec" keys present in exactly one
// of the two tables, i.e. the rows an inner join discards. Order: keys
// unique to a in a's row order, then keys unique to b in b's.
func ComparisonDropped(a, b *raids.Table) []string {
	inA := make(map[[2]string]bool, len(a.Rows))
	for _, r := range a.Rows {
		inA[[2]string{r.Class, r.Spec}] = true
	}
	inB := make(map[[2]string]bool, len(b.Rows))
	for _, r := range b.Rows {
		inB[[2]string{r.Class, r.Spec}] = true
	}

	var dropped []string
	for _, r := range a.Rows {
		if !inB[[2]string{r.Class, r.Spec}] {
			dropped = append(dropped, r.Class+"/"+r.Spec)
		}
	}
	for _, r := range b.Rows {
		if !inA[[2]string{r.Class, r.Spec}] {
			dropped = append(dropped, r.Class+"/"+r.Spec)
		}
	}
	return dropped
}
