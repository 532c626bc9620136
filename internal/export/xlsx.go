// Package export writes raid participation reports as XLSX workbooks.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/stats"
)

// ReportXLSX writes a workbook with three sheets: the latest raid's
// composition, class share per raid, and the full per-spec trend rows.
// Excluded raids are dropped from the trend sheets but the latest raid
// sheet always shows the newest raid of the collection.
func ReportXLSX(path string, c *raids.Collection, exclude []string) error {
	if c.Len() == 0 {
		return raids.ErrRaidNotFound
	}

	latest, err := c.Latest()
	if err != nil {
		return err
	}
	latestRows, classTotals, err := stats.Percentages(latest)
	if err != nil {
		return fmt.Errorf("raid %q: %w", latest.Name, err)
	}
	classTrends, err := stats.ClassTrends(c, exclude)
	if err != nil {
		return err
	}
	specTrends, err := stats.SpecTrends(c, exclude)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	latestSheet := "Latest Raid"
	if err := f.SetSheetName("Sheet1", latestSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	// Two decimals on all share columns, same precision the engines round to.
	pctStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}

	// Latest raid sheet: spec rows on the left, class totals on the right.
	f.SetCellValue(latestSheet, "A1", "Class")
	f.SetCellValue(latestSheet, "B1", "Spec")
	f.SetCellValue(latestSheet, "C1", "Parses")
	f.SetCellValue(latestSheet, "D1", "Share %")
	f.SetCellValue(latestSheet, "F1", "Class")
	f.SetCellValue(latestSheet, "G1", "Parses")
	f.SetCellValue(latestSheet, "H1", "Share %")
	if err := f.SetCellStyle(latestSheet, "A1", "H1", headerStyle); err != nil {
		return err
	}
	for i, r := range latestRows {
		row := i + 2
		f.SetCellValue(latestSheet, fmt.Sprintf("A%d", row), r.Class)
		f.SetCellValue(latestSheet, fmt.Sprintf("B%d", row), r.Spec)
		f.SetCellValue(latestSheet, fmt.Sprintf("C%d", row), r.Parses)
		f.SetCellValue(latestSheet, fmt.Sprintf("D%d", row), r.Percentage)
	}
	for i, t := range classTotals {
		row := i + 2
		f.SetCellValue(latestSheet, fmt.Sprintf("F%d", row), t.Class)
		f.SetCellValue(latestSheet, fmt.Sprintf("G%d", row), t.Parses)
		f.SetCellValue(latestSheet, fmt.Sprintf("H%d", row), t.Percentage)
	}
	if len(latestRows) > 0 {
		if err := f.SetCellStyle(latestSheet, "D2", fmt.Sprintf("D%d", len(latestRows)+1), pctStyle); err != nil {
			return err
		}
	}
	if len(classTotals) > 0 {
		if err := f.SetCellStyle(latestSheet, "H2", fmt.Sprintf("H%d", len(classTotals)+1), pctStyle); err != nil {
			return err
		}
	}

	if err := writeClassTrendSheet(f, headerStyle, pctStyle, classTrends); err != nil {
		return err
	}
	if err := writeSpecTrendSheet(f, headerStyle, pctStyle, specTrends); err != nil {
		return err
	}

	if idx, err := f.GetSheetIndex(latestSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	return f.SaveAs(path)
}

// writeClassTrendSheet pivots class trend rows into a raids-by-classes
// matrix. A class missing from a raid leaves its cell empty.
func writeClassTrendSheet(f *excelize.File, headerStyle, pctStyle int, trends []stats.TrendRow) error {
	sheet := "Class Trends"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	classSet := make(map[string]bool)
	var raidOrder []string
	seenRaid := make(map[string]bool)
	share := make(map[[2]string]float64, len(trends))
	for _, t := range trends {
		classSet[t.Class] = true
		if !seenRaid[t.Raid] {
			seenRaid[t.Raid] = true
			raidOrder = append(raidOrder, t.Raid)
		}
		share[[2]string{t.Raid, t.Class}] = t.Percentage
	}

	classes := make([]string, 0, len(classSet))
	for class := range classSet {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	f.SetCellValue(sheet, "A1", "Raid")
	for i, class := range classes {
		cell, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, class)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(classes)+1, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	for r, raid := range raidOrder {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r+2), raid)
		for c, class := range classes {
			pct, ok := share[[2]string{raid, class}]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+2, r+2)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, pct)
		}
	}
	if len(raidOrder) > 0 && len(classes) > 0 {
		last, err := excelize.CoordinatesToCellName(len(classes)+1, len(raidOrder)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "B2", last, pctStyle); err != nil {
			return err
		}
	}
	return nil
}

// writeSpecTrendSheet writes spec trend rows as a flat list.
func writeSpecTrendSheet(f *excelize.File, headerStyle, pctStyle int, trends []stats.TrendRow) error {
	sheet := "Spec Trends"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Raid")
	f.SetCellValue(sheet, "B1", "Class")
	f.SetCellValue(sheet, "C1", "Spec")
	f.SetCellValue(sheet, "D1", "Share %")
	if err := f.SetCellStyle(sheet, "A1", "D1", headerStyle); err != nil {
		return err
	}
	for i, t := range trends {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), t.Raid)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), t.Class)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), t.Spec)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), t.Percentage)
	}
	if len(trends) > 0 {
		if err := f.SetCellStyle(sheet, "D2", fmt.Sprintf("D%d", len(trends)+1), pctStyle); err != nil {
			return err
		}
	}
	return nil
}
