// Package mythic loads and compares Mythic+ dungeon scaling values
// between two game seasons.
package mythic

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Fixed export filenames for the season comparison data set.
const (
	baseScalingFile     = "M+ Scaling Season 1 vs Season 2 - Scaling Percentages.csv"
	higher10ScalingFile = "M+ Scaling Season 1 vs Season 2 - Scaling With 10_ Higher Baseline.csv"
	higher25ScalingFile = "M+ Scaling Season 1 vs Season 2 - Scaling With 25_ Higher Baseline.csv"
)

// ScalingRow is one dungeon key level with both seasons' scaling values
// and an optional annotation from the source sheet.
type ScalingRow struct {
	Level   string  `json:"level"`
	Season1 float64 `json:"season1"`
	Season2 float64 `json:"season2"`
	Note    string  `json:"note,omitempty"`
}

// ScalingTable is one scaling scenario across all key levels.
type ScalingTable struct {
	Name string       `json:"name"`
	Rows []ScalingRow `json:"rows"`
}

// SeasonData bundles the three scaling scenarios of a season comparison.
type SeasonData struct {
	Base     *ScalingTable `json:"base"`
	Higher10 *ScalingTable `json:"higher_10"`
	Higher25 *ScalingTable `json:"higher_25"`
}

// ScalingDelta is the per-level difference between the two seasons.
type ScalingDelta struct {
	Level    string  `json:"level"`
	Absolute float64 `json:"absolute"`
	Relative float64 `json:"relative"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// parseScalingValue parses a numeric cell that may be formatted as a
// percentage with a trailing % sign.
func parseScalingValue(raw string) (float64, error) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	return strconv.ParseFloat(s, 64)
}

// LoadScalingTable reads one scaling CSV. The header needs a "Mythic"
// key-level column and two season value columns; a "Note"/"Notes"
// column is optional and any further columns are ignored. Season values
// may carry a trailing % sign.
func LoadScalingTable(path string) (*ScalingTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scaling data: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse scaling data %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("scaling data %s has no header row", path)
	}

	levelCol, noteCol := -1, -1
	var seasonCols []int
	for i, col := range records[0] {
		switch name := strings.TrimSpace(col); name {
		case "Mythic":
			levelCol = i
		case "Note", "Notes":
			noteCol = i
		default:
			seasonCols = append(seasonCols, i)
		}
	}
	if levelCol < 0 {
		return nil, fmt.Errorf("scaling data %s is missing the Mythic column", path)
	}
	if len(seasonCols) < 2 {
		return nil, fmt.Errorf("scaling data %s needs two season columns, found %d", path, len(seasonCols))
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t := &ScalingTable{Name: name}
	for _, record := range records[1:] {
		s1, err := parseScalingValue(record[seasonCols[0]])
		if err != nil {
			return nil, fmt.Errorf("scaling data %s: season 1 value %q: %w", path, record[seasonCols[0]], err)
		}
		s2, err := parseScalingValue(record[seasonCols[1]])
		if err != nil {
			return nil, fmt.Errorf("scaling data %s: season 2 value %q: %w", path, record[seasonCols[1]], err)
		}
		row := ScalingRow{
			Level:   strings.TrimSpace(record[levelCol]),
			Season1: s1,
			Season2: s2,
		}
		if noteCol >= 0 {
			row.Note = strings.TrimSpace(record[noteCol])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// LoadSeasonData loads the three fixed scaling files from dir.
func LoadSeasonData(dir string) (*SeasonData, error) {
	base, err := LoadScalingTable(filepath.Join(dir, baseScalingFile))
	if err != nil {
		return nil, err
	}
	higher10, err := LoadScalingTable(filepath.Join(dir, higher10ScalingFile))
	if err != nil {
		return nil, err
	}
	higher25, err := LoadScalingTable(filepath.Join(dir, higher25ScalingFile))
	if err != nil {
		return nil, err
	}
	return &SeasonData{Base: base, Higher10: higher10, Higher25: higher25}, nil
}

// Deltas computes the season 2 minus season 1 difference per key level,
// absolute and relative to season 1 (0 when season 1 is 0).
func Deltas(t *ScalingTable) []ScalingDelta {
	deltas := make([]ScalingDelta, 0, len(t.Rows))
	for _, r := range t.Rows {
		d := ScalingDelta{
			Level:    r.Level,
			Absolute: round2(r.Season2 - r.Season1),
		}
		if r.Season1 != 0 {
			d.Relative = round2((r.Season2 - r.Season1) / r.Season1 * 100)
		}
		deltas = append(deltas, d)
	}
	return deltas
}
