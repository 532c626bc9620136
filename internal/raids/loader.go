package raids

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultFilePrefix is the filename prefix exported spreadsheets carry.
// It is stripped when deriving a raid's display name from its file.
const DefaultFilePrefix = "Parse Counts - "

// RaidNameFromFile derives a raid display name from a CSV path by
// dropping the directory, the extension and the given prefix.
func RaidNameFromFile(path, prefix string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.TrimPrefix(name, prefix)
}

// LoadTable reads one raid's parse counts from a CSV file. The header
// must contain Class, Spec and Parses columns; extra columns and column
// order are ignored. Parses values may carry comma thousand-separators.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raid data: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &MalformedDataError{File: path, Reason: err.Error()}
	}
	if len(records) == 0 {
		return nil, &MalformedDataError{File: path, Reason: "file has no header row"}
	}

	classCol, specCol, parsesCol := -1, -1, -1
	for i, col := range records[0] {
		switch strings.TrimSpace(col) {
		case "Class":
			classCol = i
		case "Spec":
			specCol = i
		case "Parses":
			parsesCol = i
		}
	}
	if classCol < 0 || specCol < 0 || parsesCol < 0 {
		return nil, &MalformedDataError{File: path, Reason: "missing required column (Class, Spec, Parses)"}
	}

	table := &Table{Name: RaidNameFromFile(path, DefaultFilePrefix)}
	seen := make(map[[2]string]bool, len(records)-1)
	for _, record := range records[1:] {
		class := strings.TrimSpace(record[classCol])
		spec := strings.TrimSpace(record[specCol])

		// Source files format counts with thousand separators.
		raw := strings.ReplaceAll(strings.TrimSpace(record[parsesCol]), ",", "")
		parses, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &MalformedDataError{File: path, Reason: fmt.Sprintf("parse count %q is not a number", record[parsesCol])}
		}
		if parses < 0 {
			return nil, &MalformedDataError{File: path, Reason: fmt.Sprintf("negative parse count for %s/%s", class, spec)}
		}

		key := [2]string{class, spec}
		if seen[key] {
			return nil, &MalformedDataError{File: path, Reason: fmt.Sprintf("duplicate entry for %s/%s", class, spec)}
		}
		seen[key] = true

		table.Rows = append(table.Rows, Row{Class: class, Spec: spec, Parses: parses})
	}

	return table, nil
}

// LoadCollection loads every CSV file in dir into a collection ordered
// by the given canonical raid order. A file that fails to load is
// reported in the returned error slice and skipped; the rest of the
// directory still loads, so one bad export does not blank the whole
// dashboard. Files whose derived name is not in the order are dropped
// without error.
func LoadCollection(dir, prefix string, order []string) (*Collection, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return NewCollection(order, nil), []error{fmt.Errorf("read raid data directory: %w", err)}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		names = append(names, entry.Name())
	}
	// Deterministic load and error order regardless of directory order.
	sort.Strings(names)

	tables := make(map[string]*Table, len(names))
	var errs []error
	for _, name := range names {
		table, err := LoadTable(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		raidName := RaidNameFromFile(name, prefix)
		table.Name = raidName
		tables[raidName] = table
	}

	return NewCollection(order, tables), errs
}
