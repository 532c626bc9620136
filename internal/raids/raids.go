// Package raids holds the raid participation data model: per-raid parse
// tables and the chronologically ordered collection they live in.
package raids

import (
	"errors"
	"fmt"
)

// ErrEmptyTable indicates a table whose total parse count is zero.
// Percentage computations refuse such tables instead of dividing by zero.
var ErrEmptyTable = errors.New("raid table has no parses")

// ErrRaidNotFound indicates a raid name absent from a collection.
var ErrRaidNotFound = errors.New("raid not found")

// MalformedDataError describes a raid data file that could not be parsed:
// missing required columns, an unparseable parse count, or a duplicate
// (class, spec) key.
type MalformedDataError struct {
	File   string
	Reason string
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed raid data in %s: %s", e.File, e.Reason)
}

// Row is one (class, spec) entry of a raid table.
type Row struct {
	Class  string `json:"class"`
	Spec   string `json:"spec"`
	Parses int    `json:"parses"`
}

// Table is the parse counts for a single raid instance. Rows keep the
// order of the source file, (Class, Spec) pairs are unique within a
// table and Parses is never negative. Tables are read-only after load.
type Table struct {
	Name string
	Rows []Row
}

// TotalParses returns the sum of parses over all rows.
func (t *Table) TotalParses() int {
	total := 0
	for _, r := range t.Rows {
		total += r.Parses
	}
	return total
}

// ClassParses returns the sum of parses for one class.
func (t *Table) ClassParses(class string) int {
	total := 0
	for _, r := range t.Rows {
		if r.Class == class {
			total += r.Parses
		}
	}
	return total
}

// Collection is an ordered set of raid tables. Iteration order is always
// the canonical chronological order the collection was built with, never
// filesystem or insertion order.
type Collection struct {
	names  []string
	tables map[string]*Table
}

// NewCollection builds a collection from loaded tables, keyed by raid
// display name, ordered by the given canonical raid order. Tables whose
// name is not in the order are dropped; order entries with no table are
// skipped. Both silently, so stray files and not-yet-released raids are
// ignored alike.
func NewCollection(order []string, tables map[string]*Table) *Collection {
	c := &Collection{tables: make(map[string]*Table, len(tables))}
	for _, name := range order {
		t, ok := tables[name]
		if !ok {
			continue
		}
		c.names = append(c.names, name)
		c.tables[name] = t
	}
	return c
}

// Names returns the raid names in chronological order, oldest first.
func (c *Collection) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Len returns the number of raids in the collection.
func (c *Collection) Len() int {
	return len(c.names)
}

// Table returns the table for the named raid.
func (c *Collection) Table(name string) (*Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("raid %q: %w", name, ErrRaidNotFound)
	}
	return t, nil
}

// Latest returns the most recent raid in the collection.
func (c *Collection) Latest() (*Table, error) {
	if len(c.names) == 0 {
		return nil, ErrRaidNotFound
	}
	return c.tables[c.names[len(c.names)-1]], nil
}
