package stats

import (
	"errors"
	"testing"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

func TestClassTrends(t *testing.T) {
	c := collection([]string{"Raid A", "Raid B"},
		table("Raid A",
			raids.Row{Class: "Warrior", Spec: "Arms", Parses: 100},
			raids.Row{Class: "Warrior", Spec: "Fury", Parses: 100},
			raids.Row{Class: "Mage", Spec: "Fire", Parses: 200},
		),
		table("Raid B",
			raids.Row{Class: "Mage", Spec: "Fire", Parses: 300},
			raids.Row{Class: "Warrior", Spec: "Arms", Parses: 100},
		),
	)

	rows, err := ClassTrends(c, nil)
	if err != nil {
		t.Fatalf("ClassTrends: %v", err)
	}

	want := []TrendRow{
		{Raid: "Raid A", Class: "Mage", Percentage: 50.0},
		{Raid: "Raid A", Class: "Warrior", Percentage: 50.0},
		{Raid: "Raid B", Class: "Mage", Percentage: 75.0},
		{Raid: "Raid B", Class: "Warrior", Percentage: 25.0},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestClassTrendsCanonicalOrderIndependentOfInsertion(t *testing.T) {
	a := table("Raid A", raids.Row{Class: "Mage", Spec: "Fire", Parses: 10})
	b := table("Raid B", raids.Row{Class: "Mage", Spec: "Fire", Parses: 10})

	// Same tables handed over in both insertion orders.
	c1 := collection([]string{"Raid A", "Raid B"}, a, b)
	c2 := collection([]string{"Raid A", "Raid B"}, b, a)

	rows1, err := ClassTrends(c1, nil)
	if err != nil {
		t.Fatalf("ClassTrends: %v", err)
	}
	rows2, err := ClassTrends(c2, nil)
	if err != nil {
		t.Fatalf("ClassTrends: %v", err)
	}

	if len(rows1) != len(rows2) {
		t.Fatalf("row counts differ: %d vs %d", len(rows1), len(rows2))
	}
	for i := range rows1 {
		if rows1[i] != rows2[i] {
			t.Errorf("row %d differs: %+v vs %+v", i, rows1[i], rows2[i])
		}
	}
	if rows1[0].Raid != "Raid A" {
		t.Errorf("first raid = %q, want Raid A", rows1[0].Raid)
	}
}

func TestClassTrendsExclusion(t *testing.T) {
	c := collection([]string{"Raid A", "Raid B", "Raid C"},
		table("Raid A", raids.Row{Class: "Mage", Spec: "Fire", Parses: 10}),
		table("Raid B", raids.Row{Class: "Mage", Spec: "Fire", Parses: 10}),
		table("Raid C", raids.Row{Class: "Mage", Spec: "Fire", Parses: 10}),
	)

	rows, err := ClassTrends(c, []string{"Raid B"})
	if err != nil {
		t.Fatalf("ClassTrends: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for _, r := range rows {
		if r.Raid == "Raid B" {
			t.Errorf("excluded raid appeared in output: %+v", r)
		}
	}

	// The exclusion must not stick to the collection.
	rows, err = ClassTrends(c, nil)
	if err != nil {
		t.Fatalf("ClassTrends: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("after exclusion-free call got %d rows, want 3", len(rows))
	}
}

func TestSpecTrends(t *testing.T) {
	c := collection([]string{"Raid A"},
		table("Raid A",
			raids.Row{Class: "Warrior", Spec: "Fury", Parses: 25},
			raids.Row{Class: "Warrior", Spec: "Arms", Parses: 75},
		),
	)

	rows, err := SpecTrends(c, nil)
	if err != nil {
		t.Fatalf("SpecTrends: %v", err)
	}

	// Spec rows keep the source table's row order.
	want := []TrendRow{
		{Raid: "Raid A", Class: "Warrior", Spec: "Fury", Percentage: 25.0},
		{Raid: "Raid A", Class: "Warrior", Spec: "Arms", Percentage: 75.0},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestTrendsEmptyRaidSurfaces(t *testing.T) {
	c := collection([]string{"Raid A", "Raid B"},
		table("Raid A", raids.Row{Class: "Mage", Spec: "Fire", Parses: 10}),
		table("Raid B"),
	)

	if _, err := ClassTrends(c, nil); !errors.Is(err, raids.ErrEmptyTable) {
		t.Errorf("ClassTrends error = %v, want ErrEmptyTable", err)
	}
	if _, err := SpecTrends(c, nil); !errors.Is(err, raids.ErrEmptyTable) {
		t.Errorf("SpecTrends error = %v, want ErrEmptyTable", err)
	}

	// Excluding the empty raid makes the rest computable again.
	if _, err := ClassTrends(c, []string{"Raid B"}); err != nil {
		t.Errorf("ClassTrends with empty raid excluded: %v", err)
	}
}

func TestFilterTrendsByClass(t *testing.T) {
	rows := []TrendRow{
		{Raid: "A", Class: "Mage", Percentage: 10},
		{Raid: "A", Class: "Warrior", Percentage: 20},
		{Raid: "B", Class: "Mage", Percentage: 30},
	}
	got := FilterTrendsByClass(rows, "Mage")
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].Raid != "A" || got[1].Raid != "B" {
		t.Errorf("order not preserved: %+v", got)
	}
}
