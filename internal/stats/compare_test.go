package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

func TestCompareWithItselfYieldsZeroChange(t *testing.T) {
	a := table("Test",
		raids.Row{Class: "Warrior", Spec: "Arms", Parses: 100},
		raids.Row{Class: "Mage", Spec: "Fire", Parses: 300},
	)

	rows, err := Compare(a, a)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for _, r := range rows {
		if r.Change != 0 {
			t.Errorf("%s/%s change = %v, want 0", r.Class, r.Spec, r.Change)
		}
		if r.PercentageA != r.PercentageB {
			t.Errorf("%s/%s sides differ: %v vs %v", r.Class, r.Spec, r.PercentageA, r.PercentageB)
		}
	}
}

func TestCompare(t *testing.T) {
	a := table("Raid A",
		raids.Row{Class: "Warrior", Spec: "Arms", Parses: 100},
		raids.Row{Class: "Mage", Spec: "Fire", Parses: 300},
	)
	b := table("Raid B",
		raids.Row{Class: "Warrior", Spec: "Arms", Parses: 300},
		raids.Row{Class: "Mage", Spec: "Fire", Parses: 100},
	)

	rows, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	// Row order follows table a.
	want := []ComparisonRow{
		{Class: "Warrior", Spec: "Arms", PercentageA: 25.0, PercentageB: 75.0, Change: 50.0},
		{Class: "Mage", Spec: "Fire", PercentageA: 75.0, PercentageB: 25.0, Change: -50.0},
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

func TestCompareNetChangeNearZeroWithoutDrops(t *testing.T) {
	a := table("Raid A",
		raids.Row{Class: "Warrior", Spec: "Arms", Parses: 123},
		raids.Row{Class: "Mage", Spec: "Fire", Parses: 456},
		raids.Row{Class: "Rogue", Spec: "Outlaw", Parses: 789},
	)
	b := table("Raid B",
		raids.Row{Class: "Warrior", Spec: "Arms", Parses: 555},
		raids.Row{Class: "Mage", Spec: "Fire", Parses: 111},
		raids.Row{Class: "Rogue", Spec: "Outlaw", Parses: 333},
	)

	rows, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if dropped := ComparisonDropped(a, b); len(dropped) != 0 {
		t.Fatalf("expected no dropped keys, got %v", dropped)
	}

	net := 0.0
	for _, r := range rows {
		net += r.Change
	}
	if math.Abs(net) > 0.05 {
		t.Errorf("net change = %v, want ~0 when the join drops nothing", net)
	}
}

func TestCompareInnerJoinDropsOneSidedSpecs(t *testing.T) {
	a := table("Raid A",
		raids.Row{Class: "Warrior", Spec: "Arms", Parses: 100},
		raids.Row{Class: "Evoker", Spec: "Augmentation", Parses: 50},
	)
	b := table("Raid B",
		raids.Row{Class: "Warrior", Spec: "Arms", Parses: 100},
		raids.Row{Class: "Monk", Spec: "Mistweaver", Parses: 50},
	)

	rows, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (one-sided specs dropped)", len(rows))
	}
	if rows[0].Class != "Warrior" {
		t.Errorf("surviving row = %+v, want Warrior/Arms", rows[0])
	}

	dropped := ComparisonDropped(a, b)
	want := []string{"Evoker/Augmentation", "Monk/Mistweaver"}
	if len(dropped) != len(want) {
		t.Fatalf("dropped = %v, want %v", dropped, want)
	}
	for i := range want {
		if dropped[i] != want[i] {
			t.Errorf("dropped[%d] = %q, want %q", i, dropped[i], want[i])
		}
	}
}

func TestCompareEmptyTable(t *testing.T) {
	full := table("Full", raids.Row{Class: "Mage", Spec: "Fire", Parses: 10})
	empty := table("Empty")

	if _, err := Compare(full, empty); !errors.Is(err, raids.ErrEmptyTable) {
		t.Errorf("Compare(full, empty) error = %v, want ErrEmptyTable", err)
	}
	if _, err := Compare(empty, full); !errors.Is(err, raids.ErrEmptyTable) {
		t.Errorf("Compare(empty, full) error = %v, want ErrEmptyTable", err)
	}
}
