package stats

import (
	"testing"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

func changeCollection() *raids.Collection {
	return collection([]string{"Raid A", "Raid B", "Raid C"},
		table("Raid A",
			raids.Row{Class: "Warrior", Spec: "Arms", Parses: 100},
			raids.Row{Class: "Mage", Spec: "Fire", Parses: 300},
		),
		table("Raid B",
			raids.Row{Class: "Warrior", Spec: "Arms", Parses: 200},
			raids.Row{Class: "Mage", Spec: "Fire", Parses: 200},
		),
		table("Raid C",
			raids.Row{Class: "Warrior", Spec: "Arms", Parses: 300},
			raids.Row{Class: "Mage", Spec: "Fire", Parses: 100},
		),
	)
}

func TestClassChangeSeries(t *testing.T) {
	series, err := ClassChangeSeries(changeCollection(), "Warrior", nil)
	if err != nil {
		t.Fatalf("ClassChangeSeries: %v", err)
	}

	want := []ClassChange{
		{FromRaid: "Raid A", ToRaid: "Raid B", FromPercentage: 25.0, ToPercentage: 50.0, Change: 25.0},
		{FromRaid: "Raid B", ToRaid: "Raid C", FromPercentage: 50.0, ToPercentage: 75.0, Change: 25.0},
	}
	if len(series) != len(want) {
		t.Fatalf("got %d steps, want %d", len(series), len(want))
	}
	for i := range want {
		if series[i] != want[i] {
			t.Errorf("step %d = %+v, want %+v", i, series[i], want[i])
		}
	}
}

func TestClassChangeSeriesSkipsExcludedRaid(t *testing.T) {
	// Excluding the middle raid walks A -> C directly, no interpolation.
	series, err := ClassChangeSeries(changeCollection(), "Warrior", []string{"Raid B"})
	if err != nil {
		t.Fatalf("ClassChangeSeries: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("got %d steps, want 1", len(series))
	}
	step := series[0]
	if step.FromRaid != "Raid A" || step.ToRaid != "Raid C" {
		t.Errorf("step = %s -> %s, want Raid A -> Raid C", step.FromRaid, step.ToRaid)
	}
	if step.Change != 50.0 {
		t.Errorf("change = %v, want 50.0", step.Change)
	}
}

func TestClassChangeSeriesLength(t *testing.T) {
	tests := []struct {
		name    string
		exclude []string
		want    int
	}{
		{"Three raids", nil, 2},
		{"Two raids", []string{"Raid B"}, 1},
		{"One raid", []string{"Raid A", "Raid B"}, 0},
		{"No raids", []string{"Raid A", "Raid B", "Raid C"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := ClassChangeSeries(changeCollection(), "Warrior", tt.exclude)
			if err != nil {
				t.Fatalf("ClassChangeSeries: %v", err)
			}
			if len(series) != tt.want {
				t.Errorf("got %d steps, want %d", len(series), tt.want)
			}
		})
	}
}

func TestClassChangeSeriesAbsentClassCountsAsZero(t *testing.T) {
	c := collection([]string{"Raid A", "Raid B"},
		table("Raid A",
			raids.Row{Class: "Warrior", Spec: "Arms", Parses: 50},
			raids.Row{Class: "Mage", Spec: "Fire", Parses: 50},
		),
		table("Raid B",
			raids.Row{Class: "Mage", Spec: "Fire", Parses: 100},
		),
	)

	series, err := ClassChangeSeries(c, "Warrior", nil)
	if err != nil {
		t.Fatalf("ClassChangeSeries: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("got %d steps, want 1", len(series))
	}
	if series[0].ToPercentage != 0 || series[0].Change != -50.0 {
		t.Errorf("step = %+v, want drop to 0%%", series[0])
	}
}
