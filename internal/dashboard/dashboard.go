// Package dashboard composes the analysis views into go-echarts pages.
// Each view is an explicit state with its own renderer that requests
// exactly the engine data it needs; no analysis logic lives here.
package dashboard

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/charts"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/mythic"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/stats"
)

// View selects which dashboard page to render.
type View string

const (
	ViewOverview View = "overview"
	ViewClass    View = "class"
	ViewRaid     View = "raid"
	ViewMythic   View = "mythic"
)

// ParseView maps a route segment to a view.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewOverview, ViewClass, ViewRaid, ViewMythic:
		return View(s), nil
	}
	return "", fmt.Errorf("unknown dashboard view %q", s)
}

func newPage(title string) *components.Page {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.PageTitle = title
	return page
}

func sized(cfg charts.ChartConfig, title, subtitle string) charts.ChartConfig {
	cfg.Title = title
	cfg.Subtitle = subtitle
	return cfg
}

// RenderOverview renders the all-raids page: class and spec trends over
// time plus the latest raid's composition.
func RenderOverview(w io.Writer, c *raids.Collection, exclude []string, cfg charts.ChartConfig) error {
	classTrends, err := stats.ClassTrends(c, exclude)
	if err != nil {
		return err
	}
	specTrends, err := stats.SpecTrends(c, exclude)
	if err != nil {
		return err
	}
	latest, err := c.Latest()
	if err != nil {
		return err
	}
	rows, totals, err := stats.Percentages(latest)
	if err != nil {
		return fmt.Errorf("raid %q: %w", latest.Name, err)
	}

	page := newPage("WoW Raid Analysis")
	page.AddCharts(
		charts.NewTrendLine(classTrends, sized(cfg, "Class Representation Trends", "Share of all parses per raid")),
		charts.NewTrendLine(specTrends, sized(cfg, "Specialization Trends", "Share of all parses per raid")),
		charts.NewClassPie(totals, sized(cfg, "Class Distribution", latest.Name)),
		charts.NewSpecPie(rows, sized(cfg, "All Specializations", latest.Name)),
		charts.NewSpecBar(rows, sized(cfg, "Class/Spec Distribution", latest.Name)),
		charts.NewSpecBar(stats.TopSpecs(rows, 5), sized(cfg, "Top 5 Specs", latest.Name)),
		charts.NewSpecTreemap(rows, sized(cfg, "Distribution Treemap", latest.Name)),
	)
	return page.Render(w)
}

// RenderClassAnalysis renders one class's history: its share over time,
// raid-to-raid changes, and its spec breakdown in a chosen raid
// (defaults to the latest).
func RenderClassAnalysis(w io.Writer, c *raids.Collection, class string, exclude []string, statusRaid string, cfg charts.ChartConfig) error {
	classTrends, err := stats.ClassTrends(c, exclude)
	if err != nil {
		return err
	}
	ownTrend := stats.FilterTrendsByClass(classTrends, class)

	changeSeries, err := stats.ClassChangeSeries(c, class, exclude)
	if err != nil {
		return err
	}

	specTrends, err := stats.SpecTrends(c, exclude)
	if err != nil {
		return err
	}
	ownSpecTrend := stats.FilterTrendsByClass(specTrends, class)

	var status *raids.Table
	if statusRaid != "" {
		status, err = c.Table(statusRaid)
	} else {
		status, err = c.Latest()
	}
	if err != nil {
		return err
	}
	rows, _, err := stats.Percentages(status)
	if err != nil {
		return fmt.Errorf("raid %q: %w", status.Name, err)
	}
	var classRows []stats.PercentageRow
	for _, r := range rows {
		if r.Class == class {
			classRows = append(classRows, r)
		}
	}

	page := newPage(class+" Analysis")
	page.AddCharts(
		charts.NewTrendLine(ownTrend, sized(cfg, class+" Representation Over Time", "")),
		charts.NewClassChangeBar(changeSeries, class, sized(cfg, "Raid-to-Raid Changes", "Percentage points")),
		charts.NewSpecPie(classRows, sized(cfg, class+" Spec Distribution", status.Name)),
		charts.NewTrendLine(ownSpecTrend, sized(cfg, class+" Spec Distribution Over Time", "")),
	)
	return page.Render(w)
}

// RenderRaid renders a single raid's composition, optionally with a
// comparison against another raid.
func RenderRaid(w io.Writer, c *raids.Collection, raidName, compareWith string, cfg charts.ChartConfig) error {
	t, err := c.Table(raidName)
	if err != nil {
		return err
	}
	rows, totals, err := stats.Percentages(t)
	if err != nil {
		return fmt.Errorf("raid %q: %w", raidName, err)
	}

	page := newPage("Analysis for "+raidName)
	page.AddCharts(
		charts.NewSpecBar(rows, sized(cfg, "Class/Spec Distribution", raidName)),
		charts.NewSpecTreemap(rows, sized(cfg, "Distribution Treemap", raidName)),
		charts.NewClassPie(totals, sized(cfg, "Class Distribution", raidName)),
	)

	if compareWith != "" {
		other, err := c.Table(compareWith)
		if err != nil {
			return err
		}
		comparison, err := stats.Compare(t, other)
		if err != nil {
			return err
		}
		subtitle := "Percentage-point change"
		if dropped := stats.ComparisonDropped(t, other); len(dropped) > 0 {
			subtitle = fmt.Sprintf("Percentage-point change; %d one-sided specs not shown", len(dropped))
		}
		page.AddCharts(
			charts.NewComparisonBar(comparison, sized(cfg, fmt.Sprintf("Changes from %s to %s", raidName, compareWith), subtitle)),
		)
	}
	return page.Render(w)
}

// RenderMythic renders the Mythic+ scaling comparison page.
func RenderMythic(w io.Writer, data *mythic.SeasonData, cfg charts.ChartConfig) error {
	page := newPage("Mythic+ Scaling Analysis")
	page.AddCharts(
		charts.NewScalingLine(data.Base, sized(cfg, "Season 1 vs Season 2 Base Scaling", "")),
		charts.NewScalingDeltaBar(mythic.Deltas(data.Base), sized(cfg, "Season Difference", "Season 2 relative to Season 1, percent")),
		charts.NewScalingLine(data.Higher10, sized(cfg, "Scaling with 10% Higher Baseline in Season 2", "")),
		charts.NewScalingLine(data.Higher25, sized(cfg, "Scaling with 25% Higher Baseline in Season 2", "")),
	)
	return page.Render(w)
}
