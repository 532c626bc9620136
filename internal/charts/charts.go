// Package charts builds the dashboard's interactive charts on top of
// go-echarts: distribution bars, pies, a treemap, trend lines and the
// comparison/change bars, all colored with the WoW class palette.
package charts

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/mythic"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/stats"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string // Chart title
	Subtitle   string // Chart subtitle
	XAxisLabel string // X-axis label
	YAxisLabel string // Y-axis label
	Width      string // Chart width (e.g., "900px")
	Height     string // Chart height (e.g., "500px")
	Theme      string // Chart theme
	ShowLegend bool   // Show legend
	Smooth     bool   // Smooth line (for line charts)
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "dark",
		ShowLegend: true,
		Smooth:     true,
	}
}

// Renderable is anything go-echarts can render to HTML, single charts
// and composed pages alike.
type Renderable interface {
	Render(w io.Writer) error
}

func globalOptions(cfg ChartConfig) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  cfg.Width,
			Height: cfg.Height,
			Theme:  cfg.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    cfg.Title,
			Subtitle: cfg.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(cfg.ShowLegend),
		}),
	}
}

func axisOptions(cfg ChartConfig) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{Name: cfg.XAxisLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: cfg.YAxisLabel}),
	}
}

// NewClassBar builds a bar chart of per-class shares, one bar per class
// in its class color.
func NewClassBar(totals []stats.ClassTotal, cfg ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOptions(cfg), axisOptions(cfg)...)...)

	xLabels := make([]string, len(totals))
	yData := make([]opts.BarData, len(totals))
	for i, ct := range totals {
		xLabels[i] = ct.Class
		yData[i] = opts.BarData{
			Value:     ct.Percentage,
			ItemStyle: &opts.ItemStyle{Color: ClassColor(ct.Class)},
		}
	}

	bar.SetXAxis(xLabels).
		AddSeries("Share", yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)
	return bar
}

// NewSpecBar builds a bar chart of per-spec shares, bars colored by the
// spec's class.
func NewSpecBar(rows []stats.PercentageRow, cfg ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOptions(cfg), axisOptions(cfg)...)...)

	xLabels := make([]string, len(rows))
	yData := make([]opts.BarData, len(rows))
	for i, r := range rows {
		xLabels[i] = fmt.Sprintf("%s (%s)", r.Spec, r.Class)
		yData[i] = opts.BarData{
			Value:     r.Percentage,
			ItemStyle: &opts.ItemStyle{Color: ClassColor(r.Class)},
		}
	}

	bar.SetXAxis(xLabels).
		AddSeries("Share", yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)
	return bar
}

// NewClassPie builds a pie chart of per-class shares.
func NewClassPie(totals []stats.ClassTotal, cfg ChartConfig) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(globalOptions(cfg)...)

	data := make([]opts.PieData, len(totals))
	for i, ct := range totals {
		data[i] = opts.PieData{
			Name:      ct.Class,
			Value:     ct.Percentage,
			ItemStyle: &opts.ItemStyle{Color: ClassColor(ct.Class)},
		}
	}

	pie.AddSeries("Class Share", data).
		SetSeriesOptions(
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{"35%", "70%"}}),
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c}%",
			}),
		)
	return pie
}

// NewSpecPie builds a pie chart of per-spec shares, slices colored by
// the spec's class.
func NewSpecPie(rows []stats.PercentageRow, cfg ChartConfig) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(globalOptions(cfg)...)

	data := make([]opts.PieData, len(rows))
	for i, r := range rows {
		data[i] = opts.PieData{
			Name:      fmt.Sprintf("%s (%s)", r.Spec, r.Class),
			Value:     r.Percentage,
			ItemStyle: &opts.ItemStyle{Color: ClassColor(r.Class)},
		}
	}

	pie.AddSeries("Spec Share", data).
		SetSeriesOptions(
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{"35%", "70%"}}),
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c}%",
			}),
		)
	return pie
}

// NewSpecTreemap builds a class -> spec treemap sized by parse counts.
func NewSpecTreemap(rows []stats.PercentageRow, cfg ChartConfig) *charts.TreeMap {
	tm := charts.NewTreeMap()
	tm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  cfg.Width,
			Height: cfg.Height,
			Theme:  cfg.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    cfg.Title,
			Subtitle: cfg.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)

	// Group specs under their class, keeping row order within a class.
	childOrder := make(map[string][]opts.TreeMapNode)
	var classOrder []string
	for _, r := range rows {
		if _, seen := childOrder[r.Class]; !seen {
			classOrder = append(classOrder, r.Class)
		}
		childOrder[r.Class] = append(childOrder[r.Class], opts.TreeMapNode{
			Name:  r.Spec,
			Value: r.Parses,
		})
	}

	nodes := make([]opts.TreeMapNode, 0, len(classOrder))
	for _, class := range classOrder {
		nodes = append(nodes, opts.TreeMapNode{
			Name:     class,
			Children: childOrder[class],
		})
	}

	tm.AddSeries("Parses", nodes).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
		)
	return tm
}

// NewTrendLine builds a multi-series line chart from trend rows: one
// series per class for class-level rows, one per class/spec pair for
// spec-level rows. The x-axis is the raids in the order the rows carry
// them (chronological).
func NewTrendLine(rows []stats.TrendRow, cfg ChartConfig) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(globalOptions(cfg), axisOptions(cfg)...)...)

	var raidOrder []string
	raidIndex := make(map[string]int)
	for _, r := range rows {
		if _, ok := raidIndex[r.Raid]; !ok {
			raidIndex[r.Raid] = len(raidOrder)
			raidOrder = append(raidOrder, r.Raid)
		}
	}

	seriesKey := func(r stats.TrendRow) string {
		if r.Spec == "" {
			return r.Class
		}
		return fmt.Sprintf("%s - %s", r.Class, r.Spec)
	}

	var seriesOrder []string
	values := make(map[string][]opts.LineData)
	colors := make(map[string]string)
	for _, r := range rows {
		key := seriesKey(r)
		if _, ok := values[key]; !ok {
			seriesOrder = append(seriesOrder, key)
			// Raids a series misses stay null and render as gaps.
			values[key] = make([]opts.LineData, len(raidOrder))
			colors[key] = ClassColor(r.Class)
		}
		values[key][raidIndex[r.Raid]] = opts.LineData{Value: r.Percentage}
	}

	line.SetXAxis(raidOrder)
	for _, key := range seriesOrder {
		line.AddSeries(key, values[key]).
			SetSeriesOptions(
				charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(cfg.Smooth)}),
				charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: colors[key]}),
			)
	}
	return line
}

const (
	gainColor = "#91CC75"
	lossColor = "#EE6666"
)

// NewComparisonBar builds a signed bar chart of percentage-point deltas
// between two raids, gains green and losses red.
func NewComparisonBar(rows []stats.ComparisonRow, cfg ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOptions(cfg), axisOptions(cfg)...)...)

	xLabels := make([]string, len(rows))
	yData := make([]opts.BarData, len(rows))
	for i, r := range rows {
		xLabels[i] = fmt.Sprintf("%s (%s)", r.Spec, r.Class)
		color := gainColor
		if r.Change < 0 {
			color = lossColor
		}
		yData[i] = opts.BarData{
			Value:     r.Change,
			ItemStyle: &opts.ItemStyle{Color: color},
		}
	}

	bar.SetXAxis(xLabels).
		AddSeries("Change", yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)
	return bar
}

// NewClassChangeBar builds a bar chart of one class's raid-to-raid
// percentage-point changes in that class's color.
func NewClassChangeBar(series []stats.ClassChange, class string, cfg ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOptions(cfg), axisOptions(cfg)...)...)

	xLabels := make([]string, len(series))
	yData := make([]opts.BarData, len(series))
	for i, step := range series {
		xLabels[i] = fmt.Sprintf("%s to %s", step.FromRaid, step.ToRaid)
		yData[i] = opts.BarData{
			Value:     step.Change,
			ItemStyle: &opts.ItemStyle{Color: ClassColor(class)},
		}
	}

	bar.SetXAxis(xLabels).
		AddSeries(class, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// NewScalingLine builds a two-series line chart of season scaling
// values per key level.
func NewScalingLine(t *mythic.ScalingTable, cfg ChartConfig) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(globalOptions(cfg), axisOptions(cfg)...)...)

	xLabels := make([]string, len(t.Rows))
	season1 := make([]opts.LineData, len(t.Rows))
	season2 := make([]opts.LineData, len(t.Rows))
	for i, r := range t.Rows {
		xLabels[i] = r.Level
		season1[i] = opts.LineData{Value: r.Season1}
		season2[i] = opts.LineData{Value: r.Season2}
	}

	line.SetXAxis(xLabels)
	line.AddSeries("Season 1", season1).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(cfg.Smooth)}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)
	line.AddSeries("Season 2", season2).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(cfg.Smooth)}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)
	return line
}

// NewScalingDeltaBar builds a bar chart of the relative season-over-
// season scaling difference per key level.
func NewScalingDeltaBar(deltas []mythic.ScalingDelta, cfg ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOptions(cfg), axisOptions(cfg)...)...)

	xLabels := make([]string, len(deltas))
	yData := make([]opts.BarData, len(deltas))
	for i, d := range deltas {
		xLabels[i] = d.Level
		color := gainColor
		if d.Relative < 0 {
			color = lossColor
		}
		yData[i] = opts.BarData{
			Value:     d.Relative,
			ItemStyle: &opts.ItemStyle{Color: color},
		}
	}

	bar.SetXAxis(xLabels).
		AddSeries("Difference", yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)
	return bar
}

// WriteHTML renders a chart or page to an HTML file.
func WriteHTML(r Renderable, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := r.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// OpenInBrowser opens the given file path in the default web browser.
func OpenInBrowser(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	return OpenURL(absPath)
}

// OpenURL opens the given URL in the default web browser.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
