package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/charts"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/config"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/dashboard"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render dashboard pages to static HTML files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		outDir, _ := cmd.Flags().GetString("out")
		viewName, _ := cmd.Flags().GetString("view")
		class, _ := cmd.Flags().GetString("class")
		raidName, _ := cmd.Flags().GetString("raid")
		compareWith, _ := cmd.Flags().GetString("compare-with")
		exclude, _ := cmd.Flags().GetStringSlice("exclude")
		open, _ := cmd.Flags().GetBool("open")

		collection, _ := loadRaids(cfg)
		if collection.Len() == 0 {
			return fmt.Errorf("no raid data found in %s", cfg.Data.RaidDir)
		}
		cc := chartConfig(cfg)

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}

		views := []dashboard.View{dashboard.ViewOverview, dashboard.ViewClass, dashboard.ViewRaid, dashboard.ViewMythic}
		if viewName != "all" {
			view, err := dashboard.ParseView(viewName)
			if err != nil {
				return err
			}
			views = []dashboard.View{view}
		}

		var rendered []string
		for _, view := range views {
			path := filepath.Join(outDir, string(view)+".html")
			err := renderView(path, view, collection, cfg, renderOptions{
				class:       class,
				raid:        raidName,
				compareWith: compareWith,
				exclude:     exclude,
				chartCfg:    cc,
			})
			if err != nil {
				// "all" renders what it can; a single view must succeed.
				if viewName != "all" {
					return err
				}
				fmt.Printf("Skipping %s view: %v\n", view, err)
				continue
			}
			fmt.Printf("Rendered %s\n", path)
			rendered = append(rendered, path)
		}
		if len(rendered) == 0 {
			return fmt.Errorf("no views rendered")
		}

		if open {
			return charts.OpenInBrowser(rendered[0])
		}
		return nil
	},
}

type renderOptions struct {
	class       string
	raid        string
	compareWith string
	exclude     []string
	chartCfg    charts.ChartConfig
}

func renderView(path string, view dashboard.View, c *raids.Collection, cfg *config.Config, o renderOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch view {
	case dashboard.ViewOverview:
		return dashboard.RenderOverview(f, c, o.exclude, o.chartCfg)
	case dashboard.ViewClass:
		if o.class == "" {
			return fmt.Errorf("the class view needs --class")
		}
		return dashboard.RenderClassAnalysis(f, c, o.class, o.exclude, "", o.chartCfg)
	case dashboard.ViewRaid:
		raid := o.raid
		if raid == "" {
			latest, err := c.Latest()
			if err != nil {
				return err
			}
			raid = latest.Name
		}
		return dashboard.RenderRaid(f, c, raid, o.compareWith, o.chartCfg)
	case dashboard.ViewMythic:
		data := loadMythic(cfg)
		if data == nil {
			return fmt.Errorf("no mythic+ scaling data in %s", cfg.Data.MythicDir)
		}
		return dashboard.RenderMythic(f, data, o.chartCfg)
	}
	return fmt.Errorf("unknown view %q", view)
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("out", "output", "Output directory for HTML files")
	renderCmd.Flags().String("view", "all", "View to render: overview, class, raid, mythic or all")
	renderCmd.Flags().String("class", "", "Class for the class view")
	renderCmd.Flags().String("raid", "", "Raid for the raid view (default: latest)")
	renderCmd.Flags().String("compare-with", "", "Second raid for the raid view comparison")
	renderCmd.Flags().StringSlice("exclude", nil, "Raids to exclude from trend views")
	renderCmd.Flags().Bool("open", false, "Open the first rendered file in a browser")
}
