package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/charts"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/config"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/mythic"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "parseviz",
	Short: "Raid participation analytics from Warcraft Logs parse counts",
	Long: `parseviz turns per-raid parse count CSV exports into participation
percentages, cross-raid trends and interactive dashboards.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.parseviz/config.toml)")
}

// loadConfig loads and validates the configuration file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// chartConfig builds the chart defaults from the configuration.
func chartConfig(cfg *config.Config) charts.ChartConfig {
	cc := charts.DefaultChartConfig()
	if cfg.Charts.Theme != "" {
		cc.Theme = cfg.Charts.Theme
	}
	if cfg.Charts.Width != "" {
		cc.Width = cfg.Charts.Width
	}
	if cfg.Charts.Height != "" {
		cc.Height = cfg.Charts.Height
	}
	return cc
}

// loadRaids loads the raid collection from the configured CSV directory,
// logging per-file problems without failing the whole load.
func loadRaids(cfg *config.Config) (*raids.Collection, []error) {
	c, loadErrs := raids.LoadCollection(cfg.Data.RaidDir, cfg.Data.FilePrefix, cfg.RaidOrder())
	for _, err := range loadErrs {
		log.Printf("Skipping raid file: %v", err)
	}
	return c, loadErrs
}

// loadMythic loads the M+ scaling data when configured. A missing
// directory is not an error; the dashboard simply has no mythic view.
func loadMythic(cfg *config.Config) *mythic.SeasonData {
	if cfg.Data.MythicDir == "" {
		return nil
	}
	data, err := mythic.LoadSeasonData(cfg.Data.MythicDir)
	if err != nil {
		log.Printf("Mythic+ scaling data unavailable: %v", err)
		return nil
	}
	return data
}
