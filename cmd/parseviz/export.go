package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a participation report as an XLSX workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		exclude, _ := cmd.Flags().GetStringSlice("exclude")

		collection, _ := loadRaids(cfg)
		if collection.Len() == 0 {
			return fmt.Errorf("no raid data found in %s", cfg.Data.RaidDir)
		}

		if err := export.ReportXLSX(out, collection, exclude); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		fmt.Printf("Exported report to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("out", "parse_report.xlsx", "Output workbook path")
	exportCmd.Flags().StringSlice("exclude", nil, "Raids to exclude from the trend sheets")
}
