package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	RunE: func(_ *cobra.Command, _ []string) error {
		path := cfgFile
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				return err
			}
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default configuration to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("Raid CSV directory:  %s\n", cfg.Data.RaidDir)
		fmt.Printf("File prefix:         %s\n", cfg.Data.FilePrefix)
		fmt.Printf("Mythic+ directory:   %s\n", cfg.Data.MythicDir)
		fmt.Printf("Watch for changes:   %v\n", cfg.Data.Watch)
		fmt.Printf("Server port:         %d\n", cfg.Server.Port)
		fmt.Printf("Snapshot database:   %s\n", cfg.Storage.Path)
		fmt.Printf("Chart theme:         %s\n", cfg.Charts.Theme)
		fmt.Printf("Raid order (%d raids):\n", len(cfg.RaidOrder()))
		for _, name := range cfg.RaidOrder() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
