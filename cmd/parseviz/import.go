package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the CSV directory into the snapshot database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Storage.Path == "" {
			return fmt.Errorf("import requires a storage path in the configuration")
		}

		collection, loadErrs := loadRaids(cfg)
		if collection.Len() == 0 {
			return fmt.Errorf("no raid data found in %s", cfg.Data.RaidDir)
		}

		dbCfg := storage.DefaultConfig(cfg.Storage.Path)
		dbCfg.AutoMigrate = true
		db, err := storage.Open(dbCfg)
		if err != nil {
			return fmt.Errorf("open snapshot database: %w", err)
		}
		defer db.Close()

		if err := storage.NewService(db).SaveCollection(cmd.Context(), collection); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}

		fmt.Printf("Imported %d raids into %s", collection.Len(), cfg.Storage.Path)
		if len(loadErrs) > 0 {
			fmt.Printf(" (%d files skipped)", len(loadErrs))
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
