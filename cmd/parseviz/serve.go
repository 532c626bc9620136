package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/api"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/storage"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard and REST API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Server.Port = port
		}
		if open, _ := cmd.Flags().GetBool("open"); open {
			cfg.Server.OpenBrowser = true
		}

		fromDB, _ := cmd.Flags().GetBool("from-db")

		var (
			collection *raids.Collection
			loadErrs   []error
		)
		if fromDB {
			if cfg.Storage.Path == "" {
				return fmt.Errorf("--from-db requires a storage path in the configuration")
			}
			dbCfg := storage.DefaultConfig(cfg.Storage.Path)
			dbCfg.AutoMigrate = cfg.Storage.AutoMigrate
			db, err := storage.Open(dbCfg)
			if err != nil {
				return fmt.Errorf("open snapshot database: %w", err)
			}
			defer db.Close()
			collection, err = storage.NewService(db).LoadCollection(cmd.Context(), cfg.RaidOrder())
			if err != nil {
				return fmt.Errorf("load snapshot: %w", err)
			}
		} else {
			collection, loadErrs = loadRaids(cfg)
		}
		if collection.Len() == 0 {
			log.Printf("Warning: no raid data found in %s", cfg.Data.RaidDir)
		}

		store := raids.NewStore(collection, loadErrs)

		server := api.NewServer(&api.Config{
			Port:           cfg.Server.Port,
			OpenBrowser:    cfg.Server.OpenBrowser,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RateLimitRPS:   cfg.Server.RateLimitRPS,
			RateLimitBurst: cfg.Server.RateLimitBurst,
		}, store, loadMythic(cfg), chartConfig(cfg))

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Watching only makes sense when serving from the CSV directory.
		if cfg.Data.Watch && !fromDB {
			watcher := watch.New(watch.Config{
				Dir:        cfg.Data.RaidDir,
				FilePrefix: cfg.Data.FilePrefix,
				Order:      cfg.RaidOrder(),
			}, store, nil)
			go func() {
				if err := watcher.Run(ctx); err != nil && err != context.Canceled {
					log.Printf("File watcher stopped: %v", err)
				}
			}()
		}

		if err := server.Start(); err != nil {
			return fmt.Errorf("start server: %w", err)
		}

		fmt.Printf("Dashboard running at http://localhost:%d/dashboard/overview\n", server.Port())
		fmt.Println("Press Ctrl+C to stop")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		fmt.Println()
		fmt.Println("Shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("port", 0, "Listen port (overrides configuration)")
	serveCmd.Flags().Bool("open", false, "Open the dashboard in a browser")
	serveCmd.Flags().Bool("from-db", false, "Serve the stored snapshot instead of the CSV directory")
}
