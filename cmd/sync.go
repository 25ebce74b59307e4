package cmd

import (
	"context"
	"log"
	"time"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/feed"
	"catalog-sync/core/logger"
	"catalog-sync/core/store"

	"catalog-sync/feature/catalog"
	"catalog-sync/feature/synclog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncMode string

// syncCmd runs one catalog synchronization from the command line, for cron
// jobs and operators who do not want to go through the HTTP endpoint.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one catalog synchronization",
	Long: `Fetches the external feed, reconciles it against the stored catalog,
and commits the result. Exits non-zero if the sync fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		storeClient, err := store.NewClient(cfg.Store)
		if err != nil {
			return err
		}
		feedCache := feed.NewCache(feed.NewClient(cfg.Feed), time.Duration(cfg.Feed.CacheTTLSeconds)*time.Second)

		var recorder catalog.SyncRecorder
		if cfg.Database.IsConfigured() {
			if db, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Sync history database unavailable, run will not be recorded", zap.Error(err))
			} else if svc, err := synclog.NewService(db, logg); err != nil {
				logg.Warn("Sync history unavailable", zap.Error(err))
			} else {
				recorder = svc
			}
		}

		repo := catalog.NewRepository(storeClient, cfg.Store.CatalogPath)
		service := catalog.NewService(repo, feedCache, logg, recorder, nil)

		report, err := service.Sync(context.Background(), catalog.Mode(syncMode))
		if err != nil {
			return err
		}

		logg.Info("Sync finished",
			zap.String("mode", report.Mode),
			zap.Int("total", report.Total),
			zap.Int("added", report.Stats.Added),
			zap.Int("updated", report.Stats.Updated),
			zap.Int("removed", report.Stats.Removed),
			zap.Int("feed_records", report.Stats.TotalFeedRecords),
		)
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncMode, "mode", string(catalog.ModeMerge), "sync mode (merge or replace)")
	RootCmd.AddCommand(syncCmd)
}
