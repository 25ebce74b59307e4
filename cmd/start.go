package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/feed"
	"catalog-sync/core/loader"
	"catalog-sync/core/logger"
	"catalog-sync/core/middleware"
	"catalog-sync/core/storage"
	"catalog-sync/core/store"

	"catalog-sync/feature/assets"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/synclog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "catalog-sync/docs/swagger"
)

// @title Catalog Sync API
// @version 1.0
// @description API for synchronizing and serving a property catalog.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Versioned store and feed clients
		storeClient, err := store.NewClient(cfg.Store)
		if err != nil {
			logg.Fatal("Failed to create store client", zap.Error(err))
		}
		feedCache := feed.NewCache(feed.NewClient(cfg.Feed), time.Duration(cfg.Feed.CacheTTLSeconds)*time.Second)

		// 4. Optional sync history database
		var syncRecorder *synclog.Service
		if cfg.Database.IsConfigured() {
			if db, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Sync history database unavailable, continuing without it", zap.Error(err))
			} else if svc, err := synclog.NewService(db, logg); err != nil {
				logg.Warn("Sync history disabled", zap.Error(err))
			} else {
				syncRecorder = svc
				logg.Info("Sync history enabled")
			}
		}

		// 5. Optional photo mirror
		var mirror *assets.Mirror
		if cfg.Storage.Endpoint != "" {
			if storageClient, err := storage.NewClient(cfg.Storage); err != nil {
				logg.Warn("Photo mirror unavailable, continuing without it", zap.Error(err))
			} else {
				mirror = assets.NewMirror(storageClient, cfg.Storage.Bucket, logg)
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				if err := mirror.EnsureBucket(ctx); err != nil {
					logg.Warn("Photo mirror bucket check failed", zap.Error(err))
					mirror = nil
				}
				cancel()
			}
		}

		// 6. Wire services. The asset committer and the catalog cross-reference
		// each other: photos are purged when a property is deleted, and
		// committed photos are bound to their property.
		committer := assets.NewCommitter(storeClient, cfg.Store.Ref, logg)
		repo := catalog.NewRepository(storeClient, cfg.Store.CatalogPath)

		var recorder catalog.SyncRecorder
		if syncRecorder != nil {
			recorder = syncRecorder
		}

		catalogService := catalog.NewService(repo, feedCache, logg, recorder, nil)
		assetService := assets.NewService(committer, catalogService, mirror, logg)
		catalogService.SetAssetRemover(assetService)

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             32 << 20,
		})

		// Middleware Registration
		// RayID must come first so every log line can be traced.
		app.Use(middleware.RayID())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth protects everything past this point.
		app.Use(middleware.Auth(cfg.Server.ApiKey))

		// 8. Load Features
		mgr := loader.NewManager(logg)
		mgr.Register(catalog.NewFeature(catalogService, cfg.Server.SyncToken))
		mgr.Register(assets.NewFeature(assetService, logg))
		mgr.Register(synclog.NewFeature(syncRecorder, logg))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
