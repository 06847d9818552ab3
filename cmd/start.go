package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dataset-reconciler/core/config"
	"dataset-reconciler/core/database"
	"dataset-reconciler/core/loader"
	"dataset-reconciler/core/logger"
	"dataset-reconciler/core/middleware/auth"
	"dataset-reconciler/core/middleware/rayid"
	"dataset-reconciler/core/profile"
	"dataset-reconciler/core/source"
	"dataset-reconciler/core/storage"

	"dataset-reconciler/feature/compare"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "dataset-reconciler/docs/swagger"
)

// @title Dataset Reconciler API
// @version 1.0
// @description API for comparing two versions of a dataset by a composite key.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(envDir)
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

		// 3. Connect to Database (Optional, only db: references need it)
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, db: references are disabled", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to dataset database", zap.String("driver", cfg.Database.Driver))
		}

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 5. Sources and Profiles
		resolver := source.NewResolver(cfg.Source, store, db, cfg.Database.MaxRows, logg)
		defer resolver.Close()

		profiles, err := profile.LoadDir(cfg.Profiles.Dir)
		if err != nil {
			logg.Fatal("Failed to load profiles", zap.Error(err))
		}
		logg.Info("Profiles loaded", zap.Int("count", profiles.Len()), zap.String("dir", cfg.Profiles.Dir))

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
			ReadTimeout:           time.Duration(cfg.Server.ReadTimeout()) * time.Second,
		})

		// 7. Register Features
		mgr := loader.NewManager(logg)
		mgr.Register(compare.NewFeature(resolver, profiles, compare.Config{
			DefaultAlignment: cfg.DefaultAlignment(),
			Bucket:           cfg.Storage.Bucket,
		}, logg))

		// Middleware: RayID first so every log line can be traced.
		app.Use(rayid.New())

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

		// Public routes
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "database": db != nil})
		})

		// Everything registered after this point requires the API key.
		if !cfg.Server.AuthEnabled() {
			logg.Warn("SERVER_API_KEY is empty, API authentication is disabled")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port), zap.Strings("features", loaded))
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
