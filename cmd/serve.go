package main

import (
	"context"
	"time"

	_ "movie-loader/docs"
	"movie-loader/internal/config"
	"movie-loader/internal/database"
	"movie-loader/internal/handlers"
	"movie-loader/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the import admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			loadEnvFile()
			cfg := config.Load()
			log := setupLogger()

			a, err := bootstrap(cfg, log)
			if err != nil {
				log.WithError(err).Error("Failed to start server")
				return err
			}
			defer a.close()

			if a.minio != nil {
				if err := a.minio.EnsureBucket(cmd.Context()); err != nil {
					log.WithError(err).Warn("Failed to configure bucket, but continuing...")
				}
			}

			srv := newServer(a)

			go gracefulShutdown(cmd.Context(), srv, log)

			log.Infof("Movie loader API starting on port %s", cfg.Server.Port)
			return srv.Listen(":" + cfg.Server.Port)
		},
	}
}

func newServer(a *app) *fiber.App {
	srv := fiber.New(fiber.Config{
		AppName:      "Movie Loader API",
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: customErrorHandler(a.log),
	})

	setupMiddleware(srv)

	srv.Get("/health", healthCheckHandler(a.db))
	srv.Get("/swagger/*", fiberSwagger.WrapHandler)

	// A nil *MinIOService must not end up as a non-nil Presigner.
	var presigner handlers.Presigner
	if a.minio != nil {
		presigner = a.minio
	}

	importHandler := handlers.NewImportHandler(a.imports, presigner, a.log)
	movieHandler := handlers.NewMovieHandler(a.movies, a.log)
	routes.Setup(srv, movieHandler, importHandler)

	return srv
}

func setupMiddleware(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
		MaxAge:       86400,
	}))
}

func healthCheckHandler(db *database.Database) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "healthy"
		if err := db.HealthCheck(c.UserContext()); err != nil {
			dbStatus = "unhealthy"
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "movie-loader",
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		}).Error("Request error")

		return c.Status(code).JSON(fiber.Map{
			"status":  "error",
			"code":    code,
			"message": err.Error(),
		})
	}
}

// gracefulShutdown stops the server once ctx is cancelled by SIGINT or SIGTERM.
func gracefulShutdown(ctx context.Context, app *fiber.App, log *logrus.Logger) {
	<-ctx.Done()

	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	log.Info("Server shutdown complete")
}
