package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"movie-loader/internal/config"
	"movie-loader/internal/database"
	"movie-loader/internal/repository"
	"movie-loader/internal/services"
	"movie-loader/internal/source"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var debug bool

// @title Movie Loader API
// @version 1.0
// @description Admin API for reloading the movie catalogue from CSV and browsing the loaded data

// @host localhost:8010
// @BasePath /api/v1
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "movie-loader",
		Short: "Load a movies CSV file into the normalized movies schema",
		Long: `movie-loader reads a flat movies CSV (title, description, year, cast, crew,
genres, ratings) and reloads it into the movies, *_ref and join tables,
deduplicating genres, actors and directors across rows.

Every run starts by clearing the store, so the tables always mirror the
latest file.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(newImportCommand())
	root.AddCommand(newServeCommand())

	return root
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if debug || os.Getenv("GO_ENV") == "dev" || os.Getenv("GO_ENV") == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

// app holds everything a command needs once the store is reachable.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	db      *database.Database
	repos   *repository.Repositories
	minio   *services.MinIOService
	imports services.ImportService
	movies  services.MovieService
}

func bootstrap(cfg *config.Config, log *logrus.Logger) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:   cfg,
		log:   log,
		db:    db,
		repos: repository.NewRepositories(db),
	}

	var opener source.Opener = source.FileOpener{}
	if cfg.UsesObjectStorage() {
		a.minio, err = services.NewMinIOService(cfg.MinIO, cfg.Import.Bucket, log)
		if err != nil {
			a.close()
			return nil, err
		}
		opener = a.minio
	}

	a.imports = services.NewImportService(a.repos, opener, cfg.Import, log)
	a.movies = services.NewMovieService(a.repos, log)

	return a, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.log.Errorf("Error closing database connection: %v", err)
	}
}

func loadEnvFile() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stdout)

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "dev"
	}

	execDir, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not get working directory: %v", err)
		return
	}

	envFile := filepath.Join(execDir, "envs", ".env."+env)
	if err := godotenv.Load(envFile); err == nil {
		log.Infof("Environment loaded from file %s", envFile)
		return
	}

	defaultEnvFile := filepath.Join(execDir, ".env")
	if err := godotenv.Load(defaultEnvFile); err != nil {
		log.Debugf("No environment file found, using process environment: %v", err)
		return
	}
	log.Infof("Environment loaded from default file %s", defaultEnvFile)
}
