package main

import (
	"movie-loader/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newImportCommand() *cobra.Command {
	var (
		file        string
		bucket      string
		strict      bool
		dedupeLinks bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Clear the store and load the movies CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			loadEnvFile()
			cfg := config.Load()
			log := setupLogger()

			flags := cmd.Flags()
			if flags.Changed("file") {
				cfg.Import.File = file
			}
			if flags.Changed("bucket") {
				cfg.Import.Bucket = bucket
			}
			if flags.Changed("strict") {
				cfg.Import.Strict = strict
			}
			if flags.Changed("dedupe-links") {
				cfg.Import.DedupeLinks = dedupeLinks
			}

			a, err := bootstrap(cfg, log)
			if err != nil {
				log.WithError(err).Error("Failed to start import")
				return err
			}
			defer a.close()

			if _, err := a.imports.Run(cmd.Context(), cfg.Import.File); err != nil {
				return err
			}

			stats, err := a.movies.GetStats(cmd.Context())
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"movies":          stats.Movies,
				"genres":          stats.Genres,
				"actors":          stats.Actors,
				"directors":       stats.Directors,
				"movie_genres":    stats.MovieGenres,
				"movie_actors":    stats.MovieActors,
				"movie_directors": stats.MovieDirectors,
			}).Info("Store contents after import")

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV path, or object key when a bucket is set (default $IMPORT_FILE)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "read the file from this MinIO/S3 bucket (default $IMPORT_BUCKET)")
	cmd.Flags().BoolVar(&strict, "strict", false, "abort the run on the first bad or failed record")
	cmd.Flags().BoolVar(&dedupeLinks, "dedupe-links", false, "collapse repeated genres and names within a record")

	return cmd
}
