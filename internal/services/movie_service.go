package services

import (
	"context"

	"movie-loader/internal/models"
	"movie-loader/internal/repository"

	"github.com/sirupsen/logrus"
)

// MovieService exposes read access to the loaded data.
type MovieService interface {
	GetAllMovies(ctx context.Context, page, limit int, title string) ([]models.Movie, int64, error)
	GetMovieByID(ctx context.Context, id uint) (*models.MovieDetail, error)
	GetMovieIDByTitle(ctx context.Context, title string) (uint, error)
	GetStats(ctx context.Context) (*models.TableStats, error)
}

type movieService struct {
	repos  *repository.Repositories
	logger *logrus.Logger
}

func NewMovieService(repos *repository.Repositories, logger *logrus.Logger) MovieService {
	return &movieService{
		repos:  repos,
		logger: logger,
	}
}

// GetAllMovies expects page and limit already normalised by the caller.
func (s *movieService) GetAllMovies(ctx context.Context, page, limit int, title string) ([]models.Movie, int64, error) {
	movies, total, err := s.repos.Movies.FindAll(ctx, page, limit, title)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{"page": page, "limit": limit}).Error("Failed to list movies")
		return nil, 0, err
	}
	return movies, total, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, id uint) (*models.MovieDetail, error) {
	return s.repos.Movies.FindDetail(ctx, id)
}

func (s *movieService) GetMovieIDByTitle(ctx context.Context, title string) (uint, error) {
	return s.repos.Movies.FindIDByTitle(ctx, title)
}

func (s *movieService) GetStats(ctx context.Context) (*models.TableStats, error) {
	stats, err := s.repos.Stats(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to count table rows")
		return nil, err
	}
	return stats, nil
}
