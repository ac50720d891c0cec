package repository

import (
	"context"
	"fmt"
	"time"

	"movie-loader/internal/models"

	"gorm.io/gorm"
)

// LinkRepository writes join rows. It performs no existence or uniqueness
// checks; callers pass identifiers they have already resolved.
type LinkRepository interface {
	CreateGenreLink(ctx context.Context, movieID, genreID uint) error
	CreateActorLink(ctx context.Context, movieID, actorID uint) error
	CreateDirectorLink(ctx context.Context, movieID, directorID uint) error
}

type linkRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func (r *linkRepository) CreateGenreLink(ctx context.Context, movieID, genreID uint) error {
	if movieID == 0 || genreID == 0 {
		return fmt.Errorf("movie_genre (%d, %d): %w", movieID, genreID, ErrInvalidLink)
	}
	return r.create(ctx, &models.MovieGenre{MovieID: movieID, GenreID: genreID})
}

func (r *linkRepository) CreateActorLink(ctx context.Context, movieID, actorID uint) error {
	if movieID == 0 || actorID == 0 {
		return fmt.Errorf("movie_actor (%d, %d): %w", movieID, actorID, ErrInvalidLink)
	}
	return r.create(ctx, &models.MovieActor{MovieID: movieID, ActorID: actorID})
}

func (r *linkRepository) CreateDirectorLink(ctx context.Context, movieID, directorID uint) error {
	if movieID == 0 || directorID == 0 {
		return fmt.Errorf("movie_director (%d, %d): %w", movieID, directorID, ErrInvalidLink)
	}
	return r.create(ctx, &models.MovieDirector{MovieID: movieID, DirectorID: directorID})
}

func (r *linkRepository) create(ctx context.Context, row interface{}) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return r.db.WithContext(ctx).Create(row).Error
}
