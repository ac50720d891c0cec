package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-loader/internal/models"

	"gorm.io/gorm"
)

type MovieRepository interface {
	// Create inserts the movie and returns the identifier the store generated for it.
	Create(ctx context.Context, movie *models.Movie) (uint, error)
	FindByID(ctx context.Context, id uint) (*models.Movie, error)
	// FindIDByTitle returns the lowest id carrying title. Titles are not
	// unique, so this is ambiguous when the source repeats one.
	FindIDByTitle(ctx context.Context, title string) (uint, error)
	FindAll(ctx context.Context, page, limit int, title string) ([]models.Movie, int64, error)
	FindDetail(ctx context.Context, id uint) (*models.MovieDetail, error)
}

type movieRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) (uint, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	movie.ID = 0
	if err := r.db.WithContext(ctx).Create(movie).Error; err != nil {
		return 0, err
	}
	if movie.ID == 0 {
		return 0, fmt.Errorf("movie %q: store returned no identifier", movie.Title)
	}
	return movie.ID, nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uint) (*models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var movie models.Movie
	err := r.db.WithContext(ctx).First(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("movie %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) FindIDByTitle(ctx context.Context, title string) (uint, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Movie{}).
		Where("movie_title = ?", title).
		Order("movie_id").
		Limit(1).
		Pluck("movie_id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("movie %q: %w", title, ErrNotFound)
	}
	return ids[0], nil
}

func (r *movieRepository) FindAll(ctx context.Context, page, limit int, title string) ([]models.Movie, int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var movies []models.Movie
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Movie{})

	if title != "" {
		query = query.Where("movie_title = ?", title)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("movie_id").Offset(offset).Limit(limit).Find(&movies).Error; err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

func (r *movieRepository) FindDetail(ctx context.Context, id uint) (*models.MovieDetail, error) {
	movie, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	detail := &models.MovieDetail{Movie: *movie}
	db := r.db.WithContext(ctx)

	err = db.Model(&models.Genre{}).
		Joins("JOIN movie_genre ON movie_genre.genre_id = genre_ref.genre_id").
		Where("movie_genre.movie_id = ?", id).
		Order("genre_ref.genre_id").
		Find(&detail.Genres).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Actor{}).
		Joins("JOIN movie_actor ON movie_actor.actor_id = actor_ref.actor_id").
		Where("movie_actor.movie_id = ?", id).
		Order("actor_ref.actor_id").
		Find(&detail.Actors).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Director{}).
		Joins("JOIN movie_director ON movie_director.director_id = director_ref.director_id").
		Where("movie_director.movie_id = ?", id).
		Order("director_ref.director_id").
		Find(&detail.Directors).Error
	if err != nil {
		return nil, err
	}

	return detail, nil
}
