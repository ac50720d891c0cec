package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-loader/internal/database"
	"movie-loader/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidLink = errors.New("invalid link: unresolved identifier")
)

// Resolution is the outcome of a natural-key lookup.
type Resolution struct {
	ID    uint
	Found bool
}

// Repositories bundles every table accessor over one handle. Inside
// Transaction the handle is the transaction itself.
type Repositories struct {
	db      *gorm.DB
	timeout time.Duration

	Movies    MovieRepository
	Genres    GenreRepository
	Actors    PersonRepository
	Directors PersonRepository
	Links     LinkRepository
}

func NewRepositories(db *database.Database) *Repositories {
	return newRepositories(db.DB, db.GetQueryTimeout())
}

func newRepositories(db *gorm.DB, timeout time.Duration) *Repositories {
	return &Repositories{
		db:        db,
		timeout:   timeout,
		Movies:    &movieRepository{db: db, timeout: timeout},
		Genres:    &genreRepository{db: db, timeout: timeout},
		Actors:    newActorRepository(db, timeout),
		Directors: newDirectorRepository(db, timeout),
		Links:     &linkRepository{db: db, timeout: timeout},
	}
}

// Transaction runs fn against repositories bound to a single transaction,
// committing when fn returns nil and rolling back otherwise.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx, r.timeout))
	})
}

// Reset deletes every loaded row, join tables before the tables they
// reference, and returns the number of rows removed.
func (r *Repositories) Reset(ctx context.Context) (int64, error) {
	tables := []interface{}{
		&models.MovieActor{},
		&models.MovieGenre{},
		&models.MovieDirector{},
		&models.Actor{},
		&models.Genre{},
		&models.Director{},
		&models.Movie{},
	}

	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, table := range tables {
			result := all.Delete(table)
			if result.Error != nil {
				return fmt.Errorf("clear %T: %w", table, result.Error)
			}
			deleted += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *Repositories) Stats(ctx context.Context) (*models.TableStats, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var stats models.TableStats
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Movie{}, &stats.Movies},
		{&models.Genre{}, &stats.Genres},
		{&models.Actor{}, &stats.Actors},
		{&models.Director{}, &stats.Directors},
		{&models.MovieGenre{}, &stats.MovieGenres},
		{&models.MovieActor{}, &stats.MovieActors},
		{&models.MovieDirector{}, &stats.MovieDirectors},
	}

	db := r.db.WithContext(ctx)
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func resolution(ids []uint) Resolution {
	if len(ids) == 0 {
		return Resolution{}
	}
	return Resolution{ID: ids[0], Found: true}
}
