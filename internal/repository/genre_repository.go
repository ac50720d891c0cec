package repository

import (
	"context"
	"fmt"
	"time"

	"movie-loader/internal/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	Exists(ctx context.Context, label string) (bool, error)
	EnsureExists(ctx context.Context, label string) (bool, error)
	Lookup(ctx context.Context, label string) (Resolution, error)
	ResolveID(ctx context.Context, label string) (uint, error)
}

type genreRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func (r *genreRepository) Exists(ctx context.Context, label string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Genre{}).Where("genre = ?", label).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnsureExists inserts label unless a row already carries it. The returned
// bool reports whether a row was created.
func (r *genreRepository) EnsureExists(ctx context.Context, label string) (bool, error) {
	exists, err := r.Exists(ctx, label)
	if err != nil || exists {
		return false, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(&models.Genre{Label: label}).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *genreRepository) Lookup(ctx context.Context, label string) (Resolution, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Genre{}).
		Where("genre = ?", label).
		Order("genre_id").
		Limit(1).
		Pluck("genre_id", &ids).Error
	if err != nil {
		return Resolution{}, err
	}
	return resolution(ids), nil
}

func (r *genreRepository) ResolveID(ctx context.Context, label string) (uint, error) {
	res, err := r.Lookup(ctx, label)
	if err != nil {
		return 0, err
	}
	if !res.Found {
		return 0, fmt.Errorf("genre %q: %w", label, ErrNotFound)
	}
	return res.ID, nil
}
