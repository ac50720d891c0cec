package repository

import (
	"context"
	"fmt"
	"time"

	"movie-loader/internal/models"

	"gorm.io/gorm"
)

// PersonRepository resolves actor_ref and director_ref rows by name.
type PersonRepository interface {
	Exists(ctx context.Context, name models.PersonName) (bool, error)
	EnsureExists(ctx context.Context, name models.PersonName) (bool, error)
	Lookup(ctx context.Context, name models.PersonName) (Resolution, error)
	ResolveID(ctx context.Context, name models.PersonName) (uint, error)
}

type personRepository struct {
	db       *gorm.DB
	timeout  time.Duration
	kind     string
	model    interface{}
	idColumn string
	newRow   func(models.PersonName) interface{}
}

func newActorRepository(db *gorm.DB, timeout time.Duration) PersonRepository {
	return &personRepository{
		db:       db,
		timeout:  timeout,
		kind:     "actor",
		model:    &models.Actor{},
		idColumn: "actor_id",
		newRow: func(name models.PersonName) interface{} {
			return &models.Actor{PersonName: name}
		},
	}
}

func newDirectorRepository(db *gorm.DB, timeout time.Duration) PersonRepository {
	return &personRepository{
		db:       db,
		timeout:  timeout,
		kind:     "director",
		model:    &models.Director{},
		idColumn: "director_id",
		newRow: func(name models.PersonName) interface{} {
			return &models.Director{PersonName: name}
		},
	}
}

// byName matches the full natural key. A missing middle name only matches
// rows that have none.
func byName(db *gorm.DB, name models.PersonName) *gorm.DB {
	db = db.Where("first_name = ? AND last_name = ?", name.FirstName, name.LastName)
	if name.MiddleName == nil {
		return db.Where("middle_name IS NULL")
	}
	return db.Where("middle_name = ?", *name.MiddleName)
}

func (r *personRepository) Exists(ctx context.Context, name models.PersonName) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	if err := byName(r.db.WithContext(ctx).Model(r.model), name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *personRepository) EnsureExists(ctx context.Context, name models.PersonName) (bool, error) {
	exists, err := r.Exists(ctx, name)
	if err != nil || exists {
		return false, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(r.newRow(name)).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *personRepository) Lookup(ctx context.Context, name models.PersonName) (Resolution, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var ids []uint
	err := byName(r.db.WithContext(ctx).Model(r.model), name).
		Order(r.idColumn).
		Limit(1).
		Pluck(r.idColumn, &ids).Error
	if err != nil {
		return Resolution{}, err
	}
	return resolution(ids), nil
}

func (r *personRepository) ResolveID(ctx context.Context, name models.PersonName) (uint, error) {
	res, err := r.Lookup(ctx, name)
	if err != nil {
		return 0, err
	}
	if !res.Found {
		return 0, fmt.Errorf("%s %q: %w", r.kind, name.String(), ErrNotFound)
	}
	return res.ID, nil
}
