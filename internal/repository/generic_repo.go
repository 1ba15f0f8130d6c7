package repository

import (
	"context"
	"errors"

	"github.com/hr-records-api/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var clausePrimaryKey = clause.OrderByColumn{
	Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey},
}

// gormRepo is the gorm-backed implementation of Repository
type gormRepo[T any] struct {
	db *gorm.DB
}

// NewRepo creates a repository for entity type T
func NewRepo[T any](db *database.DB) Repository[T] {
	return newGormRepo[T](db.Gorm)
}

func newGormRepo[T any](db *gorm.DB) *gormRepo[T] {
	return &gormRepo[T]{db: db}
}

// GetByID retrieves an entity by primary key, nil when absent
func (r *gormRepo[T]) GetByID(ctx context.Context, id any) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetAll retrieves every entity ordered by primary key
func (r *gormRepo[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	err := r.db.WithContext(ctx).Order(clausePrimaryKey).Find(&out).Error
	return out, err
}

// Find retrieves the entities matching the predicate
func (r *gormRepo[T]) Find(ctx context.Context, query string, args ...any) ([]T, error) {
	var out []T
	err := r.db.WithContext(ctx).Where(query, args...).Find(&out).Error
	return out, err
}

// Add inserts a new entity
func (r *gormRepo[T]) Add(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// Update writes every column of the entity
func (r *gormRepo[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete removes the entity by primary key
func (r *gormRepo[T]) Delete(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Delete(entity).Error
}

// Exists reports whether any entity matches the predicate
func (r *gormRepo[T]) Exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Where(query, args...).Limit(1).Count(&count).Error
	return count > 0, err
}

// Count returns the total number of entities
func (r *gormRepo[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&count).Error
	return count, err
}
