package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Collection holds the list/get/create/save/delete queries shared by every
// document table. Lookups return (nil, nil) when no row matches.
type Collection[T any] struct {
	db *gorm.DB
}

func NewCollection[T any](db *gorm.DB) *Collection[T] {
	return &Collection[T]{db: db}
}

// List returns every document, newest first
func (r *Collection[T]) List(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *Collection[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *Collection[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Save writes every column of an existing document
func (r *Collection[T]) Save(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes the document and reports whether it existed
func (r *Collection[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Singleton wraps a table that is expected to hold at most one row.
type Singleton[T any] struct {
	db *gorm.DB
}

func NewSingleton[T any](db *gorm.DB) *Singleton[T] {
	return &Singleton[T]{db: db}
}

// Get returns the oldest row, or nil if the table is empty
func (r *Singleton[T]) Get(ctx context.Context) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Save inserts the row when it has no ID yet, otherwise overwrites it
func (r *Singleton[T]) Save(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Save(item).Error
}
