// Package repository provides a generic gorm-backed store used by the
// service layer for simple row access. Aggregations stay in the services.
package repository

import (
	"context"
	"errors"

	"github.com/haroun39/facteur/pkg/db/pagination"
	"gorm.io/gorm"
)

// Option customizes a query before it runs.
type Option func(*gorm.DB) *gorm.DB

// WithPagination applies limit/offset paging.
func WithPagination(p pagination.Pagination) Option {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(p.Limit()).Offset(p.Offset())
	}
}

// WithOrder applies an ORDER BY clause.
func WithOrder(order string) Option {
	return func(tx *gorm.DB) *gorm.DB {
		if order == "" {
			return tx
		}
		return tx.Order(order)
	}
}

// Repository is a typed store over a single table.
type Repository[T any] struct {
	db *gorm.DB
}

// ProvideStore builds a Repository for the model type T.
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return Repository[T]{db: db}
}

// Create inserts a record.
func (r Repository[T]) Create(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// CreateTx inserts a record inside an existing transaction.
func (r Repository[T]) CreateTx(ctx context.Context, tx *gorm.DB, record *T) error {
	return tx.WithContext(ctx).Create(record).Error
}

// Find returns records matching the filter.
func (r Repository[T]) Find(ctx context.Context, filter map[string]any, opts ...Option) ([]T, error) {
	tx := r.db.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		tx = tx.Where(filter)
	}
	for _, opt := range opts {
		tx = opt(tx)
	}
	var records []T
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindOne returns the first record matching the filter, or nil.
func (r Repository[T]) FindOne(ctx context.Context, filter map[string]any) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).Where(filter).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Count returns the number of records matching the filter.
func (r Repository[T]) Count(ctx context.Context, filter map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		tx = tx.Where(filter)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Updates applies a column map to records matching the filter.
func (r Repository[T]) Updates(ctx context.Context, filter map[string]any, values map[string]any) error {
	return r.db.WithContext(ctx).Model(new(T)).Where(filter).Updates(values).Error
}

// Delete removes records matching the filter.
func (r Repository[T]) Delete(ctx context.Context, filter map[string]any) error {
	return r.db.WithContext(ctx).Where(filter).Delete(new(T)).Error
}

// DeleteTx removes records matching the filter inside a transaction.
func (r Repository[T]) DeleteTx(ctx context.Context, tx *gorm.DB, filter map[string]any) error {
	return tx.WithContext(ctx).Where(filter).Delete(new(T)).Error
}
