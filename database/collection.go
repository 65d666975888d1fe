package database

import (
	"context"

	"gorm.io/gorm"
)

// Collection is a document-style accessor over one table. Every method takes
// the request context so cancelled requests stop their queries.
type Collection[T any] struct {
	db *gorm.DB
}

func NewCollection[T any](db *gorm.DB) *Collection[T] {
	return &Collection[T]{db}
}

func (c *Collection[T]) query(ctx context.Context, filter Filter) *gorm.DB {
	return filter.apply(c.db.WithContext(ctx).Model(new(T)))
}

// Find returns every document matching filter, ordered and paginated by opts.
func (c *Collection[T]) Find(ctx context.Context, filter Filter, opts FindOptions) ([]T, error) {
	docs := make([]T, 0)
	err := opts.apply(c.query(ctx, filter)).Find(&docs).Error
	return docs, err
}

// FindOne returns the first document matching filter or gorm.ErrRecordNotFound.
func (c *Collection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var doc T
	if err := c.query(ctx, filter).Take(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Exists reports whether any document matches filter.
func (c *Collection[T]) Exists(ctx context.Context, filter Filter) (bool, error) {
	var docs []T
	if err := c.query(ctx, filter).Limit(1).Find(&docs).Error; err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

// Insert persists a new document.
func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	return c.db.WithContext(ctx).Create(doc).Error
}

// Update applies patch to every document matching filter and returns the
// number of rows the database reports as affected.
func (c *Collection[T]) Update(ctx context.Context, filter Filter, patch Patch) (int64, error) {
	result := c.query(ctx, filter).Updates(map[string]any(patch))
	return result.RowsAffected, result.Error
}

// Increment adds by to a numeric column without touching updated_at.
func (c *Collection[T]) Increment(ctx context.Context, filter Filter, column string, by int) (int64, error) {
	result := c.query(ctx, filter).UpdateColumn(column, gorm.Expr(c.db.Statement.Quote(column)+" + ?", by))
	return result.RowsAffected, result.Error
}

// Delete removes every document matching filter and returns how many went.
func (c *Collection[T]) Delete(ctx context.Context, filter Filter) (int64, error) {
	result := filter.apply(c.db.WithContext(ctx)).Delete(new(T))
	return result.RowsAffected, result.Error
}

// Count returns the number of documents matching filter.
func (c *Collection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	var n int64
	err := c.query(ctx, filter).Count(&n).Error
	return n, err
}
