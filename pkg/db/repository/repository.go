package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Predicate narrows a query. It is applied as a gorm scope so the filter
// runs in the store.
type Predicate func(*gorm.DB) *gorm.DB

func Where(query any, args ...any) Predicate {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// Repository exposes the common operations over one entity type. Reads go
// straight to the store; writes are staged on the Session until SaveChanges.
type Repository[T any] struct {
	session *Session
}

func For[T any](s *Session) *Repository[T] {
	return &Repository[T]{session: s}
}

func (r *Repository[T]) Session() *Session {
	return r.session
}

// Query starts a read against T's table for callers that need more than
// the generic operations.
func (r *Repository[T]) Query(ctx context.Context) *gorm.DB {
	return r.session.db.WithContext(ctx).Model(new(T))
}

func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	var items []T
	err := r.session.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.PrimaryColumn}).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID returns nil without an error when no row has the given key.
func (r *Repository[T]) GetByID(ctx context.Context, id any) (*T, error) {
	var item T
	err := r.session.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.PrimaryColumn, Value: id}).
		Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository[T]) Find(ctx context.Context, predicates ...Predicate) ([]T, error) {
	var items []T
	err := r.session.db.WithContext(ctx).
		Scopes(scopes(predicates)...).
		Order(clause.OrderByColumn{Column: clause.PrimaryColumn}).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository[T]) Count(ctx context.Context, predicates ...Predicate) (int64, error) {
	var n int64
	err := r.Query(ctx).Scopes(scopes(predicates)...).Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repository[T]) Add(entity *T) {
	r.session.stage(changeAdd, entity)
}

func (r *Repository[T]) Update(entity *T) {
	r.session.stage(changeUpdate, entity)
}

func (r *Repository[T]) Remove(entity *T) {
	r.session.stage(changeRemove, entity)
}

func (r *Repository[T]) SaveChanges(ctx context.Context) (int64, error) {
	return r.session.SaveChanges(ctx)
}

func scopes(predicates []Predicate) []func(*gorm.DB) *gorm.DB {
	out := make([]func(*gorm.DB) *gorm.DB, 0, len(predicates))
	for _, p := range predicates {
		if p == nil {
			continue
		}
		out = append(out, p)
	}
	return out
}
