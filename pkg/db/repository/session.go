package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/railzwaylabs/backoffice/pkg/db/retry"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoRowsAffected is returned by callers when a commit reports that
// nothing was written.
var ErrNoRowsAffected = errors.New("no_rows_affected")

type changeKind int

const (
	changeAdd changeKind = iota
	changeUpdate
	changeRemove
)

type change struct {
	kind  changeKind
	value any
}

// Session is the unit of commit. Repositories bound to the same Session
// share its staged changes, and SaveChanges writes them all in one
// transaction.
type Session struct {
	db     *gorm.DB
	policy retry.Policy

	mu      sync.Mutex
	pending []change
}

func (s *Session) stage(kind changeKind, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, change{kind: kind, value: value})
}

// Pending returns the number of staged, uncommitted changes.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Discard drops every staged change.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// SaveChanges commits the staged changes and returns the affected row count.
// Staged changes are kept when the commit fails.
func (s *Session) SaveChanges(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return 0, nil
	}

	var affected int64
	err := s.policy.Do(ctx, func(ctx context.Context) error {
		affected = 0
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, c := range s.pending {
				n, err := apply(tx, c)
				if err != nil {
					return err
				}
				affected += n
			}
			return nil
		})
	})
	if err != nil {
		return 0, err
	}

	s.pending = nil
	return affected, nil
}

func apply(tx *gorm.DB, c change) (int64, error) {
	var res *gorm.DB
	switch c.kind {
	case changeAdd:
		res = tx.Omit(clause.Associations).Create(c.value)
	case changeUpdate:
		res = tx.Model(c.value).Select("*").Omit(clause.Associations).Updates(c.value)
	case changeRemove:
		res = tx.Delete(c.value)
	default:
		return 0, errors.New("unknown staged change")
	}
	return res.RowsAffected, res.Error
}

// DB returns a handle for reads that span tables.
func (s *Session) DB(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}
