package repository

import (
	"github.com/railzwaylabs/backoffice/pkg/db/retry"
	"gorm.io/gorm"
)

// Store hands out one Session per unit of work. It is safe for concurrent
// use; Sessions are not meant to be shared between requests.
type Store struct {
	db     *gorm.DB
	policy retry.Policy
}

func NewStore(db *gorm.DB, policy retry.Policy) *Store {
	return &Store{db: db, policy: policy}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Session() *Session {
	return &Session{db: s.db, policy: s.policy}
}
