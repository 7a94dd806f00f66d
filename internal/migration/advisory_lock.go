package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// advisoryLockKey serializes concurrent migrators against one database.
const advisoryLockKey int64 = 5_271_604_338

// Session-scoped: both statements must run on the same connection.
var (
	lockQuery   = "SELECT pg_try_advisory_lock($1)"
	unlockQuery = "SELECT pg_advisory_unlock($1)"
)

type unlockFunc func(ctx context.Context) error

func acquireAdvisoryLock(ctx context.Context, db *sql.DB) (unlockFunc, error) {
	if db == nil {
		return nil, errors.New("advisory lock requires database handle")
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("reserve advisory lock connection: %w", err)
	}

	var locked bool
	if err := conn.QueryRowContext(ctx, lockQuery, advisoryLockKey).Scan(&locked); err != nil {
		return nil, errors.Join(fmt.Errorf("acquire advisory lock: %w", err), conn.Close())
	}
	if !locked {
		return nil, errors.Join(errors.New("another migration process holds the advisory lock"), conn.Close())
	}

	return func(unlockCtx context.Context) (err error) {
		defer func() {
			err = errors.Join(err, conn.Close())
		}()

		var released bool
		if err := conn.QueryRowContext(unlockCtx, unlockQuery, advisoryLockKey).Scan(&released); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		if !released {
			return errors.New("advisory lock was not held by this session")
		}
		return nil
	}, nil
}
