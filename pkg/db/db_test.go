package db

import (
	"context"
	"testing"

	"github.com/railzwaylabs/backoffice/internal/config"
	"github.com/railzwaylabs/backoffice/pkg/db/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		d, err := Dialector(config.DatabaseConfig{Driver: driver, DSN: "x"})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file:" + t.Name() + "?mode=memory&cache=shared",
		MaxOpenConns: 4,
	}, retry.Policy{}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, Ping(ctx, conn))

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	assert.Equal(t, 4, sqlDB.Stats().MaxOpenConnections)
}

func TestNewRetryPolicy(t *testing.T) {
	cfg := config.Config{Database: config.DatabaseConfig{Retry: config.RetryConfig{MaxAttempts: 4}}}
	policy := NewRetryPolicy(cfg, zap.NewNop())
	assert.Equal(t, 4, policy.MaxAttempts)
	assert.NotNil(t, policy.OnRetry)
}
