package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/railzwaylabs/backoffice/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClientDisabledWithoutAddr(t *testing.T) {
	client, err := NewClient(Params{Log: zap.NewNop()})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewClientPings(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(Params{
		Config: config.Config{Redis: config.RedisConfig{Addr: mr.Addr()}},
		Log:    zap.NewNop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewClientFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewClient(Params{
		Config: config.Config{Redis: config.RedisConfig{Addr: addr}},
		Log:    zap.NewNop(),
	})
	assert.Error(t, err)
}
