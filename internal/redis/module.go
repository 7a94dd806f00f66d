package redis

import (
	"context"
	"time"

	"github.com/railzwaylabs/backoffice/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const pingTimeout = 3 * time.Second

var Module = fx.Module("redis",
	fx.Provide(NewClient),
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle `optional:"true"`
	Config    config.Config
	Log       *zap.Logger
}

// NewClient returns nil when no address is configured, which disables
// caching for consumers that accept an optional client.
func NewClient(p Params) (*redis.Client, error) {
	cfg := p.Config.Redis
	if cfg.Addr == "" {
		p.Log.Info("redis disabled, no address configured")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	if p.Lifecycle != nil {
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error { return client.Close() },
		})
	}
	return client, nil
}
