package db

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/railzwaylabs/backoffice/internal/config"
	"github.com/railzwaylabs/backoffice/pkg/db/retry"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	gormprom "gorm.io/plugin/prometheus"
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Log       *zap.Logger
	Tracer    trace.TracerProvider
	Retry     retry.Policy
}

// New opens the configured database, installs the metrics and tracing
// plugins, and closes the pool when the app stops.
func New(p Params) (*gorm.DB, error) {
	log := p.Log.Named("db")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := Open(ctx, p.Config.Database, p.Retry, log)
	if err != nil {
		return nil, err
	}

	if p.Config.Metrics.Enabled {
		if err := conn.Use(gormprom.New(gormprom.Config{
			DBName:          p.Config.AppName,
			RefreshInterval: 15,
		})); err != nil {
			return nil, fmt.Errorf("install db metrics: %w", err)
		}
	}

	if p.Config.Tracing.Enabled {
		if err := conn.Use(otelgorm.NewPlugin(
			otelgorm.WithTracerProvider(p.Tracer),
			otelgorm.WithDBName(p.Config.AppName),
		)); err != nil {
			return nil, fmt.Errorf("install db tracing: %w", err)
		}
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	log.Info("database connected", zap.String("driver", p.Config.Database.Driver))
	return conn, nil
}

// Open connects with the retry policy applied to the initial ping.
func Open(ctx context.Context, cfg config.DatabaseConfig, policy retry.Policy, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}

	gcfg := &gorm.Config{
		Logger: gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	var conn *gorm.DB
	err = policy.Do(ctx, func(ctx context.Context) error {
		c, err := gorm.Open(dialector, gcfg)
		if err != nil {
			return err
		}
		sqlDB, err := c.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return conn, nil
}

func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "mysql":
		return mysql.Open(cfg.DSN), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewRetryPolicy builds the store retry policy once from configuration.
func NewRetryPolicy(cfg config.Config, log *zap.Logger) retry.Policy {
	rc := cfg.Database.Retry
	policy := retry.Policy{
		MaxAttempts:    rc.MaxAttempts,
		InitialBackoff: rc.InitialBackoff,
		MaxBackoff:     rc.MaxBackoff,
	}
	retryLog := log.Named("db.retry")
	policy.OnRetry = func(err error, wait time.Duration) {
		retryLog.Warn("transient database failure, retrying", zap.Error(err), zap.Duration("wait", wait))
	}
	return policy
}

func Ping(ctx context.Context, conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
