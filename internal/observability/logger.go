package observability

import (
	"context"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/railzwaylabs/backoffice/internal/config"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(cfg config.Config) (*zap.Logger, zap.AtomicLevel, error) {
	level := zap.NewAtomicLevel()
	if raw := strings.TrimSpace(cfg.Log.Level); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, level, fmt.Errorf("parse log level: %w", err)
		}
	}

	zcfg := zap.NewProductionConfig()
	if cfg.IsDevelopment() {
		zcfg = zap.NewDevelopmentConfig()
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "console":
		zcfg.Encoding = "console"
	case "json":
		zcfg.Encoding = "json"
	}
	zcfg.Level = level

	log, err := zcfg.Build(zap.Fields(zap.String("app", cfg.AppName)))
	if err != nil {
		return nil, level, fmt.Errorf("build logger: %w", err)
	}
	return log, level, nil
}

// WatchLogLevel applies log.level changes from the config file without a
// restart. It does nothing when no config file was loaded.
func WatchLogLevel(v *viper.Viper, level zap.AtomicLevel, log *zap.Logger) {
	if v == nil || v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		var next zapcore.Level
		if err := next.UnmarshalText([]byte(v.GetString("log.level"))); err != nil {
			log.Warn("ignoring invalid log level from config", zap.String("file", e.Name), zap.Error(err))
			return
		}
		if next == level.Level() {
			return
		}
		level.SetLevel(next)
		log.Info("log level changed", zap.String("level", next.String()), zap.String("file", e.Name))
	})
	v.WatchConfig()
}

func syncOnStop(lc fx.Lifecycle, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
}
