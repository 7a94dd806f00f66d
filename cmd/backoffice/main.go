package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/backoffice/internal/category"
	"github.com/railzwaylabs/backoffice/internal/clock"
	"github.com/railzwaylabs/backoffice/internal/config"
	"github.com/railzwaylabs/backoffice/internal/dashboard"
	"github.com/railzwaylabs/backoffice/internal/migration"
	"github.com/railzwaylabs/backoffice/internal/observability"
	"github.com/railzwaylabs/backoffice/internal/order"
	"github.com/railzwaylabs/backoffice/internal/product"
	"github.com/railzwaylabs/backoffice/internal/redis"
	"github.com/railzwaylabs/backoffice/internal/seed"
	"github.com/railzwaylabs/backoffice/internal/server"
	"github.com/railzwaylabs/backoffice/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const oneShotTimeout = 2 * time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	root := &cobra.Command{
		Use:     "backoffice",
		Short:   "Store back-office API and tooling",
		Version: readVersionFromEnv(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				return os.Setenv("BACKOFFICE_CONFIG", configFile)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file")
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newServeCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(migration.Module)
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate, then insert sample categories, products and orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(
				migration.Module,
				fx.Invoke(func(conn *gorm.DB, node *snowflake.Node, log *zap.Logger) error {
					ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
					defer cancel()
					return seed.Catalog(ctx, conn, node, log.Named("seed"))
				}),
			)
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				infrastructure(),
				clock.Module,
				redis.Module,
				fx.Invoke(migrateOnStart),
				category.Module,
				product.Module,
				order.Module,
				dashboard.Module,
				server.Module,
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

func infrastructure() fx.Option {
	return fx.Options(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
	)
}

func runOnce(opts ...fx.Option) error {
	app := fx.New(append([]fx.Option{infrastructure()}, opts...)...)

	ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	return app.Stop(context.Background())
}

// migrateOnStart keeps serving when migration fails so an operator can
// still reach the health endpoint.
func migrateOnStart(conn *gorm.DB, log *zap.Logger) {
	if err := migration.Run(context.Background(), conn, log.Named("migration")); err != nil {
		log.Error("database migration failed", zap.Error(err))
	}
}

func registerSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.NodeID)
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
