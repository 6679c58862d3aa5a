// @title           Facteur API
// @version         1.0
// @description     Small-business billing ledger API

// @host      localhost:8080
// @BasePath  /api
// @Schemes   http https

package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/haroun39/facteur/internal/clock"
	"github.com/haroun39/facteur/internal/config"
	"github.com/haroun39/facteur/internal/customer"
	"github.com/haroun39/facteur/internal/debt"
	"github.com/haroun39/facteur/internal/invoice"
	"github.com/haroun39/facteur/internal/migration"
	"github.com/haroun39/facteur/internal/observability/logger"
	"github.com/haroun39/facteur/internal/observability/metrics"
	"github.com/haroun39/facteur/internal/observability/tracing"
	"github.com/haroun39/facteur/internal/payment"
	"github.com/haroun39/facteur/internal/report"
	"github.com/haroun39/facteur/internal/seed"
	"github.com/haroun39/facteur/internal/server"
	"github.com/haroun39/facteur/pkg/db"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		tracing.Module,
		metrics.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			if cfg.Bootstrap.SeedDemoData {
				return seed.EnsureDemoData(conn)
			}
			return nil
		}),

		customer.Module,
		invoice.Module,
		payment.Module,
		debt.Module,
		report.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
