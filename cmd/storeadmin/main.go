package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storeadmin/internal/billboard"
	"github.com/smallbiznis/storeadmin/internal/category"
	"github.com/smallbiznis/storeadmin/internal/clock"
	"github.com/smallbiznis/storeadmin/internal/color"
	"github.com/smallbiznis/storeadmin/internal/config"
	"github.com/smallbiznis/storeadmin/internal/identity"
	"github.com/smallbiznis/storeadmin/internal/migration"
	"github.com/smallbiznis/storeadmin/internal/observability"
	"github.com/smallbiznis/storeadmin/internal/order"
	"github.com/smallbiznis/storeadmin/internal/ownership"
	"github.com/smallbiznis/storeadmin/internal/product"
	"github.com/smallbiznis/storeadmin/internal/server"
	"github.com/smallbiznis/storeadmin/internal/size"
	"github.com/smallbiznis/storeadmin/internal/store"
	"github.com/smallbiznis/storeadmin/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		clock.Module,
		identity.Module,
		ownership.Module,

		// Resources
		store.Module,
		billboard.Module,
		category.Module,
		size.Module,
		color.Module,
		product.Module,
		order.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}
