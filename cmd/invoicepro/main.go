package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/DevHusayn/InvoicePro/internal/clock"
	"github.com/DevHusayn/InvoicePro/internal/config"
	"github.com/DevHusayn/InvoicePro/internal/dashboard"
	"github.com/DevHusayn/InvoicePro/internal/invoice"
	"github.com/DevHusayn/InvoicePro/internal/observability"
	"github.com/DevHusayn/InvoicePro/internal/server"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,

		invoice.Module,
		dashboard.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterAPIRoutes()
		}),
		fx.Invoke(server.RunHTTP),
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
