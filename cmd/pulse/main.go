package main

import (
	"go.uber.org/fx"

	"github.com/kitewave/pulse/internal/config"
	"github.com/kitewave/pulse/internal/migration"
	"github.com/kitewave/pulse/internal/observability"
	"github.com/kitewave/pulse/internal/seed"
	"github.com/kitewave/pulse/internal/server"
	"github.com/kitewave/pulse/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		server.Module,

		migration.Module,
		seed.Module,
	)
	app.Run()
}
