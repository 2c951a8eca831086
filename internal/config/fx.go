package config

import "go.uber.org/fx"

// Module wires application configuration loading.
var Module = fx.Module("config",
	fx.Provide(Load),
)
