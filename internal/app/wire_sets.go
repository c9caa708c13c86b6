//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"discord-mcp/internal/infra/gateway"
)

var CoreInfraSet = wire.NewSet(
	NewMetricsRegistry,
	NewMetrics,
)

var ToolSet = wire.NewSet(
	NewToolRegistry,
	NewClientFactory,
	NewDispatcher,
	NewGateway,
	wire.Bind(new(Runner), new(*gateway.Gateway)),
)

var AppSet = wire.NewSet(
	CoreInfraSet,
	ToolSet,
	wire.Struct(new(ApplicationOptions), "*"),
	NewApplication,
)
