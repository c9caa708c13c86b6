package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/discord"
	"discord-mcp/internal/infra/gateway"
	"discord-mcp/internal/infra/router"
	"discord-mcp/internal/infra/telemetry"
	"discord-mcp/internal/infra/tools"
)

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())
	return registry
}

func NewMetrics(registry *prometheus.Registry) domain.Metrics {
	return telemetry.NewPrometheusMetrics(registry)
}

func NewToolRegistry(cfg Config) *tools.Registry {
	return tools.NewRegistry(tools.Options{CDNBaseURL: cfg.CDNBaseURL})
}

// NewClientFactory returns the lazy constructor of the shared REST client.
// The credential is read on each attempt so a token exported after startup
// is picked up by the next call.
func NewClientFactory(cfg Config, logger *zap.Logger, metrics domain.Metrics) router.ClientFactory {
	return func(context.Context) (tools.API, error) {
		client, err := discord.New(discord.Config{
			Token:     cfg.Token(),
			BaseURL:   cfg.APIBaseURL,
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.RequestTimeout(),
		}, discord.Options{
			Logger:  logger,
			Metrics: metrics,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func NewDispatcher(registry *tools.Registry, factory router.ClientFactory, logger *zap.Logger, metrics domain.Metrics) *router.Dispatcher {
	return router.NewDispatcher(registry, factory, router.Options{
		Logger:  logger,
		Metrics: metrics,
	})
}

func NewGateway(dispatcher *router.Dispatcher, logger *zap.Logger) *gateway.Gateway {
	return gateway.NewGateway(dispatcher, gateway.Options{
		Name:    "discord-mcp",
		Version: Version,
		Logger:  logger,
	})
}
