package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/telemetry"
	"discord-mcp/internal/infra/tools"
)

// Runner serves the tool catalog until its context ends.
type Runner interface {
	Run(ctx context.Context) error
}

// Application wires the gateway to its optional observability server.
type Application struct {
	cfg      Config
	logger   *zap.Logger
	gateway  Runner
	registry prometheus.Gatherer
}

// ApplicationOptions captures dependencies and settings for Application.
type ApplicationOptions struct {
	Config   Config
	Logger   *zap.Logger
	Gateway  Runner
	Registry *prometheus.Registry
}

func NewApplication(opts ApplicationOptions) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var gatherer prometheus.Gatherer
	if opts.Registry != nil {
		gatherer = opts.Registry
	}
	return &Application{
		cfg:      opts.Config,
		logger:   logger.Named("app"),
		gateway:  opts.Gateway,
		registry: gatherer,
	}
}

// Run serves the gateway. When the gateway returns, the observability
// server is shut down too.
func (a *Application) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(runCtx)
	obs := a.cfg.Observability
	if obs.Metrics || obs.Healthz {
		group.Go(func() error {
			return telemetry.StartHTTPServer(groupCtx, telemetry.HTTPServerOptions{
				Addr:          obs.ListenAddress,
				EnableMetrics: obs.Metrics,
				EnableHealthz: obs.Healthz,
				Registry:      a.registry,
			}, a.logger)
		})
	}
	group.Go(func() error {
		defer cancel()
		return a.gateway.Run(groupCtx)
	})

	a.logger.Info("discord-mcp starting",
		zap.String("version", Version),
		zap.Bool("metrics", obs.Metrics),
		zap.Bool("healthz", obs.Healthz),
	)
	return group.Wait()
}

// catalogDocument is the shape printed by the tools command.
type catalogDocument struct {
	Stats domain.CatalogStats `json:"stats"`
	Tools []catalogEntry      `json:"tools"`
}

type catalogEntry struct {
	domain.ToolSpec
	OutputSchema *jsonschema.Schema `json:"outputSchema"`
}

// WriteCatalog prints the registered tools with their input and output schemas.
func WriteCatalog(w io.Writer, registry *tools.Registry) error {
	catalog := registry.Catalog()
	entries := make([]catalogEntry, 0, len(catalog))
	for _, spec := range catalog {
		op, ok := registry.Lookup(spec.Name)
		if !ok {
			return fmt.Errorf("catalog entry %s has no operation", spec.Name)
		}
		output, err := op.OutputSchema()
		if err != nil {
			return fmt.Errorf("derive output schema for %s: %w", spec.Name, err)
		}
		entries = append(entries, catalogEntry{ToolSpec: spec, OutputSchema: output})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(catalogDocument{
		Stats: registry.Stats(),
		Tools: entries,
	}); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return nil
}
