package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/telemetry"
	"discord-mcp/internal/infra/tools"
)

// Dispatcher resolves a tool call against the registry, validates its
// arguments, runs it against the shared client and renders the result.
type Dispatcher struct {
	registry *tools.Registry
	clients  *clientManager
	logger   *zap.Logger
	metrics  domain.Metrics
}

type Options struct {
	Logger  *zap.Logger
	Metrics domain.Metrics
}

func NewDispatcher(registry *tools.Registry, factory ClientFactory, opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("router")
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Dispatcher{
		registry: registry,
		clients:  newClientManager(factory, logger, metrics),
		logger:   logger,
		metrics:  metrics,
	}
}

// ListTools returns the catalog advertised to the host.
func (d *Dispatcher) ListTools() []domain.ToolSpec {
	return d.registry.Catalog()
}

// Dispatch runs one tool call. Every returned error carries a domain.Error
// code; its message is what the host sees.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, raw json.RawMessage) (*mcp.CallToolResult, error) {
	start := time.Now()
	ctx, meta := telemetry.EnsureRequestMeta(ctx, name)

	d.metrics.AddInflightDispatches(name, 1)
	defer d.metrics.AddInflightDispatches(name, -1)

	result, err := d.dispatch(ctx, name, raw)
	duration := time.Since(start)
	d.observe(name, duration, err)
	if err != nil {
		d.logDispatchError(meta, duration, err)
		return nil, err
	}
	d.logger.Debug("dispatch succeeded",
		append(telemetry.RequestFields(meta),
			telemetry.EventField(telemetry.EventDispatchSuccess),
			telemetry.DurationField(duration),
		)...,
	)
	return result, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, name string, raw json.RawMessage) (*mcp.CallToolResult, error) {
	api, err := d.clients.get(ctx)
	if err != nil {
		return nil, domain.NewStageError(domain.DispatchStageInit, initError(err))
	}

	op, ok := d.registry.Lookup(name)
	if !ok {
		return nil, domain.NewStageError(domain.DispatchStageResolve,
			domain.E(domain.CodeMethodNotFound, "", "unknown tool: "+name, domain.ErrToolNotFound))
	}

	args, err := op.Parse(raw)
	if err != nil {
		var verr *tools.ValidationError
		if errors.As(err, &verr) {
			return nil, domain.NewStageError(domain.DispatchStageValidate,
				domain.E(domain.CodeInvalidParams, "", fmt.Sprintf("invalid params for %s: %s", name, verr.Message), err))
		}
		return nil, domain.NewStageError(domain.DispatchStageValidate, internalError(err))
	}

	out, err := op.Run(ctx, api, args)
	if err != nil {
		if _, structured := domain.CodeFrom(err); structured {
			return nil, domain.NewStageError(domain.DispatchStageInvoke, err)
		}
		return nil, domain.NewStageError(domain.DispatchStageInvoke, internalError(err))
	}

	text, err := encodeResult(out)
	if err != nil {
		return nil, domain.NewStageError(domain.DispatchStageEncode, internalError(err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil
}

func initError(err error) error {
	if errors.Is(err, domain.ErrMissingToken) {
		return domain.E(domain.CodeInvalidRequest, "", domain.ErrMissingToken.Error(), err)
	}
	if _, structured := domain.CodeFrom(err); structured {
		return err
	}
	return internalError(err)
}

func internalError(err error) error {
	return domain.E(domain.CodeInternal, "", "tool execution failed: "+err.Error(), err)
}

// encodeResult renders out as two-space indented JSON without HTML escaping.
func encodeResult(out any) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func (d *Dispatcher) logDispatchError(meta telemetry.RequestMeta, duration time.Duration, err error) {
	fields := append(telemetry.RequestFields(meta),
		telemetry.EventField(telemetry.EventDispatchError),
		telemetry.DurationField(duration),
		zap.Error(err),
	)
	if stage, ok := domain.StageFrom(err); ok {
		fields = append(fields, telemetry.StageField(string(stage)))
	}
	if code, ok := domain.CodeFrom(err); ok {
		fields = append(fields, telemetry.CodeField(string(code)))
	}
	d.logger.Warn("dispatch failed", fields...)
}
