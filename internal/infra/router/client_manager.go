package router

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/telemetry"
	"discord-mcp/internal/infra/tools"
)

// ClientFactory builds the shared upstream client. It is called lazily on
// the first dispatched call and again only after a failed attempt.
type ClientFactory func(ctx context.Context) (tools.API, error)

type clientHandle struct {
	api tools.API
}

type clientManager struct {
	factory ClientFactory
	logger  *zap.Logger
	metrics domain.Metrics

	current atomic.Pointer[clientHandle]
	mu      sync.Mutex
}

func newClientManager(factory ClientFactory, logger *zap.Logger, metrics domain.Metrics) *clientManager {
	return &clientManager{
		factory: factory,
		logger:  logger,
		metrics: metrics,
	}
}

// get returns the shared client, constructing it at most once per success.
func (m *clientManager) get(ctx context.Context) (tools.API, error) {
	if handle := m.current.Load(); handle != nil {
		return handle.api, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if handle := m.current.Load(); handle != nil {
		return handle.api, nil
	}
	if m.factory == nil {
		return nil, errors.New("client factory is not configured")
	}

	api, err := m.factory(ctx)
	if err == nil && api == nil {
		err = errors.New("client factory returned no client")
	}
	m.metrics.ObserveClientInit(err)
	if err != nil {
		m.logger.Warn("client initialization failed",
			telemetry.EventField(telemetry.EventClientInitError),
			zap.Error(err),
		)
		return nil, err
	}

	m.current.Store(&clientHandle{api: api})
	m.logger.Info("client initialized", telemetry.EventField(telemetry.EventClientInit))
	return api, nil
}

func (m *clientManager) initialized() bool {
	return m.current.Load() != nil
}
