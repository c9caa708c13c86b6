package telemetry

import (
	"discord-mcp/internal/domain"
)

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveDispatch(_ domain.DispatchMetric) {}

func (n *NoopMetrics) AddInflightDispatches(_ string, _ int) {}

func (n *NoopMetrics) ObserveUpstream(_ domain.UpstreamMetric) {}

func (n *NoopMetrics) ObserveClientInit(_ error) {}

var _ domain.Metrics = (*NoopMetrics)(nil)
