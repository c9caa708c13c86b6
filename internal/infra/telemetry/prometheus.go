package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"discord-mcp/internal/domain"
)

type PrometheusMetrics struct {
	dispatchDuration *prometheus.HistogramVec
	dispatchInflight *prometheus.GaugeVec
	upstreamDuration *prometheus.HistogramVec
	upstreamErrors   *prometheus.CounterVec
	clientInits      *prometheus.CounterVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		dispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "discord_mcp_dispatch_duration_seconds",
				Help:    "Duration of dispatched tool calls in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"tool", "status", "reason"},
		),
		dispatchInflight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "discord_mcp_dispatch_inflight",
				Help: "Current number of in-flight tool calls",
			},
			[]string{"tool"},
		),
		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "discord_mcp_upstream_request_duration_seconds",
				Help:    "Duration of Discord REST requests in seconds",
				Buckets: []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		upstreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "discord_mcp_upstream_errors_total",
				Help: "Total number of failed Discord REST requests by error kind",
			},
			[]string{"method", "route", "kind"},
		),
		clientInits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "discord_mcp_client_init_total",
				Help: "Total number of upstream client initialization attempts",
			},
			[]string{"result"},
		),
	}
}

func (p *PrometheusMetrics) ObserveDispatch(metric domain.DispatchMetric) {
	p.dispatchDuration.WithLabelValues(metric.Tool, string(metric.Status), string(metric.Reason)).Observe(metric.Duration.Seconds())
}

func (p *PrometheusMetrics) AddInflightDispatches(tool string, delta int) {
	p.dispatchInflight.WithLabelValues(tool).Add(float64(delta))
}

func (p *PrometheusMetrics) ObserveUpstream(metric domain.UpstreamMetric) {
	status := "none"
	if metric.StatusCode > 0 {
		status = strconv.Itoa(metric.StatusCode)
	}
	p.upstreamDuration.WithLabelValues(metric.Method, metric.Route, status).Observe(metric.Duration.Seconds())
	if metric.Kind != "" {
		p.upstreamErrors.WithLabelValues(metric.Method, metric.Route, metric.Kind).Inc()
	}
}

func (p *PrometheusMetrics) ObserveClientInit(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	p.clientInits.WithLabelValues(result).Inc()
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
