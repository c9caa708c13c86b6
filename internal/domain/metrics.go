package domain

import "time"

// DispatchStatus labels the outcome of a dispatched tool call.
type DispatchStatus string

const (
	// DispatchStatusSuccess indicates the call produced a result.
	DispatchStatusSuccess DispatchStatus = "success"
	// DispatchStatusError indicates the call produced an error.
	DispatchStatusError DispatchStatus = "error"
)

// DispatchReason describes why a dispatched call ended with a status.
type DispatchReason string

const (
	DispatchReasonSuccess       DispatchReason = "success"
	DispatchReasonMissingToken  DispatchReason = "missing_token"
	DispatchReasonUnknownTool   DispatchReason = "unknown_tool"
	DispatchReasonInvalidParams DispatchReason = "invalid_params"
	DispatchReasonUpstream      DispatchReason = "upstream_failed"
	DispatchReasonInternal      DispatchReason = "internal"
)

// DispatchMetric captures metrics for one dispatched tool call.
type DispatchMetric struct {
	Tool     string
	Status   DispatchStatus
	Reason   DispatchReason
	Duration time.Duration
}

// UpstreamMetric captures metrics for one outbound REST call.
type UpstreamMetric struct {
	Method     string
	Route      string
	StatusCode int
	Kind       string
	Duration   time.Duration
}

// Metrics records operational metrics for dispatch and upstream traffic.
type Metrics interface {
	ObserveDispatch(metric DispatchMetric)
	AddInflightDispatches(tool string, delta int)
	ObserveUpstream(metric UpstreamMetric)
	ObserveClientInit(err error)
}
