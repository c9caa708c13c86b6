package router

import (
	"errors"
	"time"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/discord"
)

func (d *Dispatcher) observe(tool string, duration time.Duration, err error) {
	status, reason := classifyDispatchResult(err)
	d.metrics.ObserveDispatch(domain.DispatchMetric{
		Tool:     tool,
		Status:   status,
		Reason:   reason,
		Duration: duration,
	})
}

func classifyDispatchResult(err error) (domain.DispatchStatus, domain.DispatchReason) {
	if err == nil {
		return domain.DispatchStatusSuccess, domain.DispatchReasonSuccess
	}
	if errors.Is(err, domain.ErrMissingToken) {
		return domain.DispatchStatusError, domain.DispatchReasonMissingToken
	}
	if stage, ok := domain.StageFrom(err); ok {
		switch stage {
		case domain.DispatchStageResolve:
			return domain.DispatchStatusError, domain.DispatchReasonUnknownTool
		case domain.DispatchStageValidate:
			if errors.Is(err, domain.ErrInvalidParams) {
				return domain.DispatchStatusError, domain.DispatchReasonInvalidParams
			}
		case domain.DispatchStageInvoke:
			var apiErr *discord.APIError
			if errors.As(err, &apiErr) {
				return domain.DispatchStatusError, domain.DispatchReasonUpstream
			}
		}
	}
	return domain.DispatchStatusError, domain.DispatchReasonInternal
}
