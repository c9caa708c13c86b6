package telemetry

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldEvent      = "event"
	FieldTool       = "tool"
	FieldStage      = "stage"
	FieldCode       = "code"
	FieldDurationMs = "duration_ms"
	FieldLogSource  = "log_source"
	FieldRequestID  = "request_id"
)

const (
	EventDispatchStart   = "dispatch_start"
	EventDispatchSuccess = "dispatch_success"
	EventDispatchError   = "dispatch_error"
	EventClientInit      = "client_init"
	EventClientInitError = "client_init_failure"
	EventCatalogReady    = "catalog_ready"
)

const (
	LogSourceCore    = "core"
	LogSourceGateway = "gateway"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func ToolField(name string) zap.Field {
	return zap.String(FieldTool, name)
}

func StageField(stage string) zap.Field {
	return zap.String(FieldStage, stage)
}

func CodeField(code string) zap.Field {
	return zap.String(FieldCode, code)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Int64(FieldDurationMs, duration.Milliseconds())
}

func RequestIDField(value string) zap.Field {
	return zap.String(FieldRequestID, value)
}
