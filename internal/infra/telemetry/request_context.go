package telemetry

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestContextKey struct{}

type RequestMeta struct {
	RequestID string
	Tool      string
}

func (m RequestMeta) IsZero() bool {
	return m.RequestID == "" && m.Tool == ""
}

func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	if meta.IsZero() {
		return ctx
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestContextKey{}, meta)
}

func RequestMetaFromContext(ctx context.Context) (RequestMeta, bool) {
	if ctx == nil {
		return RequestMeta{}, false
	}
	meta, ok := ctx.Value(requestContextKey{}).(RequestMeta)
	return meta, ok && !meta.IsZero()
}

func NewRequestID() string {
	return uuid.NewString()
}

// EnsureRequestMeta returns ctx carrying a request id for tool, reusing one
// already attached by a caller.
func EnsureRequestMeta(ctx context.Context, tool string) (context.Context, RequestMeta) {
	if existing, ok := RequestMetaFromContext(ctx); ok && existing.RequestID != "" {
		if existing.Tool == "" {
			existing.Tool = tool
			ctx = WithRequestMeta(ctx, existing)
		}
		return ctx, existing
	}
	meta := RequestMeta{RequestID: NewRequestID(), Tool: tool}
	return WithRequestMeta(ctx, meta), meta
}

func RequestFields(meta RequestMeta) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if meta.RequestID != "" {
		fields = append(fields, RequestIDField(meta.RequestID))
	}
	if meta.Tool != "" {
		fields = append(fields, ToolField(meta.Tool))
	}
	return fields
}
