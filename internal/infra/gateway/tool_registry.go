package gateway

import (
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"discord-mcp/internal/domain"
)

type toolRegistry struct {
	server  *mcp.Server
	handler func(name string) mcp.ToolHandler
	logger  *zap.Logger
}

func newToolRegistry(server *mcp.Server, handler func(name string) mcp.ToolHandler, logger *zap.Logger) *toolRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &toolRegistry{
		server:  server,
		handler: handler,
		logger:  logger.Named("tool_registry"),
	}
}

// Register adds every catalog entry to the server and returns the number
// registered. Entries without an object input schema are skipped.
func (r *toolRegistry) Register(specs []domain.ToolSpec) int {
	registered := 0
	for _, spec := range specs {
		if spec.Name == "" {
			continue
		}
		if !isObjectSchema(spec.InputSchema) {
			r.logger.Warn("skip tool with invalid input schema", zap.String("tool", spec.Name))
			continue
		}
		r.server.AddTool(&mcp.Tool{
			Name:        spec.Name,
			Description: spec.Description,
			InputSchema: spec.InputSchema,
		}, r.handler(spec.Name))
		registered++
	}
	return registered
}

func isObjectSchema(schema any) bool {
	if schema == nil {
		return false
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return false
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	if typ, ok := obj["type"]; ok {
		if val, ok := typ.(string); ok {
			return strings.EqualFold(val, "object")
		}
	}
	return false
}
