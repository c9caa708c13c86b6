package gateway

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"discord-mcp/internal/domain"
)

func TestToolRegistry_RegisterSkipsInvalidSchemas(t *testing.T) {
	ctx := context.Background()
	server := mcp.NewServer(&mcp.Implementation{Name: "gateway", Version: "0.1.0"}, &mcp.ServerOptions{HasTools: true})

	registry := newToolRegistry(server, func(name string) mcp.ToolHandler {
		return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: name}},
			}, nil
		}
	}, zap.NewNop())

	registered := registry.Register([]domain.ToolSpec{
		{Name: "echo", Description: "echo input", InputSchema: map[string]any{"type": "object"}},
		{Name: "broken", Description: "array input", InputSchema: map[string]any{"type": "array"}},
		{Name: "", InputSchema: map[string]any{"type": "object"}},
	})
	require.Equal(t, 1, registered)

	_, session := connectClient(t, ctx, server)
	defer session.Close()

	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)
	require.Equal(t, "echo", res.Tools[0].Name)

	call, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "echo"})
	require.NoError(t, err)
	require.Equal(t, "echo", call.Content[0].(*mcp.TextContent).Text)
}

func TestIsObjectSchema(t *testing.T) {
	require.True(t, isObjectSchema(map[string]any{"type": "object"}))
	require.True(t, isObjectSchema(map[string]any{"type": "OBJECT"}))
	require.False(t, isObjectSchema(map[string]any{"type": "string"}))
	require.False(t, isObjectSchema(map[string]any{}))
	require.False(t, isObjectSchema(nil))
}

func connectClient(t *testing.T, ctx context.Context, server *mcp.Server) (*mcp.Client, *mcp.ClientSession) {
	t.Helper()
	ct, st := mcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "0.1.0"}, nil)
	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	return client, session
}
