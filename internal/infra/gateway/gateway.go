package gateway

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/telemetry"
)

// Dispatcher is the tool execution surface the gateway fronts.
type Dispatcher interface {
	ListTools() []domain.ToolSpec
	Dispatch(ctx context.Context, name string, raw json.RawMessage) (*mcp.CallToolResult, error)
}

type Options struct {
	Name    string
	Version string
	Logger  *zap.Logger
}

// Gateway exposes the dispatcher's catalog as an MCP server.
type Gateway struct {
	dispatcher Dispatcher
	logger     *zap.Logger
	server     *mcp.Server
}

func NewGateway(dispatcher Dispatcher, opts Options) *Gateway {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	name := opts.Name
	if name == "" {
		name = "discord-mcp"
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	g := &Gateway{
		dispatcher: dispatcher,
		logger:     logger.Named("gateway"),
	}
	g.server = mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, &mcp.ServerOptions{
		HasTools: true,
	})

	registered := newToolRegistry(g.server, g.toolHandler, g.logger).Register(dispatcher.ListTools())
	g.logger.Info("tool catalog registered",
		telemetry.EventField(telemetry.EventCatalogReady),
		zap.Int("tools", registered),
	)
	return g
}

// Server returns the underlying MCP server, for callers that bring their
// own transport.
func (g *Gateway) Server() *mcp.Server {
	return g.server
}

// Run serves MCP over stdin/stdout until ctx is canceled or the peer
// disconnects.
func (g *Gateway) Run(ctx context.Context) error {
	g.logger.Info("gateway starting (stdio transport)")
	err := g.server.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	g.logger.Info("gateway stopped")
	return nil
}

func (g *Gateway) toolHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = json.RawMessage(req.Params.Arguments)
		}
		result, err := g.dispatcher.Dispatch(ctx, name, args)
		if err != nil {
			return nil, toProtocolError(err)
		}
		return result, nil
	}
}

// toProtocolError converts a dispatch failure into a JSON-RPC error whose
// message is the dispatch error's message.
func toProtocolError(err error) error {
	var rpcErr *jsonrpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return &jsonrpc.Error{
		Code:    domain.ProtocolCodeOf(err),
		Message: err.Error(),
	}
}
