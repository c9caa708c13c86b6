package tools

import (
	"fmt"
	"time"

	"discord-mcp/internal/domain"
)

// Options configures how operations render their results.
type Options struct {
	CDNBaseURL string
	Now        func() time.Time
}

// Registry is the immutable, ordered set of operations. Catalog entries and
// dispatch lookups come from the same registrations.
type Registry struct {
	ordered []*Operation
	byName  map[string]*Operation
}

type builder func(*shaper) *Operation

// builtins lists the operations in catalog order.
var builtins = []builder{
	serverListOperation,
	serverDetailsOperation,
	channelListOperation,
	userListOperation,
	channelMessagesOperation,
	messageOperation,
	pinnedMessagesOperation,
	guildRolesOperation,
	memberRolesOperation,
	sendMessageOperation,
	editMessageOperation,
	deleteMessageOperation,
	sendFileOperation,
	channelInvitesOperation,
	guildInvitesOperation,
	channelWebhooksOperation,
	guildWebhooksOperation,
	voiceStatesOperation,
	voiceRegionsOperation,
}

func NewRegistry(opts Options) *Registry {
	s := newShaper(opts.CDNBaseURL, opts.Now)
	ops := make([]*Operation, 0, len(builtins))
	for _, build := range builtins {
		ops = append(ops, build(s))
	}
	registry, err := newRegistry(ops)
	if err != nil {
		// The built-in set is static; a collision is a programming error.
		panic(err)
	}
	return registry
}

func newRegistry(ops []*Operation) (*Registry, error) {
	registry := &Registry{
		ordered: make([]*Operation, 0, len(ops)),
		byName:  make(map[string]*Operation, len(ops)),
	}
	for _, op := range ops {
		if _, exists := registry.byName[op.Name()]; exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateTool, op.Name())
		}
		registry.byName[op.Name()] = op
		registry.ordered = append(registry.ordered, op)
	}
	return registry, nil
}

func (r *Registry) Lookup(name string) (*Operation, bool) {
	op, ok := r.byName[name]
	return op, ok
}

func (r *Registry) Catalog() []domain.ToolSpec {
	specs := make([]domain.ToolSpec, 0, len(r.ordered))
	for _, op := range r.ordered {
		specs = append(specs, op.Spec())
	}
	return specs
}

func (r *Registry) Stats() domain.CatalogStats {
	names := make([]string, 0, len(r.ordered))
	for _, op := range r.ordered {
		names = append(names, op.Name())
	}
	return domain.CatalogStats{Total: len(names), Names: names}
}

// Catalog returns the advertised tool list with default rendering options.
func Catalog() []domain.ToolSpec {
	return NewRegistry(Options{}).Catalog()
}
