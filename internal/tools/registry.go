package tools

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"mcp-agent-go/internal/mcp"
)

// Registry manages the collection of available tools. It holds no mutable
// cross-call state beyond the tool map itself, so Invoke is safe for
// concurrent use.
type Registry struct {
	tools  map[string]Tool
	order  []string
	mu     sync.RWMutex
	logger zerolog.Logger
}

// NewRegistry creates a new tool registry.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		tools:  make(map[string]Tool),
		logger: logger.With().Str("component", "tool_registry").Logger(),
	}
}

// Register adds a new tool to the registry. Registering the same name twice
// replaces the previous tool.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool

	r.logger.Info().
		Str("tool_name", name).
		Msg("Registered tool")
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	return tool, exists
}

// Definitions returns the published definitions of all registered tools, in
// registration order. Repeated calls against an unchanged registry return an
// identical list. An empty slice means no tools are available.
func (r *Registry) Definitions() []mcp.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]mcp.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		defs = append(defs, mcp.ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Schema(),
		})
	}
	return defs
}

// Invoke executes a tool with the given arguments and context. An unknown
// tool name yields a typed error, never a panic; argument validation is
// delegated to the tool via DecodeArgs.
func (r *Registry) Invoke(ctx context.Context, toolName string, args json.RawMessage) (json.RawMessage, error) {
	tool, exists := r.Get(toolName)
	if !exists {
		r.logger.Debug().
			Str("tool_name", toolName).
			Msg("Tool not found")
		return nil, NewToolNotFoundError()
	}

	r.logger.Debug().
		Str("tool_name", toolName).
		RawJSON("arguments", nonEmptyJSON(args)).
		Msg("Invoking tool")

	return tool.Call(ctx, args)
}

func nonEmptyJSON(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("{}")
	}
	return raw
}
