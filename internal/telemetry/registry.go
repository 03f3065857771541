package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"mcp-agent-go/internal/mcp"
	"mcp-agent-go/internal/tools"
)

// ToolRegistryWrapper wraps a tool registry to add telemetry
type ToolRegistryWrapper struct {
	*tools.Registry
	metrics *Metrics
}

// NewToolRegistryWrapper creates a new telemetry-aware tool registry wrapper
func NewToolRegistryWrapper(registry *tools.Registry, metrics *Metrics) *ToolRegistryWrapper {
	return &ToolRegistryWrapper{
		Registry: registry,
		metrics:  metrics,
	}
}

// Definitions wraps the original Definitions to count discovery requests
func (w *ToolRegistryWrapper) Definitions() []mcp.ToolDefinition {
	w.metrics.RecordDiscovery()
	return w.Registry.Definitions()
}

// Invoke wraps the original Invoke to add telemetry
func (w *ToolRegistryWrapper) Invoke(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	start := time.Now()

	result, err := w.Registry.Invoke(ctx, name, args)

	duration := time.Since(start)
	status := "success"
	if err != nil {
		status = "error"
	}

	w.metrics.RecordToolExecution(name, status, duration)

	return result, err
}
