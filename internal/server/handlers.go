package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"mcp-agent-go/internal/mcp"
)

// ToolService is the registry surface the MCP handlers need. Both the plain
// registry and its telemetry wrapper satisfy it.
type ToolService interface {
	Definitions() []mcp.ToolDefinition
	Invoke(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error)
}

// Handler serves the MCP discovery and invocation endpoints.
type Handler struct {
	registry ToolService
	logger   zerolog.Logger
}

// NewHandler creates a new MCP handler backed by the given registry.
func NewHandler(registry ToolService, logger zerolog.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger.With().Str("component", "mcp_handler").Logger(),
	}
}

// ListTools handles GET /mcp/v1/tools - returns the published tool definitions
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	defs := h.registry.Definitions()
	if defs == nil {
		defs = []mcp.ToolDefinition{}
	}

	h.logger.Debug().
		Int("tool_count", len(defs)).
		Str("remote_addr", r.RemoteAddr).
		Msg("Providing tool definitions")

	render.JSON(w, r, mcp.ToolListResponse{Tools: defs})
}

// CallTool handles POST /mcp/v1/call - executes one tool. Tool-level
// failures (unknown tool, bad arguments, execution errors) are returned as
// an error envelope with status 200 so clients always get an in-band result;
// only an unreadable request body produces a 4xx.
func (h *Handler) CallTool(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, mcp.CallResponse{Error: "could not read request body"})
		return
	}

	req, err := mcp.ParseCallRequest(body)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("remote_addr", r.RemoteAddr).
			Msg("Rejected call request")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, mcp.CallResponse{Error: err.Error()})
		return
	}

	h.logger.Info().
		Str("tool_name", req.ToolName).
		Msg("Received tool call")

	args, err := json.Marshal(req.Arguments)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, mcp.CallResponse{ToolName: req.ToolName, Error: "could not encode arguments"})
		return
	}

	output, err := h.registry.Invoke(r.Context(), req.ToolName, args)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("tool_name", req.ToolName).
			Msg("Tool call failed")
		render.JSON(w, r, mcp.CallResponse{ToolName: req.ToolName, Error: err.Error()})
		return
	}

	render.JSON(w, r, mcp.CallResponse{ToolName: req.ToolName, Output: output})
}
