package mcp

import (
	"encoding/json"
	"fmt"
)

// ToolDefinition describes one tool published by a registry. Definitions are
// immutable once published: the same registry must return the same list on
// every discovery call.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// ToolListResponse is the body of GET /mcp/v1/tools. An empty Tools slice is
// valid and means "no tools available", not an error.
type ToolListResponse struct {
	Tools []ToolDefinition `json:"tools"`
}

// CallRequest is the body of POST /mcp/v1/call.
type CallRequest struct {
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
}

// CallResponse is the body returned by POST /mcp/v1/call. Exactly one of
// Output and Error is populated.
type CallResponse struct {
	ToolName string          `json:"tool_name"`
	Output   json.RawMessage `json:"output,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// IsError reports whether the response carries a tool-level failure.
func (r *CallResponse) IsError() bool {
	return r.Error != ""
}

// Validate checks a decoded definition for the fields the protocol requires.
func (d *ToolDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("tool definition missing name")
	}
	return nil
}

// Validate checks a decoded call request for the fields the protocol requires.
func (r *CallRequest) Validate() error {
	if r.ToolName == "" {
		return fmt.Errorf("tool_name is required")
	}
	return nil
}

// ParseCallRequest decodes and validates a call request body.
func ParseCallRequest(data []byte) (*CallRequest, error) {
	var req CallRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("could not parse call request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}
