package mcpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"mcp-agent-go/internal/chat"
	"mcp-agent-go/internal/mcp"
)

// Client talks to a remote tool registry over the MCP HTTP protocol. It
// performs a single attempt per request: no retries, no backoff. The caller
// decides how to represent failures.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a client for the registry at baseURL. The timeout bounds both
// discovery and invocation calls; expiry surfaces as a transport error.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "mcp_client").Logger(),
	}
}

// Discover fetches the tool definitions published by the registry. Transport
// and decode failures are returned as errors; the caller decides fallback.
func (c *Client) Discover(ctx context.Context) ([]mcp.ToolDefinition, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/mcp/v1/tools", nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch tool definitions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var list mcp.ToolListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("could not decode tool definitions: %w", err)
	}

	for i := range list.Tools {
		if err := list.Tools[i].Validate(); err != nil {
			return nil, fmt.Errorf("malformed tool definition at index %d: %w", i, err)
		}
	}

	c.logger.Debug().
		Int("tool_count", len(list.Tools)).
		Msg("Fetched tool definitions")
	return list.Tools, nil
}

// Call sends one intent to the registry and folds the outcome into a
// ToolCallResult. Transport failures, non-2xx statuses, and server-reported
// tool errors are all represented in-band; Call never returns a Go error.
func (c *Client) Call(ctx context.Context, intent chat.ToolCallIntent) chat.ToolCallResult {
	result := chat.ToolCallResult{ID: intent.ID, Name: intent.Name}

	body, err := json.Marshal(mcp.CallRequest{
		ToolName:  intent.Name,
		Arguments: intent.Arguments,
	})
	if err != nil {
		result.Err = fmt.Sprintf("could not encode call request: %v", err)
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mcp/v1/call", bytes.NewReader(body))
	if err != nil {
		result.Err = fmt.Sprintf("could not create request: %v", err)
		return result
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Err = fmt.Sprintf("could not call tool: %v", err)
		return result
	}
	defer resp.Body.Close()

	var callResp mcp.CallResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&callResp)

	// A 4xx/5xx still carries the error envelope when the registry produced
	// it; fall back to the bare status only for bodies we cannot decode.
	switch {
	case decodeErr == nil && callResp.IsError():
		result.Err = callResp.Error
	case decodeErr == nil && resp.StatusCode == http.StatusOK:
		result.Output = callResp.Output
	case decodeErr == nil:
		result.Err = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
	default:
		result.Err = fmt.Sprintf("could not decode call response: %v", decodeErr)
	}

	if result.IsError() {
		c.logger.Debug().
			Str("tool_name", intent.Name).
			Str("call_id", intent.ID).
			Str("error", result.Err).
			Msg("Tool call returned error")
	}
	return result
}
