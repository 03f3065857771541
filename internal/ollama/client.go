package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"mcp-agent-go/internal/chat"
	"mcp-agent-go/internal/mcp"
)

// Client implements chat.ModelGateway against the Ollama /api/chat API.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ chat.ModelGateway = (*Client)(nil)

// New creates a gateway for the Ollama server at baseURL using the named model.
func New(baseURL, model string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "ollama_gateway").Logger(),
	}
}

// apiMessage mirrors the Ollama chat message wire format.
type apiMessage struct {
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	ToolCalls []apiToolCall `json:"tool_calls,omitempty"`
}

type apiToolCall struct {
	ID       string          `json:"id,omitempty"`
	Function apiFunctionCall `json:"function"`
}

type apiFunctionCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type apiTool struct {
	Type     string      `json:"type"`
	Function apiFunction `json:"function"`
}

type apiFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type chatRequest struct {
	Model    string       `json:"model"`
	Messages []apiMessage `json:"messages"`
	Tools    []apiTool    `json:"tools,omitempty"`
	Stream   bool         `json:"stream"`
}

type chatResponse struct {
	Message apiMessage `json:"message"`
	Done    bool       `json:"done"`
}

// Complete sends the transcript plus the tool definitions to Ollama and maps
// the response back into a ModelReply. Any failure here is a model failure:
// the orchestrator does not swallow it.
func (c *Client) Complete(ctx context.Context, messages []chat.Message, tools []mcp.ToolDefinition) (*chat.ModelReply, error) {
	request := chatRequest{
		Model:    c.model,
		Messages: toAPIMessages(messages),
		Tools:    toAPITools(tools),
		Stream:   false,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("could not encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().
		Str("model", c.model).
		Int("message_count", len(messages)).
		Int("tool_count", len(tools)).
		Msg("Requesting model completion")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not reach model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, detail)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("could not decode chat response: %w", err)
	}

	reply := &chat.ModelReply{Content: chatResp.Message.Content}
	for _, call := range chatResp.Message.ToolCalls {
		// Ollama does not assign call IDs; the orchestrator synthesizes
		// them before dispatch.
		reply.ToolCalls = append(reply.ToolCalls, chat.ToolCallIntent{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return reply, nil
}

func toAPIMessages(messages []chat.Message) []apiMessage {
	out := make([]apiMessage, 0, len(messages))
	for _, msg := range messages {
		converted := apiMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
		for _, call := range msg.ToolCalls {
			converted.ToolCalls = append(converted.ToolCalls, apiToolCall{
				ID: call.ID,
				Function: apiFunctionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}
		out = append(out, converted)
	}
	return out
}

func toAPITools(tools []mcp.ToolDefinition) []apiTool {
	out := make([]apiTool, 0, len(tools))
	for _, def := range tools {
		out = append(out, apiTool{
			Type: "function",
			Function: apiFunction{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return out
}
