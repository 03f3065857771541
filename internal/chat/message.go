package chat

import "encoding/json"

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message represents a single entry in a conversation transcript. The
// transcript is append-only and ordered: a Tool message always follows the
// Assistant message whose intent it answers.
type Message struct {
	Role       Role             `json:"role"`
	Content    string           `json:"content"`
	ToolCalls  []ToolCallIntent `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
}

// ToolCallIntent is a model-issued request to invoke one tool. The ID is
// unique within a single model turn; when the model omits it, the
// orchestrator synthesizes one before dispatch.
type ToolCallIntent struct {
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolCallResult is the outcome of one intent. Exactly one of Output and Err
// is populated.
type ToolCallResult struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Output json.RawMessage `json:"output,omitempty"`
	Err    string          `json:"error,omitempty"`
}

// IsError reports whether the result carries a failure.
func (r *ToolCallResult) IsError() bool {
	return r.Err != ""
}

// SystemMessage builds a system message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant message carrying the model's text and
// any tool-call intents it emitted.
func AssistantMessage(content string, toolCalls []ToolCallIntent) Message {
	return Message{Role: RoleAssistant, Content: content, ToolCalls: toolCalls}
}

// ToolMessage renders a tool-call result as a conversation message. Failures
// are serialized as an error payload so the model can react to them in its
// next turn.
func ToolMessage(result ToolCallResult) Message {
	content := string(result.Output)
	if result.IsError() {
		data, _ := json.Marshal(map[string]string{"error": result.Err})
		content = string(data)
	}
	return Message{Role: RoleTool, Content: content, ToolCallID: result.ID}
}
