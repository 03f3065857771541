package clock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mcp-agent-go/internal/tools"
)

// Args represents the arguments for the clock tool. The tool takes none.
type Args struct{}

// Output is the payload returned by the clock tool.
type Output struct {
	CurrentTimeUTC string `json:"current_time_utc"`
}

// ClockTool reports the current time in UTC.
type ClockTool struct {
	now func() time.Time
}

// NewClockTool creates a new ClockTool instance reading the system clock.
func NewClockTool() *ClockTool {
	return &ClockTool{now: time.Now}
}

// Name returns the name of the tool.
func (t *ClockTool) Name() string {
	return "get_current_time"
}

// Description returns the description of the tool.
func (t *ClockTool) Description() string {
	return "Get the current time in UTC. Useful for answering questions about the current time or date."
}

// Schema returns the parameter schema of the tool.
func (t *ClockTool) Schema() json.RawMessage {
	return tools.SchemaFor(&Args{})
}

// Call executes the clock tool. The arguments are ignored since the tool
// takes none.
func (t *ClockTool) Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	output := Output{
		CurrentTimeUTC: t.now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("could not encode output: %w", err)
	}
	return data, nil
}
