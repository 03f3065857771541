package timezone

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mcp-agent-go/internal/tools"
)

// Args represents the arguments for the timezone conversion tool.
type Args struct {
	Time     string `json:"time" validate:"required" jsonschema:"description=Timestamp to convert in RFC3339 format"`
	Timezone string `json:"timezone" validate:"required" jsonschema:"description=Target IANA timezone name such as Europe/Amsterdam"`
}

// Output is the payload returned by the timezone conversion tool.
type Output struct {
	ConvertedTime string `json:"converted_time"`
	Timezone      string `json:"timezone"`
}

// ConvertTool converts an RFC3339 timestamp into another IANA timezone.
type ConvertTool struct{}

// NewConvertTool creates a new ConvertTool instance.
func NewConvertTool() *ConvertTool {
	return &ConvertTool{}
}

// Name returns the name of the tool.
func (t *ConvertTool) Name() string {
	return "convert_time"
}

// Description returns the description of the tool.
func (t *ConvertTool) Description() string {
	return "Convert an RFC3339 timestamp to another IANA timezone. Useful for answering questions about the time in a specific place."
}

// Schema returns the parameter schema of the tool.
func (t *ConvertTool) Schema() json.RawMessage {
	return tools.SchemaFor(&Args{})
}

// Call executes the conversion with the given arguments.
func (t *ConvertTool) Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	var params Args
	if err := tools.DecodeArgs(args, &params); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339, params.Time)
	if err != nil {
		return nil, tools.NewInvalidArgumentsError(fmt.Sprintf("could not parse time %q: %v", params.Time, err))
	}

	location, err := time.LoadLocation(params.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", params.Timezone, err)
	}

	output := Output{
		ConvertedTime: parsed.In(location).Format(time.RFC3339),
		Timezone:      params.Timezone,
	}

	data, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("could not encode output: %w", err)
	}
	return data, nil
}
