package tools

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Tool is the interface that all tools must implement.
type Tool interface {
	// Name returns the name of the tool, unique within a registry.
	Name() string

	// Description returns the description of the tool, to be shown to the model.
	Description() string

	// Schema returns the JSON schema describing the tool's arguments.
	Schema() json.RawMessage

	// Call executes the tool with the given arguments and context.
	// The arguments and return value are JSON-encoded data.
	Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error)
}

// SchemaFor derives the parameter schema for a tool from its args struct.
// The schema is inlined (no $ref/$defs) so it can be published as-is in a
// tool definition.
func SchemaFor(args any) json.RawMessage {
	reflector := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(args)
	schema.Version = ""

	data, err := json.Marshal(schema)
	if err != nil {
		// A schema that cannot marshal means the args struct itself is
		// broken, which must fail at startup, not at discovery time.
		panic(err)
	}
	return data
}
