package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// echoTool is a minimal tool for registry tests.
type echoTool struct {
	name string
}

type echoArgs struct {
	Input string `json:"input" validate:"required"`
}

func (t *echoTool) Name() string        { return t.name }
func (t *echoTool) Description() string { return "Echoes its input back." }

func (t *echoTool) Schema() json.RawMessage {
	return SchemaFor(&echoArgs{})
}

func (t *echoTool) Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	var params echoArgs
	if err := DecodeArgs(args, &params); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]string{"echo": params.Input})
}

func TestRegistry_InvokeUnknownTool(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())

	_, err := registry.Invoke(context.Background(), "delete_universe", nil)
	if err == nil {
		t.Fatal("Expected error for unknown tool")
	}

	var toolErr *Error
	if !errors.As(err, &toolErr) {
		t.Fatalf("Expected *tools.Error, got %T", err)
	}

	if toolErr.Code != ErrToolNotFound {
		t.Errorf("Expected code %s, got %s", ErrToolNotFound, toolErr.Code)
	}

	if toolErr.Error() != "tool not found" {
		t.Errorf("Expected message 'tool not found', got %q", toolErr.Error())
	}
}

func TestRegistry_InvokeDecodesAndValidatesArgs(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	registry.Register(&echoTool{name: "echo"})

	output, err := registry.Invoke(context.Background(), "echo", json.RawMessage(`{"input":"hello"}`))
	if err != nil {
		t.Fatalf("Failed to invoke tool: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(output, &decoded); err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if decoded["echo"] != "hello" {
		t.Errorf("Expected echo 'hello', got %q", decoded["echo"])
	}

	// Missing required field surfaces as a typed invalid-arguments error.
	_, err = registry.Invoke(context.Background(), "echo", json.RawMessage(`{}`))
	var toolErr *Error
	if !errors.As(err, &toolErr) {
		t.Fatalf("Expected *tools.Error, got %T", err)
	}
	if toolErr.Code != ErrInvalidArguments {
		t.Errorf("Expected code %s, got %s", ErrInvalidArguments, toolErr.Code)
	}
}

func TestRegistry_DefinitionsIdempotent(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	registry.Register(&echoTool{name: "echo"})
	registry.Register(&echoTool{name: "shout"})

	first := registry.Definitions()
	second := registry.Definitions()

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected repeated Definitions calls to return identical lists")
	}

	if len(first) != 2 {
		t.Fatalf("Expected 2 definitions, got %d", len(first))
	}
	if first[0].Name != "echo" || first[1].Name != "shout" {
		t.Errorf("Expected registration order [echo shout], got [%s %s]", first[0].Name, first[1].Name)
	}
}

func TestRegistry_EmptyDefinitions(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())

	defs := registry.Definitions()
	if len(defs) != 0 {
		t.Errorf("Expected empty definitions, got %d", len(defs))
	}
}

func TestRegistry_ConcurrentInvoke(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())
	registry.Register(&echoTool{name: "echo"})

	const goroutines = 10
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			args := json.RawMessage(fmt.Sprintf(`{"input":"msg-%d"}`, i))
			if _, err := registry.Invoke(context.Background(), "echo", args); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent invoke failed: %v", err)
	}
}

func TestSchemaFor_InlinesObjectSchema(t *testing.T) {
	schema := SchemaFor(&echoArgs{})

	var decoded map[string]any
	if err := json.Unmarshal(schema, &decoded); err != nil {
		t.Fatalf("Failed to decode schema: %v", err)
	}

	if decoded["type"] != "object" {
		t.Errorf("Expected object schema, got type %v", decoded["type"])
	}

	props, ok := decoded["properties"].(map[string]any)
	if !ok {
		t.Fatal("Expected properties object in schema")
	}
	if _, exists := props["input"]; !exists {
		t.Error("Expected input property in schema")
	}
}
