package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mcp-agent-go/internal/mcp"
)

// ToolInvoker sends tool-call intents to a remote registry. Call never
// returns a Go error: every failure mode is folded into the result so the
// orchestrator can represent it in the transcript.
type ToolInvoker interface {
	Discover(ctx context.Context) ([]mcp.ToolDefinition, error)
	Call(ctx context.Context, intent ToolCallIntent) ToolCallResult
}

// ModelGateway is the external generation capability. It receives the
// transcript plus the tool definitions and returns either plain text or a
// set of tool-call intents.
type ModelGateway interface {
	Complete(ctx context.Context, messages []Message, tools []mcp.ToolDefinition) (*ModelReply, error)
}

// ModelReply is one model turn: assistant text plus zero or more intents.
type ModelReply struct {
	Content   string
	ToolCalls []ToolCallIntent
}

// State identifies a phase of the conversation loop.
type State string

const (
	StateInit          State = "init"
	StateModelTurn     State = "model_turn"
	StateDispatchTools State = "dispatch_tools"
	StateDone          State = "done"
	StateFailed        State = "failed"
)

// validTransitions defines the conversation state machine:
// init -> model_turn -> (dispatch_tools -> model_turn)* -> done.
var validTransitions = map[State][]State{
	StateInit:          {StateModelTurn},
	StateModelTurn:     {StateDispatchTools, StateDone, StateFailed},
	StateDispatchTools: {StateModelTurn, StateFailed},
}

// Config contains the orchestrator configuration.
type Config struct {
	// MaxTurns bounds runaway tool-call cycles. Exceeding it yields a
	// TURN_LIMIT_EXCEEDED error rather than looping forever.
	MaxTurns int
}

// DefaultConfig returns the default orchestrator configuration.
func DefaultConfig() Config {
	return Config{MaxTurns: 8}
}

// Result is the terminal outcome of a conversation.
type Result struct {
	// Content is the model's final text.
	Content string
	// Turns is the number of model invocations it took to get there.
	Turns int
	// Messages is the full transcript, including the seed messages.
	Messages []Message
}

// Orchestrator drives one conversation to completion. An instance owns its
// transcript exclusively and must not be shared across conversations.
type Orchestrator struct {
	gateway ModelGateway
	invoker ToolInvoker
	cfg     Config
	logger  zerolog.Logger

	state State
	newID func() string
}

// NewOrchestrator creates an orchestrator for a single conversation.
func NewOrchestrator(gateway ModelGateway, invoker ToolInvoker, cfg Config, logger zerolog.Logger) *Orchestrator {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = DefaultConfig().MaxTurns
	}
	return &Orchestrator{
		gateway: gateway,
		invoker: invoker,
		cfg:     cfg,
		logger:  logger.With().Str("component", "orchestrator").Logger(),
		state:   StateInit,
		newID:   uuid.NewString,
	}
}

// State returns the current conversation state.
func (o *Orchestrator) State() State {
	return o.state
}

// Run executes the turn loop for one user prompt and returns the model's
// final answer together with the transcript.
func (o *Orchestrator) Run(ctx context.Context, prompt string) (*Result, error) {
	defs := o.discoverTools(ctx)
	messages := []Message{
		SystemMessage(cataloguePrompt(defs)),
		UserMessage(prompt),
	}

	// With no tools advertised the conversation is a single model turn:
	// nothing is ever dispatched, even if the model emits intents anyway.
	if len(defs) == 0 {
		return o.runToolless(ctx, messages)
	}

	for turn := 1; turn <= o.cfg.MaxTurns; turn++ {
		o.transition(StateModelTurn)

		reply, err := o.gateway.Complete(ctx, messages, defs)
		if err != nil {
			o.transition(StateFailed)
			o.logger.Error().
				Err(err).
				Int("turn", turn).
				Msg("Model invocation failed")
			return nil, NewModelFailureError(err)
		}

		if len(reply.ToolCalls) == 0 {
			messages = append(messages, AssistantMessage(reply.Content, nil))
			o.transition(StateDone)
			o.logger.Debug().
				Int("turns", turn).
				Msg("Conversation complete")
			return &Result{Content: reply.Content, Turns: turn, Messages: messages}, nil
		}

		intents := o.assignCallIDs(reply.ToolCalls)
		messages = append(messages, AssistantMessage(reply.Content, intents))

		o.transition(StateDispatchTools)
		for _, result := range o.dispatch(ctx, intents) {
			messages = append(messages, ToolMessage(result))
		}
	}

	o.transition(StateFailed)
	o.logger.Warn().
		Int("max_turns", o.cfg.MaxTurns).
		Msg("Turn limit exceeded")
	return nil, NewTurnLimitError(o.cfg.MaxTurns)
}

// runToolless completes a conversation without tools. The single model reply
// is terminal; intents the model emits regardless are discarded, not
// dispatched.
func (o *Orchestrator) runToolless(ctx context.Context, messages []Message) (*Result, error) {
	o.transition(StateModelTurn)

	reply, err := o.gateway.Complete(ctx, messages, nil)
	if err != nil {
		o.transition(StateFailed)
		o.logger.Error().
			Err(err).
			Msg("Model invocation failed")
		return nil, NewModelFailureError(err)
	}

	if len(reply.ToolCalls) > 0 {
		o.logger.Warn().
			Int("intent_count", len(reply.ToolCalls)).
			Msg("Model emitted tool calls without advertised tools, ignoring")
	}

	messages = append(messages, AssistantMessage(reply.Content, nil))
	o.transition(StateDone)
	o.logger.Debug().
		Int("turns", 1).
		Msg("Conversation complete")
	return &Result{Content: reply.Content, Turns: 1, Messages: messages}, nil
}

// discoverTools fetches the tool definitions from the registry. Discovery
// failure degrades to a toolless conversation, it never aborts the run.
func (o *Orchestrator) discoverTools(ctx context.Context) []mcp.ToolDefinition {
	defs, err := o.invoker.Discover(ctx)
	if err != nil {
		o.logger.Warn().
			Err(err).
			Msg("Tool discovery failed, proceeding without tools")
		return nil
	}
	o.logger.Debug().
		Int("tool_count", len(defs)).
		Msg("Discovered tools")
	return defs
}

// assignCallIDs synthesizes a unique identifier for every intent the model
// emitted without one. IDs reused by the model across turns are not
// deduplicated.
func (o *Orchestrator) assignCallIDs(intents []ToolCallIntent) []ToolCallIntent {
	assigned := make([]ToolCallIntent, len(intents))
	for i, intent := range intents {
		if intent.ID == "" {
			intent.ID = o.newID()
		}
		assigned[i] = intent
	}
	return assigned
}

// dispatch invokes all intents of one turn. Intents are independent of each
// other, so they run concurrently; results are keyed by index to keep the
// transcript in the model's emission order.
func (o *Orchestrator) dispatch(ctx context.Context, intents []ToolCallIntent) []ToolCallResult {
	results := make([]ToolCallResult, len(intents))

	var wg sync.WaitGroup
	for i, intent := range intents {
		wg.Add(1)
		go func(i int, intent ToolCallIntent) {
			defer wg.Done()
			results[i] = o.invoker.Call(ctx, intent)
		}(i, intent)
	}
	wg.Wait()

	for _, result := range results {
		if result.IsError() {
			o.logger.Debug().
				Str("call_id", result.ID).
				Str("tool_name", result.Name).
				Str("error", result.Err).
				Msg("Tool call failed")
		}
	}
	return results
}

func (o *Orchestrator) transition(to State) {
	allowed := false
	for _, candidate := range validTransitions[o.state] {
		if candidate == to {
			allowed = true
			break
		}
	}
	if !allowed {
		o.logger.Error().
			Str("from", string(o.state)).
			Str("to", string(to)).
			Msg("Invalid state transition")
	}
	o.state = to
}

// cataloguePrompt builds the system message advertising the discovered tools
// to the model. With no tools available the model gets a plain assistant
// prompt and the conversation completes in a single turn.
func cataloguePrompt(defs []mcp.ToolDefinition) string {
	if len(defs) == 0 {
		return "You are a helpful assistant."
	}

	catalogue, err := json.Marshal(defs)
	if err != nil {
		return "You are a helpful assistant."
	}
	return fmt.Sprintf(`You are a helpful assistant.
You have access to tools to help answer user questions.
When a tool can answer the user's question, respond by calling that tool.
Otherwise, answer normally.
Here are the tool definitions: %s`, catalogue)
}
