package chat

import "fmt"

// Error codes for conversation outcomes that terminate a run.
const (
	ErrModelFailure      = "MODEL_FAILURE"
	ErrTurnLimitExceeded = "TURN_LIMIT_EXCEEDED"
)

// Error represents a conversation-level error. Tool and transport failures
// never surface here; they are folded into the transcript so the model can
// adapt. Only a failing model capability or the turn-limit safety valve
// terminates a conversation.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewModelFailureError creates an error for a failed model invocation.
func NewModelFailureError(cause error) *Error {
	return &Error{
		Code:    ErrModelFailure,
		Message: "model invocation failed",
		Cause:   cause,
	}
}

// NewTurnLimitError creates an error for a conversation that did not
// converge within the configured number of turns.
func NewTurnLimitError(maxTurns int) *Error {
	return &Error{
		Code:    ErrTurnLimitExceeded,
		Message: fmt.Sprintf("conversation did not converge within %d turns", maxTurns),
	}
}
