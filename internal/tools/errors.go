package tools

// Error codes for tool operations
const (
	ErrToolNotFound     = "tool_not_found"
	ErrInvalidArguments = "invalid_arguments"
)

// Error represents a tool execution error.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// NewToolNotFoundError creates an error for a tool name the registry does not know.
func NewToolNotFoundError() *Error {
	return &Error{Code: ErrToolNotFound, Message: "tool not found"}
}

// NewInvalidArgumentsError creates an error for arguments that failed to
// decode or validate against the tool's schema.
func NewInvalidArgumentsError(message string) *Error {
	return &Error{Code: ErrInvalidArguments, Message: message}
}
