package tools

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeArgs unmarshals raw tool arguments into out and checks the result
// against its `validate` tags. Both failure modes yield a typed
// invalid-arguments error so callers can surface them in-band.
func DecodeArgs(raw json.RawMessage, out any) error {
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return NewInvalidArgumentsError(fmt.Sprintf("could not parse arguments: %v", err))
		}
	}
	if err := validate.Struct(out); err != nil {
		return NewInvalidArgumentsError(err.Error())
	}
	return nil
}
