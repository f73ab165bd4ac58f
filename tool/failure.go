package tool

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	msgInvalidArguments = "invalid arguments"
	msgNoResult         = "tool returned no result"
)

var failureJSON = []byte(`{}`)

// Failure is the structured error result handed back to the model when a tool
// call is refused or fails. It is a value, not a Go error, because the
// conversation recovers from it.
type Failure struct {
	Message string
	// Allowed is set when the tool was refused, so the model can self-correct.
	Allowed []string
}

func (f Failure) Error() string {
	return f.Message
}

func notAllowed(name string, allowed []string) Failure {
	return Failure{Message: fmt.Sprintf("tool '%s' not allowed", name), Allowed: allowed}
}

// MarshalJSON renders the failure as {"error": ..., "allowed": [...]}.
func (f Failure) MarshalJSON() ([]byte, error) {
	result, err := sjson.SetBytes(failureJSON, "error", f.Message)
	if err != nil {
		return nil, err
	}
	if f.Allowed != nil {
		result, err = sjson.SetBytes(result, "allowed", f.Allowed)
	}
	return result, err
}

// UnmarshalJSON reads the shape produced by MarshalJSON.
func (f *Failure) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}
	msg := gjson.GetBytes(data, "error")
	if !msg.Exists() {
		return fmt.Errorf("missing error field: %s", data)
	}
	f.Message = msg.String()
	f.Allowed = nil
	if allowed := gjson.GetBytes(data, "allowed"); allowed.IsArray() {
		if err := json.Unmarshal([]byte(allowed.Raw), &f.Allowed); err != nil {
			return err
		}
	}
	return nil
}

// IsFailure reports whether a tool result is a Failure.
func IsFailure(result any) bool {
	switch result.(type) {
	case Failure, *Failure:
		return true
	default:
		return false
	}
}
