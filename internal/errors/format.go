package errors

import "encoding/json"

// Envelope is the JSON error shape returned by the MCP/CLI boundary.
type Envelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

// ToEnvelope converts any error into the MCP error envelope shape. Errors
// that are not *Error get the generic "EXTERNAL" kind, since every caller
// of this function sits at a boundary talking to something outside the
// engine (CLI, MCP transport).
func ToEnvelope(err error) Envelope {
	if err == nil {
		return Envelope{}
	}
	e, ok := err.(*Error)
	if !ok {
		return Envelope{Code: string(KindExternal), Message: err.Error()}
	}
	env := Envelope{Code: e.Code(), Message: e.Message}
	if e.Cause != nil {
		env.Cause = e.Cause.Error()
	}
	return env
}

// FormatJSON renders an error's envelope as JSON, for structured logging
// and RPC error payloads.
func FormatJSON(err error) ([]byte, error) {
	return json.Marshal(ToEnvelope(err))
}

// FormatForCLI renders a short, human-readable line for terminal output.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}
	env := ToEnvelope(err)
	if env.Cause != "" {
		return "error [" + env.Code + "]: " + env.Message + " (" + env.Cause + ")"
	}
	return "error [" + env.Code + "]: " + env.Message
}
