package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response wrapper every endpoint returns.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(env)
	if err != nil {
		// best-effort error response; avoid writing partial JSON
		http.Error(w, `{"success":false,"error":"encode error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

// OK writes a success envelope with the given payload.
func OK(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{Success: true, Data: data})
}

// Fail writes a failure envelope carrying only an error message.
func Fail(w http.ResponseWriter, status int, msg string) {
	write(w, status, Envelope{Success: false, Error: msg})
}

// FailDetails writes a failure envelope with per-field details, used for
// schema validation responses.
func FailDetails(w http.ResponseWriter, status int, msg string, details any) {
	write(w, status, Envelope{Success: false, Error: msg, Details: details})
}

// FailErr maps an arbitrary error to the generic failure envelope. A nil or
// message-less error becomes "Unknown error" so the client always gets a string.
func FailErr(w http.ResponseWriter, status int, err error) {
	msg := "Unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	Fail(w, status, msg)
}
