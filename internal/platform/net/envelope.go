package net

import (
	"encoding/json"
	"net/http"

	perr "skillproof/internal/platform/errors"
)

// Envelope wraps every JSON response
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Reply wraps data under status; zero status means 200
func Reply(status int, data any, reqID string) Envelope {
	if status == 0 {
		status = http.StatusOK
	}
	return Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// Failure renders err with the status its code maps to; the cause chain is not exposed
func Failure(err error, reqID string) Envelope {
	if err == nil {
		return Reply(http.StatusOK, nil, reqID)
	}
	wire := perr.WireFrom(err)
	env := Reply(perr.HTTPStatus(err), nil, reqID)
	env.Code, env.Error, env.Field = wire.Code, wire.Message, wire.Field
	return env
}

// Write sends env as JSON under its own status code
func Write(w http.ResponseWriter, env Envelope) {
	if env.RequestID != "" {
		w.Header().Set("X-Request-ID", env.RequestID)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(env.StatusCode)
	if env.StatusCode == http.StatusNoContent {
		return
	}
	_ = json.NewEncoder(w).Encode(env)
}
