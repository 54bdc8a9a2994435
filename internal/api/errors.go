package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error is the single failure shape the gateway exposes. Transport failures
// (no response at all) and application failures (non-2xx responses) collapse
// into it so callers need one handling path. Status is zero when no response
// reached the client.
type Error struct {
	Message string
	Status  int
	Body    []byte
}

func (e *Error) Error() string {
	return e.Message
}

// newStatusError builds an Error from a non-2xx response, preferring a
// structured {"message": ...} body over raw text.
func newStatusError(status int, body []byte) *Error {
	var payload struct {
		Message     string `json:"message"`
		Description string `json:"description"`
		ErrorText   string `json:"error"`
	}

	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			msg = payload.Message
		case payload.Description != "":
			msg = payload.Description
		case payload.ErrorText != "":
			msg = payload.ErrorText
		}
	}
	if msg == "" {
		if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
			msg = fmt.Sprintf("api error (%d): %s", status, trimmed)
		} else {
			msg = fmt.Sprintf("api error (%d)", status)
		}
	}

	return &Error{Message: msg, Status: status, Body: body}
}

// newTransportError wraps a failure where no response was received.
func newTransportError(err error) *Error {
	msg := "network or server error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Message: msg}
}
