package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error is a remote rejection: the backend answered, but with a non-2xx
// status. Message holds the server-provided reason when the body carried
// one ("message" or "detail"), otherwise it is empty.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// StatusOf extracts the HTTP status from a remote rejection. It returns
// zero for transport or decode failures, where no response status exists.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// MessageOf extracts the server-provided reason, if any.
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// newError decodes the failure body, preferring "message" over "detail".
// Malformed or empty bodies yield an Error with no message.
func newError(statusCode int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return &Error{StatusCode: statusCode, Message: payload.Message}
		}
		if payload.Detail != "" {
			return &Error{StatusCode: statusCode, Message: payload.Detail}
		}
	}
	return &Error{StatusCode: statusCode}
}
