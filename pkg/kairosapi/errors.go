package kairosapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
)

// StatusError is a non-2xx reply from the API.
type StatusError struct {
	Operation string
	Status    int
	Message   string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Operation, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Operation, e.Status, e.Message)
}

func (e *StatusError) UpstreamStatus() int {
	return e.Status
}

func (e *StatusError) UpstreamOperation() string {
	return e.Operation
}

// newStatusError maps a rejected call onto the typed error taxonomy, keeping the
// backend message verbatim when it sent one.
func newStatusError(operation string, status int, body []byte, fallback string) error {
	message := extractMessage(body)
	cause := &StatusError{Operation: operation, Status: status, Message: message}
	if message == "" {
		message = fallback
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return pkgerrors.Wrap(codeForStatus(status), cause, message)
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	default:
		return pkgerrors.CodeUpstream
	}
}

func extractMessage(body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	if len(payload.Error) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload.Error, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload.Error, &nested); err == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}
