package talenthub

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTimeout marks a request aborted by its client-side deadline.
	ErrTimeout = errors.New("request timed out")
	// ErrAuth marks a 401 on a protected endpoint. Callers clear the local
	// session and send the user back to login when they see it.
	ErrAuth = errors.New("authentication required")
)

// APIError is a non-2xx response normalized to a single human-readable message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == 401 {
		return ErrAuth
	}

	return nil
}

// Generic messages keyed by status code, used when the response body carries
// no parseable detail.
var statusMessages = map[int]string{
	400: "Please check your input and try again.",
	401: "Please login to access this feature.",
	403: "You don't have permission to access this resource.",
	404: "The requested resource was not found.",
	409: "This record already exists. Please check your input.",
	413: "File is too large. Maximum size is 5MB.",
	422: "Some fields look invalid. Please review and retry.",
	429: "Too many requests. Please wait a moment and try again.",
	500: "Something went wrong on our end. Please try again later.",
	503: "Service is temporarily unavailable. Please try again later.",
}

const fallbackMessage = "Something went wrong. Please try again."

// validationEntry is a single structured validation failure.
type validationEntry struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// apiError builds an APIError from a response body. The body may be a bare
// JSON string, an object with one of error|detail|message|msg (tried in that
// order), or a list of {loc, msg} validation entries. Anything else falls
// back to the status-code table.
func apiError(status int, body []byte) *APIError {
	message := messageFromBody(body)
	if message == "" {
		message = statusMessages[status]
	}
	if message == "" {
		message = fallbackMessage
	}

	return &APIError{StatusCode: status, Message: message}
}

func messageFromBody(body []byte) string {
	body = []byte(strings.TrimSpace(string(body)))
	if len(body) == 0 {
		return ""
	}

	var bare string
	if err := json.Unmarshal(body, &bare); err == nil {
		return strings.TrimSpace(bare)
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(body, &object); err == nil {
		for _, key := range []string{"error", "detail", "message", "msg"} {
			raw, ok := object[key]
			if !ok {
				continue
			}
			if msg := messageFromValue(raw); msg != "" {
				return msg
			}
		}
		return ""
	}

	var entries []validationEntry
	if err := json.Unmarshal(body, &entries); err == nil {
		return joinValidationEntries(entries)
	}

	return ""
}

// messageFromValue handles a field that is either a plain string or a nested
// validation list (the usual shape of a structured 422 detail).
func messageFromValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var entries []validationEntry
	if err := json.Unmarshal(raw, &entries); err == nil {
		return joinValidationEntries(entries)
	}

	return ""
}

func joinValidationEntries(entries []validationEntry) string {
	msgs := make([]string, 0, len(entries))
	for _, entry := range entries {
		msg := strings.TrimSpace(entry.Msg)
		if msg == "" {
			continue
		}
		if len(entry.Loc) > 0 {
			if field, ok := entry.Loc[len(entry.Loc)-1].(string); ok && field != "" {
				msg = fmt.Sprintf("%s: %s", field, msg)
			}
		}
		msgs = append(msgs, msg)
	}

	return strings.Join(msgs, "; ")
}
