package connection

import (
	"encoding/json"
	"errors"
)

// Messages used when the server gives no better one.
const (
	MsgNoResponse    = "No response received from server"
	MsgRequestFailed = "Request failed"
)

// Kind classifies a normalized API failure.
type Kind int

const (
	// KindServer is a non-2xx response, or a 2xx one whose payload is
	// unusable.
	KindServer Kind = iota + 1
	// KindUnreachable is a request that got no response at all.
	KindUnreachable
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindServer:
		return "server"
	case KindUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// APIError is the normalized error for a request that was sent.
// Error() returns only the human-readable message.
type APIError struct {
	Kind    Kind
	Message string
	// Status is the HTTP status for KindServer, 0 otherwise. It is kept for
	// logs and tests; callers should branch on Message or Kind.
	Status int
	Cause  error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the transport error behind an unreachable failure.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Message returns the text to show the user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// IsUnreachable reports whether err is a request that got no response.
func IsUnreachable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnreachable
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// serverMessage extracts the message field of an error body.
//
// A string message is used verbatim, including the empty string. A body
// that is not a JSON object, or a message that is missing, null or not a
// string, yields MsgRequestFailed.
func serverMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return MsgRequestFailed
	}

	raw, ok := fields["message"]
	if !ok {
		return MsgRequestFailed
	}

	var msg *string
	if err := json.Unmarshal(raw, &msg); err != nil || msg == nil {
		return MsgRequestFailed
	}
	return *msg
}
