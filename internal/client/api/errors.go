package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrTransport marks failures where no usable response was obtained:
	// connection errors, timeouts, malformed bodies.
	ErrTransport = errors.New("transport error")

	// ErrUnauthorized matches a *StatusError carrying HTTP 401.
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldError holds the messages reported for one input field.
type FieldError struct {
	Field    string
	Messages []string
}

// ValidationError is returned for HTTP 422 responses.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

// Messages flattens all field messages in response order.
func (e *ValidationError) Messages() []string {
	var out []string
	for _, f := range e.Fields {
		out = append(out, f.Messages...)
	}
	return out
}

func (e *ValidationError) Error() string {
	if msgs := e.Messages(); len(msgs) > 0 {
		return strings.Join(msgs, "\n")
	}
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// StatusError is returned for non-2xx responses other than 422.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("http %d: %s", e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == http.StatusUnauthorized
}
