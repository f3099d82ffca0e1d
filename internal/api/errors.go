package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Transport errors. Callers can distinguish a request that timed out from one
// that never reached the server, so the UI can show different messages.
var (
	ErrTimeout    = errors.New("request timed out")
	ErrConnection = errors.New("could not reach the server")
)

// Error is a remote business error: the server answered with a 4xx/5xx status.
// Message carries the server-provided text when the body had one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// classifyTransportError maps a failed http.Client.Do error to one of the
// sentinel transport errors.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}

// statusError builds an Error with a generic fallback message per status when
// the response body carried none.
func statusError(status int, message string) *Error {
	if message == "" {
		switch {
		case status == 401 || status == 403:
			message = "not authorized"
		case status == 404:
			message = "not found"
		case status >= 500:
			message = "internal server error"
		}
	}
	return &Error{Status: status, Message: message}
}
