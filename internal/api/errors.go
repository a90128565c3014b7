package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport means the request never produced an HTTP response.
	ErrTransport = errors.New("booking api: transport failure")

	// ErrMalformedResponse means a 2xx response whose body could not be decoded.
	ErrMalformedResponse = errors.New("booking api: malformed response")
)

// StatusError is a failure reported by the API itself (non-2xx).
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("booking api: http %d", e.StatusCode)
	}
	return fmt.Sprintf("booking api: http %d: %s", e.StatusCode, e.Message)
}

// MessageOf returns the message the API attached to a failure, or "".
// Transport and malformed-body failures never carry one.
func MessageOf(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ""
}

// outcome labels err for metrics.
func outcome(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &statusErr):
		return "api_error"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	default:
		return "transport_error"
	}
}
