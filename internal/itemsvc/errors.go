package itemsvc

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrUnavailable indicates the item server could not be reached.
	ErrUnavailable = errors.New("item server unavailable")

	// ErrTimeout indicates a request exceeded the configured timeout.
	ErrTimeout = errors.New("item request timed out")

	// ErrMalformed indicates the response body could not be decoded.
	ErrMalformed = errors.New("malformed item response")

	// ErrCanceled indicates the caller gave up on the request.
	ErrCanceled = errors.New("item request canceled")
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("item server returned status %d", e.Code)
	}
	return fmt.Sprintf("item server returned status %d: %s", e.Code, e.Body)
}

// Kind classifies a service error for logs and user-facing failures.
type Kind string

const (
	KindNone        Kind = ""
	KindUnavailable Kind = "unavailable"
	KindTimeout     Kind = "timeout"
	KindStatus      Kind = "status"
	KindMalformed   Kind = "malformed"
	KindCanceled    Kind = "canceled"
	KindUnknown     Kind = "unknown"
)

// KindOf maps any error returned by a Service to its Kind.
func KindOf(err error) Kind {
	var se *StatusError
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrCanceled), errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	case errors.Is(err, ErrMalformed):
		return KindMalformed
	case errors.As(err, &se):
		return KindStatus
	default:
		return KindUnknown
	}
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
