package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// GatewayErrorKind classifies inference service failures.
type GatewayErrorKind string

const (
	GatewayUnreachable GatewayErrorKind = "unreachable"
	GatewayTimeout     GatewayErrorKind = "timeout"
	GatewayStatus      GatewayErrorKind = "status"
)

// GatewayError is the typed error returned by every Generator adapter when
// the inference service is unreachable, times out, or answers with a
// non-success status. It is always surfaced to the caller.
type GatewayError struct {
	Kind       GatewayErrorKind
	Provider   string
	StatusCode int // set for Kind == GatewayStatus
	Err        error
}

func (e *GatewayError) Error() string {
	switch e.Kind {
	case GatewayStatus:
		return fmt.Sprintf("%s gateway: unexpected status %d", e.Provider, e.StatusCode)
	case GatewayTimeout:
		return fmt.Sprintf("%s gateway: request timed out: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s gateway: unreachable: %v", e.Provider, e.Err)
	}
}

func (e *GatewayError) Unwrap() error { return e.Err }

// NewGatewayError classifies err into a GatewayError for the named provider.
// Context deadline errors and net timeouts become GatewayTimeout; everything
// else is GatewayUnreachable.
func NewGatewayError(providerName string, err error) *GatewayError {
	kind := GatewayUnreachable
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = GatewayTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = GatewayTimeout
	}
	return &GatewayError{Kind: kind, Provider: providerName, Err: err}
}

// NewStatusError builds a GatewayError for a non-success HTTP status.
func NewStatusError(providerName string, statusCode int) *GatewayError {
	return &GatewayError{Kind: GatewayStatus, Provider: providerName, StatusCode: statusCode}
}

// IsGatewayError reports whether err is (or wraps) a GatewayError.
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
