package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidQuery marks malformed caller input, the only error class that
// reaches the caller as a hard failure.
var ErrInvalidQuery = errors.New("invalid query")

// Well-known provider failure reasons.
const (
	ReasonTimeout     = "timeout"
	ReasonStatus      = "status"
	ReasonDecode      = "decode"
	ReasonUnreachable = "unreachable"
	ReasonBreakerOpen = "breaker open"
)

// ProviderError reports a single source failure. It is recorded in the
// aggregation outcome and never propagated to the caller.
type ProviderError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Reason)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// FailureReason maps an adapter error onto the reason recorded in the
// outcome. Typed provider errors keep their own reason.
func FailureReason(err error) string {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Reason
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	return ReasonUnreachable
}
