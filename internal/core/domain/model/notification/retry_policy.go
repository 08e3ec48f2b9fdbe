package notification

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
)

// RetryPolicy bounds email delivery attempts. The delay before attempt n+1
// is BaseBackoff * 2^(n-1), capped at MaxBackoff.
type RetryPolicy struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// NewRetryPolicy creates a policy. maxAttempts must be positive and
// baseBackoff must not exceed maxBackoff.
func NewRetryPolicy(maxAttempts int, baseBackoff, maxBackoff time.Duration) (RetryPolicy, error) {
	var attemptsErr, backoffErr error
	if maxAttempts < 1 {
		attemptsErr = errs.NewValueIsInvalidErrorWithCause("maxAttempts", fmt.Errorf("%d is less than 1", maxAttempts))
	}
	if baseBackoff <= 0 || maxBackoff < baseBackoff {
		backoffErr = errs.NewValueIsInvalidErrorWithCause(
			"backoff", fmt.Errorf("need 0 < base (%s) <= max (%s)", baseBackoff, maxBackoff),
		)
	}
	if err := errors.Join(attemptsErr, backoffErr); err != nil {
		return RetryPolicy{}, err
	}

	return RetryPolicy{MaxAttempts: maxAttempts, BaseBackoff: baseBackoff, MaxBackoff: maxBackoff}, nil
}

// Backoff returns the wait after the given number of failed attempts.
func (p RetryPolicy) Backoff(attempts int) time.Duration {
	if attempts < 1 {
		return 0
	}

	d := p.BaseBackoff
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= p.MaxBackoff || d <= 0 {
			return p.MaxBackoff
		}
	}
	return min(d, p.MaxBackoff)
}

// Exhausted reports whether no attempt is left.
func (p RetryPolicy) Exhausted(attempts int) bool {
	return attempts >= p.MaxAttempts
}
