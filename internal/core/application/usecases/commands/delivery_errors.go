package commands

import (
	"context"
	"errors"
	"net"
	"net/url"

	"marketplace/internal/pkg/errs"
)

// classifyDeliveryError decides whether a failed send is worth retrying and
// returns a short kind for logs.
func classifyDeliveryError(err error) (bool, string) {
	if err == nil {
		return false, ""
	}

	if errors.Is(err, errs.ErrDeliveryTransient) {
		return true, "transient"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true, "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return false, "context_canceled"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true, "network_timeout"
		}
		return true, "network_error"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true, "network_timeout"
		}
		return true, "network_error"
	}

	return false, "permanent"
}
