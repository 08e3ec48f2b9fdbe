package ports

import (
	"context"
	"time"
)

// EmailMessage is one outbound email to a single address.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends email. Implementations return an errs.DeliveryTransientError
// for failures worth retrying; every other error is treated as permanent.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// SendRegistry remembers which notifications were already emailed so a retry
// after a crash can skip the duplicate send. It is best effort: lookups that
// fail report "not sent".
type SendRegistry interface {
	WasSent(ctx context.Context, notificationID string) bool
	MarkSent(ctx context.Context, notificationID string, ttl time.Duration)
}
