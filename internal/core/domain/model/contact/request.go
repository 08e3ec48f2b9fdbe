// Package contact models a user asking another user to get in touch. The
// addressee accepts or rejects it exactly once.
package contact

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrRequestIsNotConstructed is returned for a Request built as a literal.
var ErrRequestIsNotConstructed = errors.New("contact Request must be created via NewRequest constructor")

// Status is the state of a contact request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ParseStatus converts a stored value into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

// Validate checks that s is a known status.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid contact request status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// Request is one user asking another to get in touch.
type Request struct {
	id         kernel.UUID
	fromUserID kernel.UUID
	toUserID   kernel.UUID
	message    string
	status     Status
	createdAt  time.Time
	resolvedAt *time.Time

	isConstructed bool
}

// NewRequest creates a pending request. Users cannot contact themselves.
func NewRequest(fromUserID, toUserID kernel.UUID, message string, at time.Time) (*Request, error) {
	return RestoreRequest(kernel.NewUUID(), fromUserID, toUserID, message, StatusPending, at, nil)
}

// RestoreRequest rebuilds a request from storage.
func RestoreRequest(
	id, fromUserID, toUserID kernel.UUID,
	message string,
	status Status,
	createdAt time.Time,
	resolvedAt *time.Time,
) (*Request, error) {
	message = strings.TrimSpace(message)

	var msgErr, selfErr error
	if message == "" {
		msgErr = errs.NewValueIsRequiredError("message")
	}
	if fromUserID.IsEqual(toUserID) {
		selfErr = errs.NewValueIsInvalidErrorWithCause("toUserID", errors.New("a user cannot contact themselves"))
	}

	if err := errors.Join(
		id.Validate(),
		fromUserID.Validate(),
		toUserID.Validate(),
		status.Validate(),
		msgErr,
		selfErr,
	); err != nil {
		return nil, err
	}

	return &Request{
		id:            id,
		fromUserID:    fromUserID,
		toUserID:      toUserID,
		message:       message,
		status:        status,
		createdAt:     createdAt,
		resolvedAt:    resolvedAt,
		isConstructed: true,
	}, nil
}

// Validate reports whether the request came from a constructor.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) ID() kernel.UUID         { return r.id }
func (r *Request) FromUserID() kernel.UUID { return r.fromUserID }
func (r *Request) ToUserID() kernel.UUID   { return r.toUserID }
func (r *Request) Message() string         { return r.message }
func (r *Request) Status() Status          { return r.status }
func (r *Request) CreatedAt() time.Time    { return r.createdAt }
func (r *Request) ResolvedAt() *time.Time  { return r.resolvedAt }

// Resolve accepts or rejects a pending request. Only the addressee (or an
// admin) may resolve it.
func (r *Request) Resolve(actor kernel.Actor, accepted bool, at time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}

	target := StatusRejected
	if accepted {
		target = StatusAccepted
	}

	if !actor.IsAdmin() && !actor.Is(r.toUserID) {
		return errs.NewForbiddenError(actor.ID().String(), fmt.Sprintf("resolve contact request %s", r.id))
	}
	if r.status != StatusPending {
		return errs.NewInvalidTransitionError("contact request", r.status.String(), target.String())
	}

	r.status = target
	r.resolvedAt = &at
	return nil
}
