// Package freelancer models a user's application to sell services. Only an
// admin can decide an application, and only once.
package freelancer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrRequestIsNotConstructed is returned for a Request built as a literal.
var ErrRequestIsNotConstructed = errors.New("freelancer Request must be created via NewRequest constructor")

// RequestStatus is the state of an application.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// ParseRequestStatus converts a stored value into a RequestStatus.
func ParseRequestStatus(s string) (RequestStatus, error) {
	st := RequestStatus(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

// Validate checks that s is a known status.
func (s RequestStatus) Validate() error {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid freelancer request status", string(s)))
	}
}

func (s RequestStatus) String() string {
	return string(s)
}

// Request is a user's application to become a freelancer.
type Request struct {
	id         kernel.UUID
	userID     kernel.UUID
	motivation string
	status     RequestStatus
	createdAt  time.Time
	resolvedAt *time.Time

	isConstructed bool
}

// NewRequest creates a pending application.
func NewRequest(userID kernel.UUID, motivation string, at time.Time) (*Request, error) {
	return RestoreRequest(kernel.NewUUID(), userID, motivation, RequestPending, at, nil)
}

// RestoreRequest rebuilds an application from storage.
func RestoreRequest(
	id, userID kernel.UUID,
	motivation string,
	status RequestStatus,
	createdAt time.Time,
	resolvedAt *time.Time,
) (*Request, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Request{
		id:            id,
		userID:        userID,
		motivation:    strings.TrimSpace(motivation),
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

func (r *Request) ID() kernel.UUID        { return r.id }
func (r *Request) UserID() kernel.UUID    { return r.userID }
func (r *Request) Motivation() string     { return r.motivation }
func (r *Request) Status() RequestStatus  { return r.status }
func (r *Request) CreatedAt() time.Time   { return r.createdAt }
func (r *Request) ResolvedAt() *time.Time { return r.resolvedAt }

// Resolve approves or rejects a pending application.
func (r *Request) Resolve(admin kernel.Actor, approved bool, at time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}

	target := RequestRejected
	if approved {
		target = RequestApproved
	}

	if !admin.IsAdmin() {
		return errs.NewForbiddenError(admin.ID().String(), fmt.Sprintf("resolve freelancer request %s", r.id))
	}
	if r.status != RequestPending {
		return errs.NewInvalidTransitionError("freelancer request", r.status.String(), target.String())
	}

	r.status = target
	r.resolvedAt = &at
	return nil
}
