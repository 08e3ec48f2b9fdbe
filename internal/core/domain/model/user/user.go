// Package user models marketplace accounts. Registration, credentials and
// activation flows live outside this service; the core only reads users and
// deletes them together with everything they own.
package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned for a User built as a literal.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// Role is the side a user signs up for.
type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
)

// Validate checks that r is a known role.
func (r Role) Validate() error {
	switch r {
	case RoleClient, RoleFreelancer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// User is a marketplace account. Registration happens in the external
// account service.
type User struct {
	id        kernel.UUID
	name      string
	email     string
	role      Role
	isActive  bool
	isAdmin   bool
	createdAt time.Time

	isConstructed bool
}

// NewUser validates the name, email address and role.
func NewUser(
	id kernel.UUID,
	name, email string,
	role Role,
	isActive, isAdmin bool,
	createdAt time.Time,
) (*User, error) {
	u := &User{
		isActive:      isActive,
		isAdmin:       isAdmin,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		u.setName(name),
		u.setEmail(email),
		role.Validate(),
	); err != nil {
		return nil, err
	}

	u.id = id
	u.role = role
	return u, nil
}

// Validate reports whether the user came from its constructor.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID      { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) Role() Role           { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) IsAdmin() bool        { return u.isAdmin }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Actor returns the user acting on their own behalf.
func (u *User) Actor() kernel.Actor {
	a, _ := kernel.NewActor(u.id, u.isAdmin)
	return a
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = addr.Address
	return nil
}
