// Package catalog holds the reference data orders are placed against.
// Category and service CRUD is handled elsewhere; orders only need a
// service's owner and price at purchase time.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrServiceIsNotConstructed is returned for a Service built as a literal.
var ErrServiceIsNotConstructed = errors.New("Service must be created via NewService constructor")

// Category groups services.
type Category struct {
	ID   kernel.UUID
	Name string
}

// Service is offered by exactly one freelancer in exactly one category.
type Service struct {
	id           kernel.UUID
	freelancerID kernel.UUID
	categoryID   kernel.UUID
	title        string
	price        kernel.Money
	deliveryDays int

	isConstructed bool
}

// NewService creates a validated service.
func NewService(
	id, freelancerID, categoryID kernel.UUID,
	title string,
	price kernel.Money,
	deliveryDays int,
) (*Service, error) {
	title = strings.TrimSpace(title)

	var titleErr, daysErr error
	if title == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	if deliveryDays <= 0 {
		daysErr = errs.NewValueIsInvalidErrorWithCause("deliveryDays", fmt.Errorf("%d is not greater than 0", deliveryDays))
	}

	if err := errors.Join(
		id.Validate(),
		freelancerID.Validate(),
		categoryID.Validate(),
		price.Validate(),
		titleErr,
		daysErr,
	); err != nil {
		return nil, err
	}

	return &Service{
		id:            id,
		freelancerID:  freelancerID,
		categoryID:    categoryID,
		title:         title,
		price:         price,
		deliveryDays:  deliveryDays,
		isConstructed: true,
	}, nil
}

// Validate reports whether the service came from its constructor.
func (s *Service) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrServiceIsNotConstructed
	}
	return nil
}

func (s *Service) ID() kernel.UUID           { return s.id }
func (s *Service) FreelancerID() kernel.UUID { return s.freelancerID }
func (s *Service) CategoryID() kernel.UUID   { return s.categoryID }
func (s *Service) Title() string             { return s.title }
func (s *Service) Price() kernel.Money       { return s.price }
func (s *Service) DeliveryDays() int         { return s.deliveryDays }
