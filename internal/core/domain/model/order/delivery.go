package order

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned for a Delivery built as a literal.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// Delivery is an artifact or message the freelancer submits against an
// order. Deliveries are append-only.
type Delivery struct {
	id           kernel.UUID
	orderID      kernel.UUID
	freelancerID kernel.UUID
	message      string
	artifactURL  string
	createdAt    time.Time

	isConstructed bool
}

// NewDelivery requires a message or an artifact URL (or both). A non-empty
// artifact URL must be absolute.
func NewDelivery(orderID, freelancerID kernel.UUID, message, artifactURL string, at time.Time) (*Delivery, error) {
	return RestoreDelivery(kernel.NewUUID(), orderID, freelancerID, message, artifactURL, at)
}

// RestoreDelivery rebuilds a delivery from storage.
func RestoreDelivery(
	id, orderID, freelancerID kernel.UUID,
	message, artifactURL string,
	createdAt time.Time,
) (*Delivery, error) {
	message = strings.TrimSpace(message)
	artifactURL = strings.TrimSpace(artifactURL)

	if err := errors.Join(id.Validate(), orderID.Validate(), freelancerID.Validate()); err != nil {
		return nil, err
	}
	if message == "" && artifactURL == "" {
		return nil, errs.NewValueIsRequiredError("message or artifactURL")
	}
	if artifactURL != "" {
		if u, err := url.Parse(artifactURL); err != nil || !u.IsAbs() {
			return nil, errs.NewValueIsInvalidErrorWithCause("artifactURL", fmt.Errorf("%q is not an absolute URL", artifactURL))
		}
	}

	return &Delivery{
		id:            id,
		orderID:       orderID,
		freelancerID:  freelancerID,
		message:       message,
		artifactURL:   artifactURL,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate reports whether the delivery came from a constructor.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) ID() kernel.UUID           { return d.id }
func (d *Delivery) OrderID() kernel.UUID      { return d.orderID }
func (d *Delivery) FreelancerID() kernel.UUID { return d.freelancerID }
func (d *Delivery) Message() string           { return d.message }
func (d *Delivery) ArtifactURL() string       { return d.artifactURL }
func (d *Delivery) CreatedAt() time.Time      { return d.createdAt }
