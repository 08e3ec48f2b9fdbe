package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> InProgress ──> Delivered ──> Completed
//	   │            │  ^            │
//	   │            │  └────────────┘
//	   │            │  (rework requested)
//	   └────────────┴──> Cancelled
//
// Completed and Cancelled are terminal. Persisted as its String form.
type Status int

const (
	// Unknown catches uninitialised Status values.
	Unknown Status = iota

	// Pending is the initial status: the client has bought the service and
	// the freelancer has not started.
	Pending

	// InProgress means the freelancer is working on the order.
	InProgress

	// Delivered means the freelancer has submitted a delivery for review.
	Delivered

	// Completed means the client accepted the delivery. Terminal.
	Completed

	// Cancelled means either party abandoned the order. Terminal.
	Cancelled
)

// Party is a bit set of order participants permitted to trigger a transition.
type Party uint8

const (
	PartyClient Party = 1 << iota
	PartyFreelancer
)

// Has reports whether other is among the parties in p.
func (p Party) Has(other Party) bool {
	return p&other != 0
}

func (p Party) String() string {
	switch p {
	case PartyClient:
		return "client"
	case PartyFreelancer:
		return "freelancer"
	case PartyClient | PartyFreelancer:
		return "client or freelancer"
	default:
		return "nobody"
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		InProgress: "in_progress",
		Delivered:  "delivered",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// getTransitions lists every legal edge and which parties may trigger it.
// Admins may trigger any listed edge; nothing may trigger an unlisted one.
func getTransitions() map[Status]map[Status]Party {
	return map[Status]map[Status]Party{
		Pending: {
			InProgress: PartyFreelancer,
			Cancelled:  PartyClient | PartyFreelancer,
		},
		InProgress: {
			Delivered: PartyFreelancer,
			Cancelled: PartyClient | PartyFreelancer,
		},
		Delivered: {
			Completed:  PartyClient,
			InProgress: PartyClient,
		},
	}
}

// ParseStatus converts the persisted form back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// AllowedParties returns who may move an order from s to the target status.
// ok is false when the edge does not exist, including s == to.
func (s Status) AllowedParties(to Status) (Party, bool) {
	edges, ok := getTransitions()[s]
	if !ok {
		return 0, false
	}
	parties, ok := edges[to]
	return parties, ok
}

// ValidateTransition returns an InvalidTransitionError unless s -> to is a
// listed edge.
func (s Status) ValidateTransition(to Status) error {
	if _, ok := s.AllowedParties(to); !ok {
		return errs.NewInvalidTransitionError("order", s.String(), to.String())
	}
	return nil
}
