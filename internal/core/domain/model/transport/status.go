package transport

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of a transport request.
//
// State transitions:
//
//	Open ──> Bidding ──> Confirmed ──> InTransit ──> Completed
//	  │         │            │
//	  └─────────┴────────────┴──> Cancelled
//
// Open and Bidding accept bids. Completed and Cancelled are terminal.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Open is the initial status; no bid has been submitted yet.
	Open

	// Bidding means at least one bid was submitted and none has been accepted.
	Bidding

	// Confirmed means the requester accepted exactly one bid.
	Confirmed

	// InTransit means the winning transporter picked up the goods.
	InTransit

	// Completed is the terminal success state.
	Completed

	// Cancelled is the terminal state reached by requester cancellation.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Open:      "Open",
		Bidding:   "Bidding",
		Confirmed: "Confirmed",
		InTransit: "InTransit",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// Validate rejects Unknown and out-of-range values, e.g. a corrupted persisted column.
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
	return "Unknown"
}

// ParseStatus converts a status name back to its value.
func ParseStatus(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == name && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

// IsAcceptingBids reports whether bids may be submitted, withdrawn or accepted.
func (s Status) IsAcceptingBids() bool {
	return s == Open || s == Bidding
}

// HasWinner reports whether a request in this status must carry a winning bid.
func (s Status) HasWinner() bool {
	return s == Confirmed || s == InTransit || s == Completed
}

func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ReceiveBid returns the status after a bid is submitted. The first bid moves Open to Bidding.
func (s Status) ReceiveBid() (Status, error) {
	if !s.IsAcceptingBids() {
		return 0, fmt.Errorf("%w: request is %s", ErrRequestNotAcceptingBids, s)
	}
	return Bidding, nil
}

// Confirm moves Open or Bidding to Confirmed.
func (s Status) Confirm() (Status, error) {
	if !s.IsAcceptingBids() {
		return 0, fmt.Errorf("%w: request is %s", ErrRequestNotAcceptingBids, s)
	}
	return Confirmed, nil
}

// StartTransit moves Confirmed to InTransit.
func (s Status) StartTransit() (Status, error) {
	if s != Confirmed {
		return 0, s.transitionError(InTransit)
	}
	return InTransit, nil
}

// Complete moves InTransit to Completed.
func (s Status) Complete() (Status, error) {
	if s != InTransit {
		return 0, s.transitionError(Completed)
	}
	return Completed, nil
}

// Cancel moves Open, Bidding or Confirmed to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Open && s != Bidding && s != Confirmed {
		return 0, s.transitionError(Cancelled)
	}
	return Cancelled, nil
}

func (s Status) transitionError(target Status) error {
	return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, s, target)
}
