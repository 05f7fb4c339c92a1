package transport

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// BidStatus is the state of a single bid.
//
//	Pending ──> Accepted ──> Revoked
//	   ├──> Rejected
//	   └──> Withdrawn
type BidStatus int

const (
	BidUnknown BidStatus = iota
	// BidPending is waiting for the requester's decision.
	BidPending
	// BidAccepted is the request's single winner.
	BidAccepted
	// BidRejected lost to another bid or was open when the request was cancelled.
	BidRejected
	// BidWithdrawn was pulled back by its transporter, who may bid again.
	BidWithdrawn
	// BidRevoked was the winner of a request cancelled after confirmation.
	BidRevoked
)

func getBidStatusStrings() map[BidStatus]string {
	return map[BidStatus]string{
		BidUnknown:   "Unknown",
		BidPending:   "Pending",
		BidAccepted:  "Accepted",
		BidRejected:  "Rejected",
		BidWithdrawn: "Withdrawn",
		BidRevoked:   "Revoked",
	}
}

func (s BidStatus) Validate() error {
	if s <= BidUnknown || s > BidRevoked {
		return errs.NewValueIsInvalidErrorWithCause("bidStatus", fmt.Errorf("%d is not a valid bid status", s))
	}
	return nil
}

func (s BidStatus) String() string {
	if str, ok := getBidStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsActive reports whether the bid still counts against the one-bid-per-transporter rule.
func (s BidStatus) IsActive() bool {
	return s != BidWithdrawn
}

func (s BidStatus) accept() (BidStatus, error) {
	if s != BidPending {
		return 0, fmt.Errorf("%w: bid is %s", ErrBidNotEligible, s)
	}
	return BidAccepted, nil
}

func (s BidStatus) reject() (BidStatus, error) {
	if s != BidPending {
		return 0, fmt.Errorf("%w: bid %s -> %s", errs.ErrInvalidTransition, s, BidRejected)
	}
	return BidRejected, nil
}

func (s BidStatus) withdraw() (BidStatus, error) {
	if s != BidPending {
		return 0, fmt.Errorf("%w: bid %s -> %s", errs.ErrInvalidTransition, s, BidWithdrawn)
	}
	return BidWithdrawn, nil
}

func (s BidStatus) revoke() (BidStatus, error) {
	if s != BidAccepted {
		return 0, fmt.Errorf("%w: bid %s -> %s", errs.ErrInvalidTransition, s, BidRevoked)
	}
	return BidRevoked, nil
}
