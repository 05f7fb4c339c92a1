package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAcceptBidCommandIsNotConstructed = errors.New(
	"AcceptBidCommand must be created via NewAcceptBidCommand constructor",
)

// AcceptBidCommand makes one bid the winner of its request.
//
// Example:
//
//	cmd, err := NewAcceptBidCommand(requesterID, bidID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, transport.ErrRequestNotAcceptingBids):
//	    // another bid won first
//	case errors.Is(err, errs.ErrConflict):
//	    // still contended after every retry
//	}
type AcceptBidCommand struct {
	callerID kernel.UUID
	bidID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptBidCommand(callerID, bidID kernel.UUID) (AcceptBidCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return AcceptBidCommand{}, err
	}
	if err := errs.NewValidationError(requiredID("bidId", bidID)); err != nil {
		return AcceptBidCommand{}, err
	}

	return AcceptBidCommand{
		callerID: callerID,
		bidID:    bidID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptBidCommand) Validate() error {
	return c.guard.Validate(ErrAcceptBidCommandIsNotConstructed)
}

func (c AcceptBidCommand) CallerID() kernel.UUID { return c.callerID }
func (c AcceptBidCommand) BidID() kernel.UUID    { return c.bidID }
