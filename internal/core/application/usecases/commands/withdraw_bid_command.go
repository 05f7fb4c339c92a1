package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrWithdrawBidCommandIsNotConstructed = errors.New(
	"WithdrawBidCommand must be created via NewWithdrawBidCommand constructor",
)

// WithdrawBidCommand retracts the caller's own pending bid.
type WithdrawBidCommand struct {
	callerID  kernel.UUID
	requestID kernel.UUID
	bidID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewWithdrawBidCommand(callerID, requestID, bidID kernel.UUID) (WithdrawBidCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return WithdrawBidCommand{}, err
	}
	if err := errs.NewValidationError(requiredID("requestId", requestID), requiredID("bidId", bidID)); err != nil {
		return WithdrawBidCommand{}, err
	}

	return WithdrawBidCommand{
		callerID:  callerID,
		requestID: requestID,
		bidID:     bidID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c WithdrawBidCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawBidCommandIsNotConstructed)
}

func (c WithdrawBidCommand) CallerID() kernel.UUID  { return c.callerID }
func (c WithdrawBidCommand) RequestID() kernel.UUID { return c.requestID }
func (c WithdrawBidCommand) BidID() kernel.UUID     { return c.bidID }
