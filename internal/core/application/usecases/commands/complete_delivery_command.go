package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand closes a job in transit. For cash jobs MarkCashReceived
// records that the transporter collected the payment.
type CompleteDeliveryCommand struct {
	callerID         kernel.UUID
	requestID        kernel.UUID
	markCashReceived bool

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(callerID, requestID kernel.UUID, markCashReceived bool) (CompleteDeliveryCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	if err := errs.NewValidationError(requiredID("requestId", requestID)); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return CompleteDeliveryCommand{
		callerID:         callerID,
		requestID:        requestID,
		markCashReceived: markCashReceived,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) CallerID() kernel.UUID  { return c.callerID }
func (c CompleteDeliveryCommand) RequestID() kernel.UUID { return c.requestID }
func (c CompleteDeliveryCommand) MarkCashReceived() bool { return c.markCashReceived }
