package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCancelRequestCommandIsNotConstructed = errors.New(
	"CancelRequestCommand must be created via NewCancelRequestCommand constructor",
)

// CancelRequestCommand withdraws a request before transit starts.
type CancelRequestCommand struct {
	callerID  kernel.UUID
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelRequestCommand(callerID, requestID kernel.UUID) (CancelRequestCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return CancelRequestCommand{}, err
	}
	if err := errs.NewValidationError(requiredID("requestId", requestID)); err != nil {
		return CancelRequestCommand{}, err
	}

	return CancelRequestCommand{
		callerID:  callerID,
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelRequestCommandIsNotConstructed)
}

func (c CancelRequestCommand) CallerID() kernel.UUID  { return c.callerID }
func (c CancelRequestCommand) RequestID() kernel.UUID { return c.requestID }
