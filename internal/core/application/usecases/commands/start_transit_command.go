package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrStartTransitCommandIsNotConstructed = errors.New(
	"StartTransitCommand must be created via NewStartTransitCommand constructor",
)

// StartTransitCommand is sent by the winning transporter when the goods are picked up.
type StartTransitCommand struct {
	callerID  kernel.UUID
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartTransitCommand(callerID, requestID kernel.UUID) (StartTransitCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return StartTransitCommand{}, err
	}
	if err := errs.NewValidationError(requiredID("requestId", requestID)); err != nil {
		return StartTransitCommand{}, err
	}

	return StartTransitCommand{
		callerID:  callerID,
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c StartTransitCommand) Validate() error {
	return c.guard.Validate(ErrStartTransitCommandIsNotConstructed)
}

func (c StartTransitCommand) CallerID() kernel.UUID  { return c.callerID }
func (c StartTransitCommand) RequestID() kernel.UUID { return c.requestID }
