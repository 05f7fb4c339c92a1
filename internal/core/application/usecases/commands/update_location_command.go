package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand reports the current position of a job in transit.
type UpdateLocationCommand struct {
	callerID  kernel.UUID
	requestID kernel.UUID
	position  kernel.Point

	guard guard.ConstructorGuard
}

func NewUpdateLocationCommand(callerID, requestID kernel.UUID, latitude, longitude float64) (UpdateLocationCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return UpdateLocationCommand{}, err
	}

	position, pointErr := kernel.NewPoint(latitude, longitude)
	if err := errs.NewValidationError(
		requiredID("requestId", requestID),
		errs.WithParamPrefix("position", pointErr),
	); err != nil {
		return UpdateLocationCommand{}, err
	}

	return UpdateLocationCommand{
		callerID:  callerID,
		requestID: requestID,
		position:  position,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

func (c UpdateLocationCommand) CallerID() kernel.UUID  { return c.callerID }
func (c UpdateLocationCommand) RequestID() kernel.UUID { return c.requestID }
func (c UpdateLocationCommand) Position() kernel.Point { return c.position }
