package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAssignJobCommandIsNotConstructed = errors.New(
	"AssignJobCommand must be created via NewAssignJobCommand constructor",
)

// AssignJobCommand binds one of the winner's vehicles and drivers to a confirmed job.
type AssignJobCommand struct {
	callerID  kernel.UUID
	requestID kernel.UUID
	vehicleID kernel.UUID
	driverID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignJobCommand(callerID, requestID, vehicleID, driverID kernel.UUID) (AssignJobCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return AssignJobCommand{}, err
	}
	if err := errs.NewValidationError(
		requiredID("requestId", requestID),
		requiredID("vehicleId", vehicleID),
		requiredID("driverId", driverID),
	); err != nil {
		return AssignJobCommand{}, err
	}

	return AssignJobCommand{
		callerID:  callerID,
		requestID: requestID,
		vehicleID: vehicleID,
		driverID:  driverID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignJobCommand) Validate() error {
	return c.guard.Validate(ErrAssignJobCommandIsNotConstructed)
}

func (c AssignJobCommand) CallerID() kernel.UUID  { return c.callerID }
func (c AssignJobCommand) RequestID() kernel.UUID { return c.requestID }
func (c AssignJobCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c AssignJobCommand) DriverID() kernel.UUID  { return c.driverID }
