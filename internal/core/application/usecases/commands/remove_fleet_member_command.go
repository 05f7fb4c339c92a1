package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrRemoveVehicleCommandIsNotConstructed = errors.New(
		"RemoveVehicleCommand must be created via NewRemoveVehicleCommand constructor",
	)
	ErrRemoveDriverCommandIsNotConstructed = errors.New(
		"RemoveDriverCommand must be created via NewRemoveDriverCommand constructor",
	)
)

type RemoveVehicleCommand struct {
	callerID  kernel.UUID
	vehicleID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveVehicleCommand(callerID, vehicleID kernel.UUID) (RemoveVehicleCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return RemoveVehicleCommand{}, err
	}
	if err := errs.NewValidationError(requiredID("vehicleId", vehicleID)); err != nil {
		return RemoveVehicleCommand{}, err
	}

	return RemoveVehicleCommand{
		callerID:  callerID,
		vehicleID: vehicleID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveVehicleCommand) Validate() error {
	return c.guard.Validate(ErrRemoveVehicleCommandIsNotConstructed)
}

func (c RemoveVehicleCommand) CallerID() kernel.UUID  { return c.callerID }
func (c RemoveVehicleCommand) VehicleID() kernel.UUID { return c.vehicleID }

type RemoveDriverCommand struct {
	callerID kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveDriverCommand(callerID, driverID kernel.UUID) (RemoveDriverCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return RemoveDriverCommand{}, err
	}
	if err := errs.NewValidationError(requiredID("driverId", driverID)); err != nil {
		return RemoveDriverCommand{}, err
	}

	return RemoveDriverCommand{
		callerID: callerID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveDriverCommand) Validate() error {
	return c.guard.Validate(ErrRemoveDriverCommandIsNotConstructed)
}

func (c RemoveDriverCommand) CallerID() kernel.UUID { return c.callerID }
func (c RemoveDriverCommand) DriverID() kernel.UUID { return c.driverID }
