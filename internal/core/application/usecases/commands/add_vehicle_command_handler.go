package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/retry"
)

type AddVehicleCommandHandler struct {
	uowFactory FleetUoWFactory
	retrier    *retry.Retrier
}

func NewAddVehicleCommandHandler(uowFactory FleetUoWFactory, retrier *retry.Retrier) AddVehicleCommandHandler {
	return AddVehicleCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

// Handle adds the vehicle to the caller's profile and returns its id.
func (h AddVehicleCommandHandler) Handle(ctx context.Context, command AddVehicleCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	vehicle, err := transporter.NewVehicle(
		command.RegistrationNumber(),
		command.VehicleType(),
		command.CapacityKg(),
		command.FitnessExpiry(),
		time.Now(),
	)
	if err != nil {
		return kernel.UUID{}, errs.NewValidationError(err)
	}

	err = h.retrier.Do(ctx, "add_vehicle", func(ctx context.Context) error {
		return h.add(ctx, command.CallerID(), vehicle)
	})
	if err != nil {
		return kernel.UUID{}, err
	}
	return vehicle.ID(), nil
}

func (h AddVehicleCommandHandler) add(ctx context.Context, callerID kernel.UUID, vehicle *transporter.Vehicle) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	transporters := uow.TransporterRepository()
	profile, err := transporterOf(ctx, transporters, callerID)
	if err != nil {
		return err
	}
	if err = profile.AddVehicle(vehicle); err != nil {
		return errs.NewValidationError(err)
	}

	if err = transporters.Update(ctx, profile); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
