package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/retry"
)

// RemoveVehicleCommandHandler and RemoveDriverCommandHandler refuse to remove a fleet
// member that any job assignment still names, including assignments of completed jobs.
type RemoveVehicleCommandHandler struct {
	uowFactory FleetUoWFactory
	retrier    *retry.Retrier
}

func NewRemoveVehicleCommandHandler(uowFactory FleetUoWFactory, retrier *retry.Retrier) RemoveVehicleCommandHandler {
	return RemoveVehicleCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

func (h RemoveVehicleCommandHandler) Handle(ctx context.Context, command RemoveVehicleCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.retrier.Do(ctx, "remove_vehicle", func(ctx context.Context) error {
		return removeFleetMember(ctx, h.uowFactory, command.CallerID(), command.VehicleID(), fleetMember{
			kind: "vehicle",
			referenced: func(ctx context.Context, uow FleetUoW, id kernel.UUID) (bool, error) {
				return uow.AssignmentRepository().IsVehicleReferenced(ctx, id)
			},
			remove: (*transporter.Profile).RemoveVehicle,
		})
	})
}

type RemoveDriverCommandHandler struct {
	uowFactory FleetUoWFactory
	retrier    *retry.Retrier
}

func NewRemoveDriverCommandHandler(uowFactory FleetUoWFactory, retrier *retry.Retrier) RemoveDriverCommandHandler {
	return RemoveDriverCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

func (h RemoveDriverCommandHandler) Handle(ctx context.Context, command RemoveDriverCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.retrier.Do(ctx, "remove_driver", func(ctx context.Context) error {
		return removeFleetMember(ctx, h.uowFactory, command.CallerID(), command.DriverID(), fleetMember{
			kind: "driver",
			referenced: func(ctx context.Context, uow FleetUoW, id kernel.UUID) (bool, error) {
				return uow.AssignmentRepository().IsDriverReferenced(ctx, id)
			},
			remove: (*transporter.Profile).RemoveDriver,
		})
	})
}

type fleetMember struct {
	kind       string
	referenced func(ctx context.Context, uow FleetUoW, id kernel.UUID) (bool, error)
	remove     func(profile *transporter.Profile, id kernel.UUID) error
}

func removeFleetMember(
	ctx context.Context,
	factory FleetUoWFactory,
	callerID, memberID kernel.UUID,
	member fleetMember,
) error {
	uow := factory.Create()
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

	if err = member.remove(profile, memberID); err != nil {
		return err
	}

	referenced, err := member.referenced(ctx, uow, memberID)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: %s %s is named by a job assignment", errs.ErrResourceInUse, member.kind, memberID)
	}

	if err = transporters.Update(ctx, profile); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
