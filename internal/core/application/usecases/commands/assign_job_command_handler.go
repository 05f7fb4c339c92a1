package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/pkg/errs"
)

type AssignJobCommandHandler struct {
	uowFactory UoWFactory
}

func NewAssignJobCommandHandler(uowFactory UoWFactory) AssignJobCommandHandler {
	return AssignJobCommandHandler{uowFactory: uowFactory}
}

// Handle creates the job assignment and returns its id. A request has at most one
// assignment; the vehicle and driver must belong to the winner and be fit at assignment time.
// The request row stays locked until commit, so a concurrent cancel either sees the
// assignment and deletes it or commits first and makes this handler fail.
func (h AssignJobCommandHandler) Handle(ctx context.Context, command AssignJobCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	profile, err := transporterOf(ctx, uow.TransporterRepository(), command.CallerID())
	if err != nil {
		return kernel.UUID{}, err
	}

	request, err := uow.RequestRepository().GetForUpdate(ctx, command.RequestID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = request.AuthorizeWinner(profile.ID()); err != nil {
		return kernel.UUID{}, err
	}
	if s := request.Status(); s != transport.Confirmed && s != transport.InTransit {
		return kernel.UUID{}, fmt.Errorf("%w: jobs can be assigned in %s or %s, request is %s",
			errs.ErrInvalidTransition, transport.Confirmed, transport.InTransit, s)
	}

	assignments := uow.AssignmentRepository()
	_, err = assignments.GetByRequest(ctx, request.ID())
	switch {
	case err == nil:
		return kernel.UUID{}, fmt.Errorf("%w: request %s is already assigned", errs.ErrConflict, request.ID())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return kernel.UUID{}, err
	}

	now := time.Now()
	if err = checkFleet(profile, command.VehicleID(), command.DriverID(), now); err != nil {
		return kernel.UUID{}, err
	}

	job, err := assignment.NewJobAssignment(request.ID(), profile.ID(), command.VehicleID(), command.DriverID(), now)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = assignments.Add(ctx, job); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return job.ID(), nil
}

func checkFleet(profile *transporter.Profile, vehicleID, driverID kernel.UUID, now time.Time) error {
	vehicle, err := profile.Vehicle(vehicleID)
	if err != nil {
		return err
	}
	driver, err := profile.Driver(driverID)
	if err != nil {
		return err
	}

	var problems []error
	if cause := vehicle.CanOperateAt(now); cause != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("vehicleId", cause))
	}
	if cause := driver.CanDriveAt(now); cause != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("driverId", cause))
	}
	return errs.NewValidationError(problems...)
}
