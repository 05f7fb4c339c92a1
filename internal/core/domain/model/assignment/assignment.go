// Package assignment binds a confirmed transport request to the vehicle and driver
// the winning transporter puts on it. At most one JobAssignment exists per request.
package assignment

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAssignmentIsNotConstructed = errors.New("JobAssignment must be created via NewJobAssignment or RestoreJobAssignment")

type JobAssignment struct {
	id            kernel.UUID
	requestID     kernel.UUID
	transporterID kernel.UUID
	vehicleID     kernel.UUID
	driverID      kernel.UUID
	assignedAt    time.Time
	guard         guard.ConstructorGuard
}

func NewJobAssignment(requestID, transporterID, vehicleID, driverID kernel.UUID, assignedAt time.Time) (*JobAssignment, error) {
	return RestoreJobAssignment(kernel.NewUUID(), requestID, transporterID, vehicleID, driverID, assignedAt)
}

func RestoreJobAssignment(id, requestID, transporterID, vehicleID, driverID kernel.UUID, assignedAt time.Time) (*JobAssignment, error) {
	if err := errors.Join(
		required("assignmentId", id),
		required("requestId", requestID),
		required("transporterId", transporterID),
		required("vehicleId", vehicleID),
		required("driverId", driverID),
	); err != nil {
		return nil, err
	}
	if assignedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("assignedAt")
	}

	return &JobAssignment{
		id:            id,
		requestID:     requestID,
		transporterID: transporterID,
		vehicleID:     vehicleID,
		driverID:      driverID,
		assignedAt:    assignedAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (a *JobAssignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *JobAssignment) ID() kernel.UUID            { return a.id }
func (a *JobAssignment) RequestID() kernel.UUID     { return a.requestID }
func (a *JobAssignment) TransporterID() kernel.UUID { return a.transporterID }
func (a *JobAssignment) VehicleID() kernel.UUID     { return a.vehicleID }
func (a *JobAssignment) DriverID() kernel.UUID      { return a.driverID }
func (a *JobAssignment) AssignedAt() time.Time      { return a.assignedAt }

func required(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
