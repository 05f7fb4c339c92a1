package ports

import (
	"context"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
)

type AssignmentRepository interface {
	// Add stores an assignment. A second assignment for the same request yields errs.ErrConflict.
	Add(ctx context.Context, a *assignment.JobAssignment) error

	// GetByRequest returns the request's assignment or errs.ErrObjectNotFound.
	GetByRequest(ctx context.Context, requestID kernel.UUID) (*assignment.JobAssignment, error)

	// DeleteByRequest removes the request's assignment, if any.
	DeleteByRequest(ctx context.Context, requestID kernel.UUID) error

	// IsVehicleReferenced reports whether any assignment names the vehicle, whatever the
	// status of its request. Assignments of cancelled requests are deleted with the cancel.
	IsVehicleReferenced(ctx context.Context, vehicleID kernel.UUID) (bool, error)

	// IsDriverReferenced is IsVehicleReferenced for drivers.
	IsDriverReferenced(ctx context.Context, driverID kernel.UUID) (bool, error)
}
