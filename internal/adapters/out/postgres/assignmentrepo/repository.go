package assignmentrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/adapters/out/postgres/pgcommon"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

func (r *GormAssignmentRepository) Add(ctx context.Context, a *assignment.JobAssignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgcommon.IsUniqueViolation(err) {
			return fmt.Errorf("%w: request %s is already assigned", errs.ErrConflict, a.RequestID())
		}
		return err
	}
	return nil
}

func (r *GormAssignmentRepository) GetByRequest(ctx context.Context, requestID kernel.UUID) (*assignment.JobAssignment, error) {
	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "request_id = ?", requestID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("requestId", requestID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// DeleteByRequest is a no-op when the request has no assignment.
func (r *GormAssignmentRepository) DeleteByRequest(ctx context.Context, requestID kernel.UUID) error {
	return r.db.WithContext(ctx).Where("request_id = ?", requestID.Bytes()).Delete(&AssignmentDTO{}).Error
}

func (r *GormAssignmentRepository) IsVehicleReferenced(ctx context.Context, vehicleID kernel.UUID) (bool, error) {
	return r.isReferenced(ctx, "vehicle_id = ?", vehicleID)
}

func (r *GormAssignmentRepository) IsDriverReferenced(ctx context.Context, driverID kernel.UUID) (bool, error) {
	return r.isReferenced(ctx, "driver_id = ?", driverID)
}

func (r *GormAssignmentRepository) isReferenced(ctx context.Context, condition string, id kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where(condition, id.Bytes()).
		Count(&count).Error
	return count > 0, err
}
