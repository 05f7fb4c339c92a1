// Package assignmentrepo persists the vehicle and driver bound to a confirmed job.
package assignmentrepo

import (
	"time"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AssignmentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	TransporterID uuid.UUID `gorm:"type:uuid;not null;index"`
	VehicleID     uuid.UUID `gorm:"type:uuid;not null;index"`
	DriverID      uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedAt    time.Time `gorm:"not null"`
}

func (AssignmentDTO) TableName() string {
	return "job_assignments"
}

func fromDomain(a *assignment.JobAssignment) AssignmentDTO {
	return AssignmentDTO{
		ID:            a.ID().Bytes(),
		RequestID:     a.RequestID().Bytes(),
		TransporterID: a.TransporterID().Bytes(),
		VehicleID:     a.VehicleID().Bytes(),
		DriverID:      a.DriverID().Bytes(),
		AssignedAt:    a.AssignedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.JobAssignment, error) {
	return assignment.RestoreJobAssignment(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.RequestID),
		kernel.UUIDFromGoogle(dto.TransporterID),
		kernel.UUIDFromGoogle(dto.VehicleID),
		kernel.UUIDFromGoogle(dto.DriverID),
		dto.AssignedAt,
	)
}
