package postgres

import (
	"marketplace/internal/adapters/out/postgres/assignmentrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"
	"marketplace/internal/adapters/out/postgres/requestrepo"
	"marketplace/internal/adapters/out/postgres/transporterrepo"
	"marketplace/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// Migrate creates or extends every table the repositories use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&requestrepo.RequestDTO{},
		&requestrepo.BidDTO{},
		&transporterrepo.ProfileDTO{},
		&transporterrepo.DriverDTO{},
		&transporterrepo.VehicleDTO{},
		&assignmentrepo.AssignmentDTO{},
		&outboxrepo.MessageDTO{},
	)
}

// noTracking is the tracker of repositories used outside a unit of work.
type noTracking struct{}

func (noTracking) TrackAggregate(kernel.UUID, any) {}

// NewRequestReader returns a request repository for queries. Writes through it are not
// tracked and record no outbox events.
func NewRequestReader(db *gorm.DB) *requestrepo.GormRequestRepository {
	return requestrepo.NewGormRequestRepository(db, noTracking{})
}

func NewTransporterReader(db *gorm.DB) *transporterrepo.GormTransporterRepository {
	return transporterrepo.NewGormTransporterRepository(db, noTracking{})
}
