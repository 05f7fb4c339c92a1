package transporterrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/adapters/out/postgres/pgcommon"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransporterRepository implements ports.TransporterRepository using GORM.
type GormTransporterRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTransporterRepository(db *gorm.DB, tracker aggregateTracker) *GormTransporterRepository {
	return &GormTransporterRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a profile with its fleet. A second profile for the same user is a conflict.
func (r *GormTransporterRepository) Add(ctx context.Context, aggregate *transporter.Profile) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgcommon.IsUniqueViolation(err) {
			return fmt.Errorf("%w: user %s already has a transporter profile", errs.ErrConflict, aggregate.UserID())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the profile row when its version still matches the loaded one, then
// upserts the current drivers and vehicles and deletes the ones no longer in the fleet.
// A stale copy yields errs.ErrConflict and writes nothing.
//
// The child tables are only touched after the versioned row update succeeded, which
// holds the profile row lock until commit. No other writer of the same profile can
// interleave, so the delete never removes a child added concurrently.
func (r *GormTransporterRepository) Update(ctx context.Context, aggregate *transporter.Profile) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&ProfileDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"type":              dto.Type,
			"contact_name":      dto.ContactName,
			"contact_phone":     dto.ContactPhone,
			"contact_email":     dto.ContactEmail,
			"trade_license":     dto.TradeLicense,
			"service_radius_km": dto.ServiceRadiusKm,
			"verified":          dto.Verified,
			"rating":            dto.Rating,
			"rating_count":      dto.RatingCount,
			"completed_jobs":    dto.CompletedJobs,
			"version":           dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	if err := syncChildren(db, dto.ID, dto.Drivers, driverIDs(dto.Drivers)); err != nil {
		return err
	}
	if err := syncChildren(db, dto.ID, dto.Vehicles, vehicleIDs(dto.Vehicles)); err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTransporterRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ProfileDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("profileId", id.String())
	}
	return fmt.Errorf("%w: transporter profile %s was modified concurrently", errs.ErrConflict, id)
}

// syncChildren makes the child table of T hold exactly rows for profileID.
func syncChildren[T any](db *gorm.DB, profileID uuid.UUID, rows []T, ids []uuid.UUID) error {
	stale := db.Where("profile_id = ?", profileID)
	if len(ids) > 0 {
		stale = stale.Where("id NOT IN ?", ids)
	}
	var zero T
	if err := stale.Delete(&zero).Error; err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error
}

func driverIDs(drivers []DriverDTO) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(drivers))
	for _, d := range drivers {
		ids = append(ids, d.ID)
	}
	return ids
}

func vehicleIDs(vehicles []VehicleDTO) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(vehicles))
	for _, v := range vehicles {
		ids = append(ids, v.ID)
	}
	return ids
}

func (r *GormTransporterRepository) Get(ctx context.Context, id kernel.UUID) (*transporter.Profile, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "profileId", id, "id = ?")
}

func (r *GormTransporterRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*transporter.Profile, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "userId", userID, "user_id = ?")
}

func (r *GormTransporterRepository) first(
	ctx context.Context,
	param string,
	id kernel.UUID,
	condition string,
) (*transporter.Profile, error) {
	var dto ProfileDTO
	if err := r.withFleet(ctx).First(&dto, condition, id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// ListWithin returns the profiles whose home lies in box.
func (r *GormTransporterRepository) ListWithin(ctx context.Context, box kernel.BoundingBox) ([]*transporter.Profile, error) {
	var dtos []ProfileDTO
	if err := pgcommon.WithinBox(r.withFleet(ctx), "home_", box).Find(&dtos).Error; err != nil {
		return nil, err
	}

	profiles := make([]*transporter.Profile, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *GormTransporterRepository) withFleet(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Drivers", func(db *gorm.DB) *gorm.DB { return db.Order("licence_number") }).
		Preload("Vehicles", func(db *gorm.DB) *gorm.DB { return db.Order("registration_number") })
}
