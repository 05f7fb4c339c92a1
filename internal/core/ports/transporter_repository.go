package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transporter"
)

// TransporterRepository persists transporter profiles with their drivers and vehicles.
type TransporterRepository interface {
	// Add stores a new profile. A second profile for the same user yields errs.ErrConflict.
	Add(ctx context.Context, profile *transporter.Profile) error

	// Update replaces the stored profile, its drivers and its vehicles.
	Update(ctx context.Context, profile *transporter.Profile) error

	Get(ctx context.Context, id kernel.UUID) (*transporter.Profile, error)

	// GetByUserID returns the profile owned by userID or errs.ErrObjectNotFound.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*transporter.Profile, error)

	// ListWithin returns profiles whose home lies in box.
	ListWithin(ctx context.Context, box kernel.BoundingBox) ([]*transporter.Profile, error)
}
