package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// Position is the last reported location of a job in transit.
type Position struct {
	RequestID     kernel.UUID
	TransporterID kernel.UUID
	Point         kernel.Point
	RecordedAt    time.Time
}

// PositionTracker keeps the latest position per request.
type PositionTracker interface {
	Save(ctx context.Context, position Position) error

	// Last returns the latest position or errs.ErrObjectNotFound.
	Last(ctx context.Context, requestID kernel.UUID) (Position, error)
}
