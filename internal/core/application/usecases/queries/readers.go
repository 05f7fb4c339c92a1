// Package queries contains the read operations of the marketplace. Queries never
// mutate aggregates; they load them through read-only repositories and shape the
// result for the caller.
package queries

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/pkg/errs"
)

type (
	RequestReader interface {
		Get(ctx context.Context, id kernel.UUID) (*transport.Request, error)
		ListAcceptingBidsWithin(ctx context.Context, box kernel.BoundingBox) ([]*transport.Request, error)
		ListCompletedByTransporter(ctx context.Context, transporterID kernel.UUID) ([]*transport.Request, error)
	}

	TransporterReader interface {
		GetByUserID(ctx context.Context, userID kernel.UUID) (*transporter.Profile, error)
		ListWithin(ctx context.Context, box kernel.BoundingBox) ([]*transporter.Profile, error)
	}
)

func requireCaller(callerID kernel.UUID) error {
	if callerID.IsZero() {
		return errs.ErrUnauthenticated
	}
	return nil
}

func requiredID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValidationError(errs.NewValueIsRequiredErrorWithCause(param, err))
	}
	return nil
}

// profileOf resolves the caller's transporter profile; callers without one are not transporters.
func profileOf(ctx context.Context, reader TransporterReader, userID kernel.UUID) (*transporter.Profile, error) {
	profile, err := reader.GetByUserID(ctx, userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: caller has no transporter profile", errs.ErrUnauthorized)
	}
	return profile, err
}
