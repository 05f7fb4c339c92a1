package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// RoleAdmin is the caller role allowed to verify transporters.
const RoleAdmin = "admin"

func requireCaller(callerID kernel.UUID) error {
	if callerID.IsZero() {
		return errs.ErrUnauthenticated
	}
	return nil
}

// transporterOf resolves the caller's transporter profile. A caller without one is not allowed
// to act as a transporter.
func transporterOf(ctx context.Context, repo ports.TransporterRepository, userID kernel.UUID) (*transporter.Profile, error) {
	profile, err := repo.GetByUserID(ctx, userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: caller has no transporter profile", errs.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func requiredID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
