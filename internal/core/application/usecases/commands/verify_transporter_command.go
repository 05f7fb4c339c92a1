package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrVerifyTransporterCommandIsNotConstructed = errors.New(
	"VerifyTransporterCommand must be created via NewVerifyTransporterCommand constructor",
)

type VerifyTransporterCommand struct {
	callerID   kernel.UUID
	callerRole string
	profileID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewVerifyTransporterCommand accepts only callers with RoleAdmin.
func NewVerifyTransporterCommand(callerID kernel.UUID, callerRole string, profileID kernel.UUID) (VerifyTransporterCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return VerifyTransporterCommand{}, err
	}
	if callerRole != RoleAdmin {
		return VerifyTransporterCommand{}, errs.ErrUnauthorized
	}
	if err := errs.NewValidationError(requiredID("profileId", profileID)); err != nil {
		return VerifyTransporterCommand{}, err
	}

	return VerifyTransporterCommand{
		callerID:   callerID,
		callerRole: callerRole,
		profileID:  profileID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c VerifyTransporterCommand) Validate() error {
	return c.guard.Validate(ErrVerifyTransporterCommandIsNotConstructed)
}

func (c VerifyTransporterCommand) CallerID() kernel.UUID  { return c.callerID }
func (c VerifyTransporterCommand) ProfileID() kernel.UUID { return c.profileID }
