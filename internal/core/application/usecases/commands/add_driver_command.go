package commands

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddDriverCommandIsNotConstructed = errors.New(
	"AddDriverCommand must be created via NewAddDriverCommand constructor",
)

// AddDriverCommand registers a driver in the caller's roster.
type AddDriverCommand struct {
	callerID      kernel.UUID
	name          string
	phone         string
	licenceNumber string
	licenceExpiry time.Time

	guard guard.ConstructorGuard
}

func NewAddDriverCommand(
	callerID kernel.UUID,
	name, phone, licenceNumber string,
	licenceExpiry time.Time,
) (AddDriverCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return AddDriverCommand{}, err
	}

	var problems []error
	if strings.TrimSpace(name) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if strings.TrimSpace(phone) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("phone"))
	}
	if strings.TrimSpace(licenceNumber) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("licenceNumber"))
	}
	if licenceExpiry.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("licenceExpiry"))
	}
	if err := errs.NewValidationError(problems...); err != nil {
		return AddDriverCommand{}, err
	}

	return AddDriverCommand{
		callerID:      callerID,
		name:          name,
		phone:         phone,
		licenceNumber: licenceNumber,
		licenceExpiry: licenceExpiry,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c AddDriverCommand) Validate() error {
	return c.guard.Validate(ErrAddDriverCommandIsNotConstructed)
}

func (c AddDriverCommand) CallerID() kernel.UUID    { return c.callerID }
func (c AddDriverCommand) Name() string             { return c.name }
func (c AddDriverCommand) Phone() string            { return c.phone }
func (c AddDriverCommand) LicenceNumber() string    { return c.licenceNumber }
func (c AddDriverCommand) LicenceExpiry() time.Time { return c.licenceExpiry }
