package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRegisterTransporterCommandIsNotConstructed = errors.New(
	"RegisterTransporterCommand must be created via NewRegisterTransporterCommand constructor",
)

// RegisterTransporterCommand creates the caller's transporter profile.
type RegisterTransporterCommand struct {
	callerID        kernel.UUID
	transporterType transporter.Type
	contact         transporter.Contact
	tradeLicense    string
	home            kernel.Location
	serviceRadiusKm float64

	guard guard.ConstructorGuard
}

// NewRegisterTransporterCommand parses the transporter type and home location. Profile rules
// such as the agency trade licence are enforced when the profile is created.
func NewRegisterTransporterCommand(
	callerID kernel.UUID,
	transporterType string,
	contact transporter.Contact,
	tradeLicense string,
	home LocationInput,
	serviceRadiusKm float64,
) (RegisterTransporterCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return RegisterTransporterCommand{}, err
	}

	parsedType, typeErr := transporter.ParseType(transporterType)
	homeLocation, homeErr := home.toLocation("home")
	if err := errs.NewValidationError(typeErr, homeErr); err != nil {
		return RegisterTransporterCommand{}, err
	}

	return RegisterTransporterCommand{
		callerID:        callerID,
		transporterType: parsedType,
		contact:         contact,
		tradeLicense:    tradeLicense,
		home:            homeLocation,
		serviceRadiusKm: serviceRadiusKm,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterTransporterCommand) Validate() error {
	return c.guard.Validate(ErrRegisterTransporterCommandIsNotConstructed)
}

func (c RegisterTransporterCommand) CallerID() kernel.UUID        { return c.callerID }
func (c RegisterTransporterCommand) Type() transporter.Type       { return c.transporterType }
func (c RegisterTransporterCommand) Contact() transporter.Contact { return c.contact }
func (c RegisterTransporterCommand) TradeLicense() string         { return c.tradeLicense }
func (c RegisterTransporterCommand) Home() kernel.Location        { return c.home }
func (c RegisterTransporterCommand) ServiceRadiusKm() float64     { return c.serviceRadiusKm }
