package commands

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddVehicleCommandIsNotConstructed = errors.New(
	"AddVehicleCommand must be created via NewAddVehicleCommand constructor",
)

// AddVehicleCommand registers a vehicle in the caller's fleet.
type AddVehicleCommand struct {
	callerID           kernel.UUID
	registrationNumber string
	vehicleType        string
	capacityKg         float64
	fitnessExpiry      time.Time

	guard guard.ConstructorGuard
}

func NewAddVehicleCommand(
	callerID kernel.UUID,
	registrationNumber, vehicleType string,
	capacityKg float64,
	fitnessExpiry time.Time,
) (AddVehicleCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return AddVehicleCommand{}, err
	}

	var problems []error
	if strings.TrimSpace(registrationNumber) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("registrationNumber"))
	}
	if strings.TrimSpace(vehicleType) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("vehicleType"))
	}
	if fitnessExpiry.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("fitnessExpiry"))
	}
	if err := errs.NewValidationError(problems...); err != nil {
		return AddVehicleCommand{}, err
	}

	return AddVehicleCommand{
		callerID:           callerID,
		registrationNumber: registrationNumber,
		vehicleType:        vehicleType,
		capacityKg:         capacityKg,
		fitnessExpiry:      fitnessExpiry,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c AddVehicleCommand) Validate() error {
	return c.guard.Validate(ErrAddVehicleCommandIsNotConstructed)
}

func (c AddVehicleCommand) CallerID() kernel.UUID      { return c.callerID }
func (c AddVehicleCommand) RegistrationNumber() string { return c.registrationNumber }
func (c AddVehicleCommand) VehicleType() string        { return c.vehicleType }
func (c AddVehicleCommand) CapacityKg() float64        { return c.capacityKg }
func (c AddVehicleCommand) FitnessExpiry() time.Time   { return c.fitnessExpiry }
