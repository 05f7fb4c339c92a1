package transporter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrDriverIsNotConstructed  = errors.New("Driver must be created via NewDriver or RestoreDriver")
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle or RestoreVehicle")
	// ErrLicenceExpired is returned when a driver's licence expires before the job is assigned.
	ErrLicenceExpired = errors.New("driving licence has expired")
	// ErrFitnessExpired is returned when a vehicle's fitness certificate has expired.
	ErrFitnessExpired = errors.New("vehicle fitness certificate has expired")
	// ErrNotActive is returned when a driver or vehicle is not in Active status.
	ErrNotActive = errors.New("resource is not active")
)

// DriverStatus is the availability of a driver.
type DriverStatus int

const (
	DriverUnknown DriverStatus = iota
	DriverActive
	DriverInactive
	DriverSuspended
)

func (s DriverStatus) Validate() error {
	if s < DriverActive || s > DriverSuspended {
		return errs.NewValueIsInvalidErrorWithCause("driverStatus", fmt.Errorf("%d is not a valid driver status", s))
	}
	return nil
}

func (s DriverStatus) String() string {
	switch s {
	case DriverActive:
		return "Active"
	case DriverInactive:
		return "Inactive"
	case DriverSuspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}

// VehicleStatus is the availability of a vehicle.
type VehicleStatus int

const (
	VehicleUnknown VehicleStatus = iota
	VehicleActive
	VehicleMaintenance
	VehicleInactive
)

func (s VehicleStatus) Validate() error {
	if s < VehicleActive || s > VehicleInactive {
		return errs.NewValueIsInvalidErrorWithCause("vehicleStatus", fmt.Errorf("%d is not a valid vehicle status", s))
	}
	return nil
}

func (s VehicleStatus) String() string {
	switch s {
	case VehicleActive:
		return "Active"
	case VehicleMaintenance:
		return "Maintenance"
	case VehicleInactive:
		return "Inactive"
	default:
		return "Unknown"
	}
}

// Driver is a person a transporter can put behind the wheel of a job.
type Driver struct {
	id            kernel.UUID
	name          string
	phone         string
	licenceNumber string
	licenceExpiry time.Time
	status        DriverStatus
	guard         guard.ConstructorGuard
}

// NewDriver creates an Active driver whose licence is still valid at now.
func NewDriver(name, phone, licenceNumber string, licenceExpiry, now time.Time) (*Driver, error) {
	d, err := RestoreDriver(kernel.NewUUID(), name, phone, licenceNumber, licenceExpiry, DriverActive)
	if err != nil {
		return nil, err
	}
	if !d.licenceExpiry.After(now) {
		return nil, errs.NewValueIsInvalidErrorWithCause("licenceExpiry", ErrLicenceExpired)
	}
	return d, nil
}

func RestoreDriver(
	id kernel.UUID,
	name, phone, licenceNumber string,
	licenceExpiry time.Time,
	status DriverStatus,
) (*Driver, error) {
	d := &Driver{
		id:    id,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requiredID("driverId", id),
		requiredText(&d.name, "name", name),
		requiredText(&d.phone, "phone", phone),
		requiredText(&d.licenceNumber, "licenceNumber", licenceNumber),
		requiredTime(&d.licenceExpiry, "licenceExpiry", licenceExpiry),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.UUID          { return d.id }
func (d *Driver) Name() string             { return d.name }
func (d *Driver) Phone() string            { return d.phone }
func (d *Driver) LicenceNumber() string    { return d.licenceNumber }
func (d *Driver) LicenceExpiry() time.Time { return d.licenceExpiry }
func (d *Driver) Status() DriverStatus     { return d.status }

// CanDriveAt reports why the driver cannot take a job at t, or nil.
func (d *Driver) CanDriveAt(t time.Time) error {
	if d.status != DriverActive {
		return fmt.Errorf("%w: driver is %s", ErrNotActive, d.status)
	}
	if !d.licenceExpiry.After(t) {
		return ErrLicenceExpired
	}
	return nil
}

// ChangeStatus sets a new availability status.
func (d *Driver) ChangeStatus(status DriverStatus) error {
	return d.setStatus(status)
}

func (d *Driver) setStatus(status DriverStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

// Vehicle is a registered vehicle of a transporter's fleet.
type Vehicle struct {
	id                 kernel.UUID
	registrationNumber string
	vehicleType        string
	capacityKg         float64
	fitnessExpiry      time.Time
	status             VehicleStatus
	guard              guard.ConstructorGuard
}

// NewVehicle creates an Active vehicle. The registration number is upper-cased and
// the fitness certificate must be valid at now.
func NewVehicle(registrationNumber, vehicleType string, capacityKg float64, fitnessExpiry, now time.Time) (*Vehicle, error) {
	v, err := RestoreVehicle(kernel.NewUUID(), registrationNumber, vehicleType, capacityKg, fitnessExpiry, VehicleActive)
	if err != nil {
		return nil, err
	}
	if !v.fitnessExpiry.After(now) {
		return nil, errs.NewValueIsInvalidErrorWithCause("fitnessExpiry", ErrFitnessExpired)
	}
	return v, nil
}

func RestoreVehicle(
	id kernel.UUID,
	registrationNumber, vehicleType string,
	capacityKg float64,
	fitnessExpiry time.Time,
	status VehicleStatus,
) (*Vehicle, error) {
	v := &Vehicle{
		id:    id,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requiredID("vehicleId", id),
		requiredText(&v.registrationNumber, "registrationNumber", strings.ToUpper(registrationNumber)),
		requiredText(&v.vehicleType, "vehicleType", vehicleType),
		v.setCapacityKg(capacityKg),
		requiredTime(&v.fitnessExpiry, "fitnessExpiry", fitnessExpiry),
		v.setStatus(status),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() kernel.UUID            { return v.id }
func (v *Vehicle) RegistrationNumber() string { return v.registrationNumber }
func (v *Vehicle) VehicleType() string        { return v.vehicleType }
func (v *Vehicle) CapacityKg() float64        { return v.capacityKg }
func (v *Vehicle) FitnessExpiry() time.Time   { return v.fitnessExpiry }
func (v *Vehicle) Status() VehicleStatus      { return v.status }

// CanOperateAt reports why the vehicle cannot serve a job at t, or nil.
func (v *Vehicle) CanOperateAt(t time.Time) error {
	if v.status != VehicleActive {
		return fmt.Errorf("%w: vehicle is %s", ErrNotActive, v.status)
	}
	if !v.fitnessExpiry.After(t) {
		return ErrFitnessExpired
	}
	return nil
}

// ChangeStatus sets a new availability status.
func (v *Vehicle) ChangeStatus(status VehicleStatus) error {
	return v.setStatus(status)
}

func (v *Vehicle) setCapacityKg(capacityKg float64) error {
	if capacityKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacityKg", fmt.Errorf("%v is not greater than 0", capacityKg))
	}
	v.capacityKg = capacityKg
	return nil
}

func (v *Vehicle) setStatus(status VehicleStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	v.status = status
	return nil
}

func requiredID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}

func requiredText(dst *string, param, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = value
	return nil
}

func requiredTime(dst *time.Time, param string, value time.Time) error {
	if value.IsZero() {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = value.UTC()
	return nil
}
