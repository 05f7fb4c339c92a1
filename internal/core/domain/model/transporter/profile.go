package transporter

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// DefaultServiceRadiusKm is used when a transporter does not choose a radius.
	DefaultServiceRadiusKm = 50.0
	// MaxServiceRadiusKm bounds both the configured radius and per-query overrides.
	MaxServiceRadiusKm = 300.0
)

var (
	ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile or RestoreProfile")
	ErrVehicleNotFound         = errors.New("vehicle not found")
	ErrDriverNotFound          = errors.New("driver not found")
)

// Type distinguishes individual operators from agencies.
type Type int

const (
	TypeUnknown Type = iota
	Individual
	Agency
)

func (t Type) Validate() error {
	if t != Individual && t != Agency {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%d is not a valid transporter type", t))
	}
	return nil
}

func (t Type) String() string {
	switch t {
	case Individual:
		return "Individual"
	case Agency:
		return "Agency"
	default:
		return "Unknown"
	}
}

// ParseType accepts "individual" or "agency" in any case.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "individual":
		return Individual, nil
	case "agency":
		return Agency, nil
	default:
		return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid transporter type", s))
	}
}

// Contact is how requesters reach a transporter.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// Profile is a transporter's identity in the marketplace. One profile exists per user;
// it owns the transporter's drivers and vehicles.
//
// Business rules:
//   - Agencies must register a trade licence
//   - The service radius lies in (0, MaxServiceRadiusKm]
//   - Rating is the running mean of the scores received; completedJobs only grows
//   - Profiles are never deleted
//
// The repository compares and advances version on every write, so a stale copy
// cannot overwrite a newer fleet, rating or job count.
type Profile struct {
	id              kernel.UUID
	userID          kernel.UUID
	transporterType Type
	contact         Contact
	tradeLicense    string
	home            kernel.Location
	serviceRadiusKm float64
	verified        bool
	rating          float64
	ratingCount     int
	completedJobs   int
	drivers         []*Driver
	vehicles        []*Vehicle
	createdAt       time.Time
	version         int64
	guard           guard.ConstructorGuard
}

// NewProfile registers an unverified transporter. A zero radius selects DefaultServiceRadiusKm.
func NewProfile(
	userID kernel.UUID,
	transporterType Type,
	contact Contact,
	tradeLicense string,
	home kernel.Location,
	serviceRadiusKm float64,
	now time.Time,
) (*Profile, error) {
	if serviceRadiusKm == 0 {
		serviceRadiusKm = DefaultServiceRadiusKm
	}

	p, err := RestoreProfile(kernel.NewUUID(), userID, transporterType, contact, tradeLicense, home,
		serviceRadiusKm, false, 0, 0, 0, nil, nil, now, 0)
	if err != nil {
		return nil, errs.NewValidationError(err)
	}
	return p, nil
}

// RestoreProfile rebuilds a persisted profile with its fleet.
func RestoreProfile(
	id kernel.UUID,
	userID kernel.UUID,
	transporterType Type,
	contact Contact,
	tradeLicense string,
	home kernel.Location,
	serviceRadiusKm float64,
	verified bool,
	rating float64,
	ratingCount int,
	completedJobs int,
	drivers []*Driver,
	vehicles []*Vehicle,
	createdAt time.Time,
	version int64,
) (*Profile, error) {
	p := &Profile{
		id:            id,
		version:       version,
		verified:      verified,
		rating:        rating,
		ratingCount:   ratingCount,
		completedJobs: completedJobs,
		createdAt:     createdAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requiredID("profileId", id),
		requiredID("userId", userID),
		p.setType(transporterType),
		p.setContact(contact),
		p.setTradeLicense(transporterType, tradeLicense),
		p.setHome(home),
		p.setServiceRadiusKm(serviceRadiusKm),
		p.setDrivers(drivers),
		p.setVehicles(vehicles),
	); err != nil {
		return nil, err
	}
	p.userID = userID

	return p, nil
}

func (p *Profile) Validate() error {
	if p == nil {
		return ErrProfileIsNotConstructed
	}
	return p.guard.Validate(ErrProfileIsNotConstructed)
}

func (p *Profile) ID() kernel.UUID          { return p.id }
func (p *Profile) UserID() kernel.UUID      { return p.userID }
func (p *Profile) Type() Type               { return p.transporterType }
func (p *Profile) Contact() Contact         { return p.contact }
func (p *Profile) TradeLicense() string     { return p.tradeLicense }
func (p *Profile) Home() kernel.Location    { return p.home }
func (p *Profile) ServiceRadiusKm() float64 { return p.serviceRadiusKm }
func (p *Profile) IsVerified() bool         { return p.verified }
func (p *Profile) Rating() float64          { return p.rating }
func (p *Profile) RatingCount() int         { return p.ratingCount }
func (p *Profile) CompletedJobs() int       { return p.completedJobs }
func (p *Profile) CreatedAt() time.Time     { return p.createdAt }
func (p *Profile) Drivers() []*Driver       { return slices.Clone(p.drivers) }
func (p *Profile) Vehicles() []*Vehicle     { return slices.Clone(p.vehicles) }
func (p *Profile) Version() int64           { return p.version }

// AdvanceVersion is called by the repository once a write with the current version succeeded.
func (p *Profile) AdvanceVersion() {
	p.version++
}

// IsOwnedBy reports whether userID is the profile's owner.
func (p *Profile) IsOwnedBy(userID kernel.UUID) bool {
	return !userID.IsZero() && p.userID.IsEqual(userID)
}

// Covers reports whether point lies within the profile's own service radius of home.
func (p *Profile) Covers(point kernel.Point) (bool, float64) {
	d := p.home.Point().DistanceKm(point)
	return d <= p.serviceRadiusKm, d
}

// Verify marks the profile as verified by an administrator. Verifying twice is a no-op.
func (p *Profile) Verify() {
	p.verified = true
}

// RecordCompletedJob increments the completed-jobs counter.
func (p *Profile) RecordCompletedJob() {
	p.completedJobs++
}

// ReceiveRating folds score into the running mean.
func (p *Profile) ReceiveRating(score int) error {
	if score < 1 || score > 5 {
		return errs.NewValueIsOutOfRangeError("score", score, 1, 5)
	}
	total := p.rating*float64(p.ratingCount) + float64(score)
	p.ratingCount++
	p.rating = total / float64(p.ratingCount)
	return nil
}

// AddVehicle adds v to the fleet. Registration numbers are unique within a profile.
func (p *Profile) AddVehicle(v *Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	for _, existing := range p.vehicles {
		if existing.registrationNumber == v.registrationNumber {
			return errs.NewValueIsInvalidErrorWithCause("registrationNumber",
				fmt.Errorf("%s is already registered", v.registrationNumber))
		}
	}
	p.vehicles = append(p.vehicles, v)
	return nil
}

// AddDriver adds d to the roster. Licence numbers are unique within a profile.
func (p *Profile) AddDriver(d *Driver) error {
	if err := d.Validate(); err != nil {
		return err
	}
	for _, existing := range p.drivers {
		if existing.licenceNumber == d.licenceNumber {
			return errs.NewValueIsInvalidErrorWithCause("licenceNumber",
				fmt.Errorf("%s is already registered", d.licenceNumber))
		}
	}
	p.drivers = append(p.drivers, d)
	return nil
}

// RemoveVehicle drops a vehicle from the fleet. Callers check assignments first.
func (p *Profile) RemoveVehicle(vehicleID kernel.UUID) error {
	i := slices.IndexFunc(p.vehicles, func(v *Vehicle) bool { return v.id.IsEqual(vehicleID) })
	if i < 0 {
		return errs.NewObjectNotFoundErrorWithCause("vehicleId", vehicleID, ErrVehicleNotFound)
	}
	p.vehicles = slices.Delete(p.vehicles, i, i+1)
	return nil
}

// RemoveDriver drops a driver from the roster. Callers check assignments first.
func (p *Profile) RemoveDriver(driverID kernel.UUID) error {
	i := slices.IndexFunc(p.drivers, func(d *Driver) bool { return d.id.IsEqual(driverID) })
	if i < 0 {
		return errs.NewObjectNotFoundErrorWithCause("driverId", driverID, ErrDriverNotFound)
	}
	p.drivers = slices.Delete(p.drivers, i, i+1)
	return nil
}

// Vehicle finds a vehicle of this profile.
func (p *Profile) Vehicle(vehicleID kernel.UUID) (*Vehicle, error) {
	for _, v := range p.vehicles {
		if v.id.IsEqual(vehicleID) {
			return v, nil
		}
	}
	return nil, errs.NewObjectNotFoundErrorWithCause("vehicleId", vehicleID, ErrVehicleNotFound)
}

// Driver finds a driver of this profile.
func (p *Profile) Driver(driverID kernel.UUID) (*Driver, error) {
	for _, d := range p.drivers {
		if d.id.IsEqual(driverID) {
			return d, nil
		}
	}
	return nil, errs.NewObjectNotFoundErrorWithCause("driverId", driverID, ErrDriverNotFound)
}

func (p *Profile) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	p.transporterType = t
	return nil
}

func (p *Profile) setContact(c Contact) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)

	var problems []error
	if c.Name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("contactName"))
	}
	if c.Phone == "" {
		problems = append(problems, errs.NewValueIsRequiredError("contactPhone"))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	p.contact = c
	return nil
}

func (p *Profile) setTradeLicense(t Type, license string) error {
	license = strings.TrimSpace(license)
	if t == Agency && license == "" {
		return errs.NewValueIsRequiredErrorWithCause("tradeLicense", errors.New("agencies must register a trade licence"))
	}
	p.tradeLicense = license
	return nil
}

func (p *Profile) setHome(home kernel.Location) error {
	if err := home.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("home", err)
	}
	p.home = home
	return nil
}

func (p *Profile) setServiceRadiusKm(radiusKm float64) error {
	if math.IsNaN(radiusKm) || radiusKm <= 0 || radiusKm > MaxServiceRadiusKm {
		return errs.NewValueIsOutOfRangeError("serviceRadiusKm", radiusKm, 0, MaxServiceRadiusKm)
	}
	p.serviceRadiusKm = radiusKm
	return nil
}

func (p *Profile) setDrivers(drivers []*Driver) error {
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	p.drivers = slices.Clone(drivers)
	return nil
}

func (p *Profile) setVehicles(vehicles []*Vehicle) error {
	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	p.vehicles = slices.Clone(vehicles)
	return nil
}
