package kernel

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// EarthRadiusKm is the sphere radius used for every great-circle distance.
const EarthRadiusKm = 6371.0

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

var (
	ErrPointIsNotConstructed    = errs.NewValueIsRequiredError("point must be created via NewPoint")
	ErrAddressIsNotConstructed  = errs.NewValueIsRequiredError("address must be created via NewAddress")
	ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")
)

// Point is a validated latitude/longitude pair in degrees.
type Point struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewPoint validates lat ∈ [-90, 90] and lng ∈ [-180, 180]; both violations are reported together.
func NewPoint(lat, lng float64) (Point, error) {
	p := Point{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(lat), p.setLongitude(lng)); err != nil {
		return Point{}, err
	}

	return p, nil
}

func (p Point) Validate() error {
	return p.guard.Validate(ErrPointIsNotConstructed)
}

func (p Point) Latitude() float64 {
	return p.lat
}

func (p Point) Longitude() float64 {
	return p.lng
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%.6f,%.6f)", p.lat, p.lng)
}

// DistanceKm returns the Haversine great-circle distance to other in kilometres.
func (p Point) DistanceKm(other Point) float64 {
	lat1 := degreesToRadians(p.lat)
	lat2 := degreesToRadians(other.lat)
	dLat := degreesToRadians(other.lat - p.lat)
	dLng := degreesToRadians(other.lng - p.lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// BoundingBox returns a lat/lng rectangle containing every point within radiusKm of p.
// The box is a superset of the Haversine disc and is only meant as a pre-filter.
func (p Point) BoundingBox(radiusKm float64) BoundingBox {
	if radiusKm < 0 {
		radiusKm = 0
	}
	angular := radiusKm / EarthRadiusKm
	dLat := radiansToDegrees(angular) + boxMarginDeg

	box := BoundingBox{
		MinLat: p.lat - dLat,
		MaxLat: p.lat + dLat,
	}

	if box.MinLat <= LatitudeMin || box.MaxLat >= LatitudeMax {
		box.MinLat = math.Max(box.MinLat, LatitudeMin)
		box.MaxLat = math.Min(box.MaxLat, LatitudeMax)
		box.AnyLongitude = true
		return box
	}

	ratio := math.Sin(angular) / math.Cos(degreesToRadians(p.lat))
	if ratio >= 1 {
		box.AnyLongitude = true
		return box
	}
	dLng := radiansToDegrees(math.Asin(ratio)) + boxMarginDeg
	box.MinLng = p.lng - dLng
	box.MaxLng = p.lng + dLng
	if box.MinLng < LongitudeMin || box.MaxLng > LongitudeMax {
		box.MinLng, box.MaxLng = 0, 0
		box.AnyLongitude = true
	}

	return box
}

func (p *Point) setLatitude(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}

	p.lat = lat
	return nil
}

func (p *Point) setLongitude(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", lng, LongitudeMin, LongitudeMax)
	}

	p.lng = lng
	return nil
}

// boxMarginDeg widens the pre-filter so float rounding never drops a point on the circle edge.
const boxMarginDeg = 1e-9

// BoundingBox is a lat/lng rectangle. When AnyLongitude is set the box touches a pole
// or crosses the antimeridian and only the latitude bounds apply.
type BoundingBox struct {
	MinLat       float64
	MaxLat       float64
	MinLng       float64
	MaxLng       float64
	AnyLongitude bool
}

// Contains reports whether p falls inside the box.
func (b BoundingBox) Contains(p Point) bool {
	if p.lat < b.MinLat || p.lat > b.MaxLat {
		return false
	}
	if b.AnyLongitude {
		return true
	}
	return p.lng >= b.MinLng && p.lng <= b.MaxLng
}

// Address is the administrative part of a location: division, district and thana,
// an optional postal code and a free-text address line.
type Address struct { //nolint:recvcheck //using for validation
	division   string
	district   string
	thana      string
	postalCode string
	line       string
	guard      guard.ConstructorGuard
}

// NewAddress trims every part and requires all of them except the postal code.
func NewAddress(division, district, thana, postalCode, line string) (Address, error) {
	a := Address{
		postalCode: strings.TrimSpace(postalCode),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requiredText(&a.division, "division", division),
		requiredText(&a.district, "district", district),
		requiredText(&a.thana, "thana", thana),
		requiredText(&a.line, "addressLine", line),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Division() string   { return a.division }
func (a Address) District() string   { return a.district }
func (a Address) Thana() string      { return a.thana }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Line() string       { return a.line }

// Location is a Point plus its Address. Equality is by value.
type Location struct { //nolint:recvcheck //using for validation
	point   Point
	address Address
	guard   guard.ConstructorGuard
}

// NewLocation validates coordinates and address together and reports every violated part.
func NewLocation(lat, lng float64, division, district, thana, postalCode, line string) (Location, error) {
	point, pointErr := NewPoint(lat, lng)
	address, addressErr := NewAddress(division, district, thana, postalCode, line)
	if err := errors.Join(pointErr, addressErr); err != nil {
		return Location{}, err
	}

	return Location{
		point:   point,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Point() Point {
	return l.point
}

func (l Location) Address() Address {
	return l.address
}

func (l Location) Latitude() float64 {
	return l.point.lat
}

func (l Location) Longitude() float64 {
	return l.point.lng
}

// IsEqual compares two constructed locations by value.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

// DistanceKm returns the Haversine distance between the two points.
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return l.point.DistanceKm(other.point), nil
}

func (l Location) String() string {
	return fmt.Sprintf("%s, %s, %s (%.6f,%.6f)",
		l.address.thana, l.address.district, l.address.division, l.point.lat, l.point.lng)
}

func requiredText(dst *string, param, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = value
	return nil
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func radiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
