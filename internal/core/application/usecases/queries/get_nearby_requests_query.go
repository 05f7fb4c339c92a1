package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetNearbyRequestsQueryIsNotConstructed = errors.New(
	"GetNearbyRequestsQuery must be created via NewGetNearbyRequestsQuery constructor",
)

// GetNearbyRequestsQuery lists requests accepting bids around the calling transporter's home.
// A nil radius uses the profile's configured service radius.
type GetNearbyRequestsQuery struct {
	callerID kernel.UUID
	radiusKm *float64

	guard guard.ConstructorGuard
}

func NewGetNearbyRequestsQuery(callerID kernel.UUID, radiusKm *float64) (GetNearbyRequestsQuery, error) {
	if err := requireCaller(callerID); err != nil {
		return GetNearbyRequestsQuery{}, err
	}

	var radius *float64
	if radiusKm != nil {
		r := *radiusKm
		radius = &r
	}

	return GetNearbyRequestsQuery{
		callerID: callerID,
		radiusKm: radius,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetNearbyRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyRequestsQueryIsNotConstructed)
}

func (q GetNearbyRequestsQuery) CallerID() kernel.UUID { return q.callerID }
func (q GetNearbyRequestsQuery) RadiusKm() *float64    { return q.radiusKm }

// RequestSummary is one nearby request as seen by a transporter.
type RequestSummary struct {
	ID            kernel.UUID
	Pickup        kernel.Location
	Drop          kernel.Location
	ScheduledAt   time.Time
	GoodsType     string
	WeightKg      float64
	PaymentMethod string
	Status        string
	DistanceKm    float64
	BidCount      int
}

type GetNearbyRequestsQueryResponse struct {
	RadiusKm float64
	Requests []RequestSummary
}
