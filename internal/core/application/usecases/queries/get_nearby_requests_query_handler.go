package queries

import (
	"context"

	"marketplace/internal/core/domain/services"
)

// GetNearbyRequestsQueryHandler pre-filters candidates with a bounding box in the store and
// leaves the exact distance test and ordering to the matching engine.
type GetNearbyRequestsQueryHandler struct {
	transporters TransporterReader
	requests     RequestReader
	engine       services.MatchingEngine
	maxRadiusKm  float64
}

func NewGetNearbyRequestsQueryHandler(
	transporters TransporterReader,
	requests RequestReader,
	engine services.MatchingEngine,
	maxRadiusKm float64,
) GetNearbyRequestsQueryHandler {
	return GetNearbyRequestsQueryHandler{
		transporters: transporters,
		requests:     requests,
		engine:       engine,
		maxRadiusKm:  maxRadiusKm,
	}
}

func (h GetNearbyRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyRequestsQuery,
) (GetNearbyRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetNearbyRequestsQueryResponse{}, err
	}

	profile, err := profileOf(ctx, h.transporters, query.CallerID())
	if err != nil {
		return GetNearbyRequestsQueryResponse{}, err
	}

	radius, err := h.engine.EffectiveRadius(profile.ServiceRadiusKm(), query.RadiusKm(), h.maxRadiusKm)
	if err != nil {
		return GetNearbyRequestsQueryResponse{}, err
	}

	origin := profile.Home().Point()
	candidates, err := h.requests.ListAcceptingBidsWithin(ctx, origin.BoundingBox(radius))
	if err != nil {
		return GetNearbyRequestsQueryResponse{}, err
	}

	nearby := h.engine.NearbyRequests(origin, radius, candidates)
	summaries := make([]RequestSummary, 0, len(nearby))
	for _, n := range nearby {
		r := n.Request
		summaries = append(summaries, RequestSummary{
			ID:            r.ID(),
			Pickup:        r.Pickup(),
			Drop:          r.Drop(),
			ScheduledAt:   r.ScheduledAt(),
			GoodsType:     r.GoodsType(),
			WeightKg:      r.WeightKg(),
			PaymentMethod: r.PaymentMethod().String(),
			Status:        r.Status().String(),
			DistanceKm:    n.DistanceKm,
			BidCount:      n.BidCount,
		})
	}

	return GetNearbyRequestsQueryResponse{RadiusKm: radius, Requests: summaries}, nil
}
