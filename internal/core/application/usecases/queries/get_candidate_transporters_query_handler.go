package queries

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

type GetCandidateTransportersQueryHandler struct {
	requests     RequestReader
	transporters TransporterReader
	engine       services.MatchingEngine
	maxRadiusKm  float64
}

func NewGetCandidateTransportersQueryHandler(
	requests RequestReader,
	transporters TransporterReader,
	engine services.MatchingEngine,
	maxRadiusKm float64,
) GetCandidateTransportersQueryHandler {
	return GetCandidateTransportersQueryHandler{
		requests:     requests,
		transporters: transporters,
		engine:       engine,
		maxRadiusKm:  maxRadiusKm,
	}
}

// Handle scans homes within the largest allowed radius of the pickup, then keeps the
// profiles whose own radius reaches it.
func (h GetCandidateTransportersQueryHandler) Handle(
	ctx context.Context,
	query GetCandidateTransportersQuery,
) ([]CandidateView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	request, err := h.requests.Get(ctx, query.RequestID())
	if err != nil {
		return nil, err
	}
	if !request.IsRequester(query.CallerID()) {
		return nil, fmt.Errorf("%w: only the requester can list candidates", errs.ErrUnauthorized)
	}

	pickup := request.Pickup().Point()
	profiles, err := h.transporters.ListWithin(ctx, pickup.BoundingBox(h.maxRadiusKm))
	if err != nil {
		return nil, err
	}

	candidates := h.engine.CandidateTransporters(pickup, profiles)
	views := make([]CandidateView, 0, len(candidates))
	for _, c := range candidates {
		p := c.Profile
		views = append(views, CandidateView{
			ProfileID:       p.ID(),
			Type:            p.Type().String(),
			ContactName:     p.Contact().Name,
			ContactPhone:    p.Contact().Phone,
			Verified:        p.IsVerified(),
			Rating:          p.Rating(),
			CompletedJobs:   p.CompletedJobs(),
			ServiceRadiusKm: p.ServiceRadiusKm(),
			DistanceKm:      c.DistanceKm,
		})
	}
	return views, nil
}
