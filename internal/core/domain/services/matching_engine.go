package services

import (
	"cmp"
	"math"
	"slices"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/pkg/errs"
)

// NearbyRequest is one request surfaced to a transporter.
type NearbyRequest struct {
	Request    *transport.Request
	DistanceKm float64
	BidCount   int
}

// CandidateTransporter is one transporter able to serve a pickup point.
type CandidateTransporter struct {
	Profile    *transporter.Profile
	DistanceKm float64
}

// MatchingEngine ranks open requests for a transporter and transporters for a request.
// It is read-only: nothing it is given is mutated.
//
// Business rules:
//   - Only requests that accept bids (Open, Bidding) are surfaced
//   - Membership is the exact Haversine test distance <= radius
//   - Requests are ordered by distance, then earlier scheduled pickup, then id
//   - Transporters are ordered by distance, then higher rating, then id
//
// Example usage:
//
//	engine := NewMatchingEngine()
//	radius, _ := engine.EffectiveRadius(profile.ServiceRadiusKm(), override, cfg.MaxServiceRadiusKm)
//	nearby := engine.NearbyRequests(profile.Home().Point(), radius, candidates)
type MatchingEngine struct{}

func NewMatchingEngine() MatchingEngine {
	return MatchingEngine{}
}

// EffectiveRadius picks the override when present, else the configured radius, and
// caps the result at maxKm. A non-positive override is a validation error.
func (MatchingEngine) EffectiveRadius(configuredKm float64, overrideKm *float64, maxKm float64) (float64, error) {
	radius := configuredKm
	if overrideKm != nil {
		if math.IsNaN(*overrideKm) || *overrideKm <= 0 {
			return 0, errs.NewValidationError(errs.NewValueIsOutOfRangeError("radiusKm", *overrideKm, 0, maxKm))
		}
		radius = *overrideKm
	}
	if maxKm > 0 && radius > maxKm {
		radius = maxKm
	}
	return radius, nil
}

// NearbyRequests filters candidates to those accepting bids within radiusKm of origin.
// Candidates may come pre-filtered by a bounding box; the exact test is applied here.
func (MatchingEngine) NearbyRequests(origin kernel.Point, radiusKm float64, candidates []*transport.Request) []NearbyRequest {
	result := make([]NearbyRequest, 0, len(candidates))
	for _, r := range candidates {
		if r == nil || !r.Status().IsAcceptingBids() {
			continue
		}
		d := origin.DistanceKm(r.Pickup().Point())
		if d > radiusKm {
			continue
		}
		result = append(result, NearbyRequest{
			Request:    r,
			DistanceKm: d,
			BidCount:   r.PendingBidCount(),
		})
	}

	slices.SortStableFunc(result, func(a, b NearbyRequest) int {
		return cmp.Or(
			cmp.Compare(a.DistanceKm, b.DistanceKm),
			a.Request.ScheduledAt().Compare(b.Request.ScheduledAt()),
			a.Request.ID().Compare(b.Request.ID()),
		)
	})
	return result
}

// CandidateTransporters returns the profiles whose own service radius covers pickup.
func (MatchingEngine) CandidateTransporters(pickup kernel.Point, profiles []*transporter.Profile) []CandidateTransporter {
	result := make([]CandidateTransporter, 0, len(profiles))
	for _, p := range profiles {
		if p == nil {
			continue
		}
		covered, d := p.Covers(pickup)
		if !covered {
			continue
		}
		result = append(result, CandidateTransporter{Profile: p, DistanceKm: d})
	}

	slices.SortStableFunc(result, func(a, b CandidateTransporter) int {
		return cmp.Or(
			cmp.Compare(a.DistanceKm, b.DistanceKm),
			cmp.Compare(b.Profile.Rating(), a.Profile.Rating()),
			a.Profile.ID().Compare(b.Profile.ID()),
		)
	})
	return result
}
