package services_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchingEngine_NearbyRequests(t *testing.T) {
	engine := services.NewMatchingEngine()

	t.Run("should include requests within radius and exclude far ones", func(t *testing.T) {
		r := request(t, 23.8103, 90.4125, 24*time.Hour, transport.Cash)

		near := engine.NearbyRequests(point(t, 23.7000, 90.3500), 50, []*transport.Request{r})
		far := engine.NearbyRequests(point(t, 25.0000, 92.0000), 50, []*transport.Request{r})

		require.Len(t, near, 1)
		assert.Same(t, r, near[0].Request)
		assert.InDelta(t, 13.8, near[0].DistanceKm, 0.5)
		assert.Empty(t, far)
	})

	t.Run("should skip requests that do not accept bids", func(t *testing.T) {
		open := request(t, 23.8103, 90.4125, time.Hour, transport.Cash)
		cancelled := request(t, 23.8103, 90.4125, time.Hour, transport.Cash)
		_, err := cancelled.Cancel(cancelled.RequesterID(), now)
		require.NoError(t, err)
		completed := completedJob(t, kernel.NewUUID(), money(t, "100", "BDT"), transport.Online, false, time.Hour)

		got := engine.NearbyRequests(point(t, 23.8103, 90.4125), 10, []*transport.Request{open, cancelled, completed, nil})

		require.Len(t, got, 1)
		assert.Same(t, open, got[0].Request)
	})

	t.Run("should order by distance then schedule then id and count bids", func(t *testing.T) {
		later := request(t, 23.8103, 90.4125, 48*time.Hour, transport.Cash)
		sooner := request(t, 23.8103, 90.4125, 24*time.Hour, transport.Cash)
		closest := request(t, 23.7500, 90.3800, 72*time.Hour, transport.Online)
		_, err := later.SubmitBid(kernel.NewUUID(), money(t, "500", "BDT"), "", now)
		require.NoError(t, err)
		_, err = later.SubmitBid(kernel.NewUUID(), money(t, "450", "BDT"), "", now)
		require.NoError(t, err)

		got := engine.NearbyRequests(point(t, 23.7000, 90.3500), 50, []*transport.Request{later, sooner, closest})

		require.Len(t, got, 3)
		assert.Same(t, closest, got[0].Request)
		assert.Same(t, sooner, got[1].Request)
		assert.Same(t, later, got[2].Request)
		assert.Equal(t, 2, got[2].BidCount)
		assert.Zero(t, got[1].BidCount)
	})

	t.Run("results never exceed radius and are sorted by distance", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(7, 11))
		origin := point(t, 23.8, 90.4)
		candidates := make([]*transport.Request, 0, 200)
		for range 200 {
			lat := 22 + rng.Float64()*4
			lng := 88.5 + rng.Float64()*4
			candidates = append(candidates, request(t, lat, lng, time.Duration(1+rng.IntN(100))*time.Hour, transport.Cash))
		}

		for _, radius := range []float64{5, 50, 150, 300} {
			got := engine.NearbyRequests(origin, radius, candidates)

			expected := 0
			for _, c := range candidates {
				if origin.DistanceKm(c.Pickup().Point()) <= radius {
					expected++
				}
			}
			require.Len(t, got, expected)
			for i, n := range got {
				assert.LessOrEqual(t, n.DistanceKm, radius)
				if i > 0 {
					assert.GreaterOrEqual(t, n.DistanceKm, got[i-1].DistanceKm)
				}
			}
		}
	})
}

func TestMatchingEngine_EffectiveRadius(t *testing.T) {
	engine := services.NewMatchingEngine()
	override := func(v float64) *float64 { return &v }

	testCases := []struct {
		name       string
		configured float64
		override   *float64
		want       float64
	}{
		{"configured radius without override", 40, nil, 40},
		{"override replaces configured radius", 40, override(12.5), 12.5},
		{"override capped at maximum", 40, override(1000), transporter.MaxServiceRadiusKm},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.EffectiveRadius(tc.configured, tc.override, transporter.MaxServiceRadiusKm)

			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}

	t.Run("should reject non-positive override", func(t *testing.T) {
		for _, v := range []float64{0, -3} {
			_, err := engine.EffectiveRadius(40, override(v), transporter.MaxServiceRadiusKm)

			require.ErrorIs(t, err, errs.ErrValidation)
			assert.Contains(t, err.Error(), "radiusKm")
		}
	})
}

func TestMatchingEngine_CandidateTransporters(t *testing.T) {
	engine := services.NewMatchingEngine()
	pickup := point(t, 23.8103, 90.4125)

	nearLowRating := profile(t, 23.7000, 90.3500, 50)
	require.NoError(t, nearLowRating.ReceiveRating(3))
	nearHighRating := profile(t, 23.7000, 90.3500, 50)
	require.NoError(t, nearHighRating.ReceiveRating(5))
	closest := profile(t, 23.8000, 90.4000, 5)
	tooSmallRadius := profile(t, 23.7000, 90.3500, 10)
	far := profile(t, 25.0000, 92.0000, 100)

	got := engine.CandidateTransporters(pickup, []*transporter.Profile{far, nearLowRating, tooSmallRadius, nearHighRating, closest})

	require.Len(t, got, 3)
	assert.Same(t, closest, got[0].Profile)
	assert.Same(t, nearHighRating, got[1].Profile)
	assert.Same(t, nearLowRating, got[2].Profile)
	assert.InDelta(t, got[1].DistanceKm, got[2].DistanceKm, 1e-9)
}
