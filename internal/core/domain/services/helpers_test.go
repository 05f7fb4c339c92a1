package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/core/domain/model/transporter"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func loc(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	l, err := kernel.NewLocation(lat, lng, "Dhaka", "Dhaka", "Tejgaon", "", "Plot 7")
	require.NoError(t, err)
	return l
}

func point(t *testing.T, lat, lng float64) kernel.Point {
	t.Helper()
	p, err := kernel.NewPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func money(t *testing.T, amount, currency string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), currency)
	require.NoError(t, err)
	return m
}

func request(t *testing.T, lat, lng float64, scheduledIn time.Duration, method transport.PaymentMethod) *transport.Request {
	t.Helper()
	r, err := transport.NewRequest(kernel.NewUUID(), loc(t, lat, lng), loc(t, 22.3569, 91.7832), transport.RequestDetails{
		ScheduledAt:   now.Add(scheduledIn),
		GoodsType:     "Electronics",
		WeightKg:      120,
		PaymentMethod: method,
	}, now)
	require.NoError(t, err)
	return r
}

// completedJob drives a request through the whole lifecycle with transporterID as winner.
func completedJob(t *testing.T, transporterID kernel.UUID, amount kernel.Money, method transport.PaymentMethod, cashReceived bool, scheduledIn time.Duration) *transport.Request {
	t.Helper()
	r := request(t, 23.8103, 90.4125, scheduledIn, method)
	bid, err := r.SubmitBid(transporterID, amount, "", now)
	require.NoError(t, err)
	require.NoError(t, r.AcceptBid(bid.ID(), r.RequesterID(), now))
	require.NoError(t, r.StartTransit(transporterID, now))
	require.NoError(t, r.CompleteDelivery(transporterID, cashReceived, now))
	return r
}

func profile(t *testing.T, lat, lng, radiusKm float64) *transporter.Profile {
	t.Helper()
	p, err := transporter.NewProfile(kernel.NewUUID(), transporter.Individual,
		transporter.Contact{Name: "Transporter", Phone: "01900000000"}, "", loc(t, lat, lng), radiusKm, now)
	require.NoError(t, err)
	return p
}
