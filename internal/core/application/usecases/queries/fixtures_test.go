package queries_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/core/domain/model/transporter"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func place(t *testing.T, lat, lng float64, district string) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng, "Dhaka", district, "Sadar", "", "Main Road")
	require.NoError(t, err)
	return loc
}

func gulshan(t *testing.T) kernel.Location     { return place(t, 23.7925, 90.4078, "Dhaka") }
func narayanganj(t *testing.T) kernel.Location { return place(t, 23.6238, 90.5000, "Narayanganj") }
func gazipur(t *testing.T) kernel.Location     { return place(t, 23.9999, 90.4203, "Gazipur") }
func chattogram(t *testing.T) kernel.Location  { return place(t, 22.3569, 91.7832, "Chattogram") }
func motijheel(t *testing.T) kernel.Location   { return place(t, 23.7330, 90.4172, "Dhaka") }
func mymensingh(t *testing.T) kernel.Location  { return place(t, 24.7471, 90.4203, "Mymensingh") }

func bdt(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.NewFromInt(amount), "BDT")
	require.NoError(t, err)
	return m
}

func requestAt(t *testing.T, requesterID kernel.UUID, pickup kernel.Location, in time.Duration) *transport.Request {
	t.Helper()
	r, err := transport.NewRequest(requesterID, pickup, chattogram(t), transport.RequestDetails{
		ScheduledAt:   time.Now().Add(in),
		GoodsType:     "Electronics",
		WeightKg:      120,
		PaymentMethod: transport.Cash,
	}, time.Now())
	require.NoError(t, err)
	r.ClearEvents()
	return r
}

func profileAt(t *testing.T, userID kernel.UUID, home kernel.Location, radiusKm float64) *transporter.Profile {
	t.Helper()
	p, err := transporter.NewProfile(
		userID,
		transporter.Individual,
		transporter.Contact{Name: "Rahim Uddin", Phone: "+8801711000000"},
		"",
		home,
		radiusKm,
		time.Now(),
	)
	require.NoError(t, err)
	return p
}

// completedFor runs a request through the whole lifecycle with winner's bid of amount.
func completedFor(
	t *testing.T,
	winner *transporter.Profile,
	amount int64,
	method transport.PaymentMethod,
	cashReceived bool,
) *transport.Request {
	t.Helper()
	requesterID := kernel.NewUUID()
	r, err := transport.NewRequest(requesterID, gulshan(t), chattogram(t), transport.RequestDetails{
		ScheduledAt:   time.Now().Add(time.Hour),
		GoodsType:     "Textiles",
		WeightKg:      800,
		PaymentMethod: method,
	}, time.Now())
	require.NoError(t, err)

	bid, err := r.SubmitBid(winner.ID(), bdt(t, amount), "", time.Now())
	require.NoError(t, err)
	require.NoError(t, r.AcceptBid(bid.ID(), requesterID, time.Now()))
	require.NoError(t, r.StartTransit(winner.ID(), time.Now()))
	require.NoError(t, r.CompleteDelivery(winner.ID(), cashReceived, time.Now()))
	r.ClearEvents()
	return r
}
