package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/pkg/retry"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fastRetrier retries conflicts without noticeable delay.
func fastRetrier() *retry.Retrier {
	return retry.New(retry.Config{
		MaxAttempts: 3,
		BaseDelay:   time.Microsecond,
		MaxDelay:    time.Millisecond,
		Multiplier:  2,
		Retryable:   retry.IsConflict,
	}, discardLogger())
}

func dhaka() commands.LocationInput {
	return commands.LocationInput{
		Latitude:   23.8103,
		Longitude:  90.4125,
		Division:   "Dhaka",
		District:   "Dhaka",
		Thana:      "Gulshan",
		PostalCode: "1212",
		Line:       "Road 5, House 12",
	}
}

func chattogram() commands.LocationInput {
	return commands.LocationInput{
		Latitude:  22.3569,
		Longitude: 91.7832,
		Division:  "Chattogram",
		District:  "Chattogram",
		Thana:     "Panchlaish",
		Line:      "CDA Avenue 14",
	}
}

func location(t *testing.T, in commands.LocationInput) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(in.Latitude, in.Longitude, in.Division, in.District, in.Thana, in.PostalCode, in.Line)
	require.NoError(t, err)
	return loc
}

func bdt(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.NewFromInt(amount), "BDT")
	require.NoError(t, err)
	return m
}

// openRequest builds an Open request scheduled for tomorrow with its creation event cleared.
func openRequest(t *testing.T, requesterID kernel.UUID, method transport.PaymentMethod) *transport.Request {
	t.Helper()
	r, err := transport.NewRequest(requesterID, location(t, dhaka()), location(t, chattogram()), transport.RequestDetails{
		ScheduledAt:   time.Now().Add(24 * time.Hour),
		GoodsType:     "Furniture",
		WeightKg:      350,
		PaymentMethod: method,
	}, time.Now())
	require.NoError(t, err)
	r.ClearEvents()
	return r
}

func biddingRequest(t *testing.T, requesterID kernel.UUID, bidder *transporter.Profile) (*transport.Request, *transport.Bid) {
	t.Helper()
	r := openRequest(t, requesterID, transport.Cash)
	bid, err := r.SubmitBid(bidder.ID(), bdt(t, 12000), "", time.Now())
	require.NoError(t, err)
	r.ClearEvents()
	return r, bid
}

func confirmedRequest(t *testing.T, requesterID kernel.UUID, winner *transporter.Profile) *transport.Request {
	t.Helper()
	r, bid := biddingRequest(t, requesterID, winner)
	require.NoError(t, r.AcceptBid(bid.ID(), requesterID, time.Now()))
	r.ClearEvents()
	return r
}

func inTransitRequest(t *testing.T, requesterID kernel.UUID, winner *transporter.Profile) *transport.Request {
	t.Helper()
	r := confirmedRequest(t, requesterID, winner)
	require.NoError(t, r.StartTransit(winner.ID(), time.Now()))
	r.ClearEvents()
	return r
}

func completedRequest(t *testing.T, requesterID kernel.UUID, winner *transporter.Profile) *transport.Request {
	t.Helper()
	r := inTransitRequest(t, requesterID, winner)
	require.NoError(t, r.CompleteDelivery(winner.ID(), true, time.Now()))
	r.ClearEvents()
	return r
}

func newProfile(t *testing.T, userID kernel.UUID) *transporter.Profile {
	t.Helper()
	p, err := transporter.NewProfile(
		userID,
		transporter.Individual,
		transporter.Contact{Name: "Rahim Uddin", Phone: "+8801711000000"},
		"",
		location(t, dhaka()),
		0,
		time.Now(),
	)
	require.NoError(t, err)
	return p
}

// fleetProfile returns a profile with one active vehicle and one active driver.
func fleetProfile(t *testing.T, userID kernel.UUID) (*transporter.Profile, *transporter.Vehicle, *transporter.Driver) {
	t.Helper()
	p := newProfile(t, userID)
	nextYear := time.Now().AddDate(1, 0, 0)

	v, err := transporter.NewVehicle("dhaka metro-ta 11-2233", "Covered Van", 3000, nextYear, time.Now())
	require.NoError(t, err)
	require.NoError(t, p.AddVehicle(v))

	d, err := transporter.NewDriver("Karim Mia", "+8801811000000", "DK-0042", nextYear, time.Now())
	require.NoError(t, err)
	require.NoError(t, p.AddDriver(d))

	return p, v, d
}

// storedBiddingRequest rebuilds the same Bidding request with one pending bid on every call,
// as a repository would on each read.
func storedBiddingRequest(t *testing.T, requestID, requesterID, bidID, transporterID kernel.UUID) *transport.Request {
	t.Helper()
	submittedAt := time.Now().Add(-time.Hour)
	bid, err := transport.RestoreBid(bidID, requestID, transporterID, bdt(t, 10000), "", submittedAt, transport.BidPending)
	require.NoError(t, err)

	r, err := transport.RestoreRequest(
		requestID,
		requesterID,
		location(t, dhaka()),
		location(t, chattogram()),
		transport.RequestDetails{
			ScheduledAt:   time.Now().Add(24 * time.Hour),
			GoodsType:     "Furniture",
			WeightKg:      350,
			PaymentMethod: transport.Cash,
		},
		false,
		transport.Bidding,
		nil,
		[]*transport.Bid{bid},
		nil,
		submittedAt,
		3,
	)
	require.NoError(t, err)
	return r
}
