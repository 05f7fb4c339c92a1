package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEarningsCalculator(t *testing.T) {
	_, err := services.NewEarningsCalculator("bdt")
	require.NoError(t, err)

	_, err = services.NewEarningsCalculator("TAKA")
	assert.Error(t, err)
}

func TestEarningsCalculator_Report(t *testing.T) {
	calc, err := services.NewEarningsCalculator("BDT")
	require.NoError(t, err)
	me := kernel.NewUUID()

	t.Run("should split by payment method and cash collection", func(t *testing.T) {
		cashCollected := completedJob(t, me, money(t, "1200.50", "BDT"), transport.Cash, true, 2*time.Hour)
		cashPending := completedJob(t, me, money(t, "800", "BDT"), transport.Cash, false, time.Hour)
		online := completedJob(t, me, money(t, "1500", "BDT"), transport.Online, true, 3*time.Hour)

		report, err := calc.Report(me, []*transport.Request{online, cashCollected, cashPending})

		require.NoError(t, err)
		assert.Equal(t, 3, report.TotalJobs)
		assert.True(t, report.TotalEarnings.IsEqual(money(t, "3500.50", "BDT")), report.TotalEarnings.String())
		assert.True(t, report.CashEarnings.IsEqual(money(t, "2000.50", "BDT")))
		assert.True(t, report.OnlineEarnings.IsEqual(money(t, "1500", "BDT")))
		assert.True(t, report.CashReceived.IsEqual(money(t, "1200.50", "BDT")))
		assert.True(t, report.CashPending.IsEqual(money(t, "800", "BDT")))

		require.Len(t, report.Jobs, 3)
		assert.True(t, report.Jobs[0].RequestID.IsEqual(cashPending.ID()))
		assert.True(t, report.Jobs[1].RequestID.IsEqual(cashCollected.ID()))
		assert.True(t, report.Jobs[2].RequestID.IsEqual(online.ID()))
		assert.False(t, report.Jobs[2].CashReceived)
	})

	t.Run("should ignore jobs that are not completed or not won by the transporter", func(t *testing.T) {
		someoneElse := completedJob(t, kernel.NewUUID(), money(t, "999", "BDT"), transport.Online, false, time.Hour)

		inTransit := request(t, 23.8103, 90.4125, time.Hour, transport.Cash)
		bid, err := inTransit.SubmitBid(me, money(t, "300", "BDT"), "", now)
		require.NoError(t, err)
		require.NoError(t, inTransit.AcceptBid(bid.ID(), inTransit.RequesterID(), now))
		require.NoError(t, inTransit.StartTransit(me, now))

		open := request(t, 23.8103, 90.4125, time.Hour, transport.Cash)
		_, err = open.SubmitBid(me, money(t, "250", "BDT"), "", now)
		require.NoError(t, err)

		report, err := calc.Report(me, []*transport.Request{someoneElse, inTransit, open, nil})

		require.NoError(t, err)
		assert.Zero(t, report.TotalJobs)
		assert.True(t, report.TotalEarnings.IsZero())
		assert.Equal(t, "BDT", report.TotalEarnings.Currency())
		assert.Empty(t, report.Jobs)
		assert.NotNil(t, report.Jobs)
	})

	t.Run("should reject amounts in another currency", func(t *testing.T) {
		usd := completedJob(t, me, money(t, "10", "USD"), transport.Online, false, time.Hour)

		_, err := calc.Report(me, []*transport.Request{usd})

		assert.ErrorIs(t, err, kernel.ErrCurrencyMismatch)
	})

	t.Run("cash totals always add up", func(t *testing.T) {
		var jobs []*transport.Request
		for i, amount := range []string{"100", "250.25", "75", "1000", "0.75"} {
			method := transport.Cash
			if i%2 == 1 {
				method = transport.Online
			}
			jobs = append(jobs, completedJob(t, me, money(t, amount, "BDT"), method, i%3 == 0, time.Duration(i+1)*time.Hour))
		}

		report, err := calc.Report(me, jobs)
		require.NoError(t, err)

		cash, err := report.CashReceived.Add(report.CashPending)
		require.NoError(t, err)
		assert.True(t, cash.IsEqual(report.CashEarnings))
		total, err := report.CashEarnings.Add(report.OnlineEarnings)
		require.NoError(t, err)
		assert.True(t, total.IsEqual(report.TotalEarnings))
		assert.True(t, report.TotalEarnings.IsEqual(money(t, "1426", "BDT")))
	})
}
