package services

import (
	"cmp"
	"slices"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
)

// EarningsJob is one completed job counted in a report.
type EarningsJob struct {
	RequestID     kernel.UUID
	BidID         kernel.UUID
	Amount        kernel.Money
	PaymentMethod transport.PaymentMethod
	CashReceived  bool
	ScheduledAt   time.Time
}

// EarningsReport sums a transporter's completed jobs.
// CashEarnings = CashReceived + CashPending and TotalEarnings = CashEarnings + OnlineEarnings.
type EarningsReport struct {
	TotalJobs      int
	TotalEarnings  kernel.Money
	CashEarnings   kernel.Money
	OnlineEarnings kernel.Money
	CashReceived   kernel.Money
	CashPending    kernel.Money
	Jobs           []EarningsJob
}

// EarningsCalculator aggregates accepted bid amounts of completed requests.
type EarningsCalculator struct {
	currency string
}

func NewEarningsCalculator(currency string) (EarningsCalculator, error) {
	zero, err := kernel.ZeroMoney(currency)
	if err != nil {
		return EarningsCalculator{}, err
	}
	return EarningsCalculator{currency: zero.Currency()}, nil
}

// Report counts the requests that are Completed with transporterID's bid as the winner.
// Every other request is ignored. Amounts in another currency fail with kernel.ErrCurrencyMismatch.
func (c EarningsCalculator) Report(transporterID kernel.UUID, requests []*transport.Request) (EarningsReport, error) {
	zero, err := kernel.ZeroMoney(c.currency)
	if err != nil {
		return EarningsReport{}, err
	}
	report := EarningsReport{
		TotalEarnings:  zero,
		CashEarnings:   zero,
		OnlineEarnings: zero,
		CashReceived:   zero,
		CashPending:    zero,
		Jobs:           []EarningsJob{},
	}

	for _, r := range requests {
		if r == nil || r.Status() != transport.Completed {
			continue
		}
		bid := r.WinningBid()
		if bid == nil || bid.Status() != transport.BidAccepted || !bid.TransporterID().IsEqual(transporterID) {
			continue
		}

		if err := c.add(&report, r, bid); err != nil {
			return EarningsReport{}, err
		}
	}

	slices.SortStableFunc(report.Jobs, func(a, b EarningsJob) int {
		return cmp.Or(a.ScheduledAt.Compare(b.ScheduledAt), a.RequestID.Compare(b.RequestID))
	})
	return report, nil
}

func (c EarningsCalculator) add(report *EarningsReport, r *transport.Request, bid *transport.Bid) error {
	amount := bid.Amount()

	total, err := report.TotalEarnings.Add(amount)
	if err != nil {
		return err
	}

	switch r.PaymentMethod() {
	case transport.Cash:
		cash, err := report.CashEarnings.Add(amount)
		if err != nil {
			return err
		}
		bucket := &report.CashPending
		if r.CashReceived() {
			bucket = &report.CashReceived
		}
		updated, err := bucket.Add(amount)
		if err != nil {
			return err
		}
		report.CashEarnings = cash
		*bucket = updated
	case transport.Online:
		online, err := report.OnlineEarnings.Add(amount)
		if err != nil {
			return err
		}
		report.OnlineEarnings = online
	}

	report.TotalEarnings = total
	report.TotalJobs++
	report.Jobs = append(report.Jobs, EarningsJob{
		RequestID:     r.ID(),
		BidID:         bid.ID(),
		Amount:        amount,
		PaymentMethod: r.PaymentMethod(),
		CashReceived:  r.CashReceived(),
		ScheduledAt:   r.ScheduledAt(),
	})
	return nil
}
