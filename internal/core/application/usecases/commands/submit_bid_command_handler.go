package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/metrics"
	"marketplace/internal/pkg/retry"
)

// SubmitBidCommandHandler adds a Pending bid to a request. A concurrent acceptance
// bumps the request version; the retried attempt then sees the Confirmed request and
// fails with transport.ErrRequestNotAcceptingBids, so no orphaned bid is committed.
//
// The marketplace settles in a single currency; bids in any other are rejected.
type SubmitBidCommandHandler struct {
	uowFactory UoWFactory
	retrier    *retry.Retrier
	currency   string
}

func NewSubmitBidCommandHandler(uowFactory UoWFactory, retrier *retry.Retrier, currency string) SubmitBidCommandHandler {
	return SubmitBidCommandHandler{
		uowFactory: uowFactory,
		retrier:    retrier,
		currency:   strings.ToUpper(strings.TrimSpace(currency)),
	}
}

// Handle returns the id of the new bid.
func (h SubmitBidCommandHandler) Handle(ctx context.Context, command SubmitBidCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if got := command.Amount().Currency(); got != h.currency {
		return kernel.UUID{}, errs.NewValidationError(errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%s is not accepted, bids are priced in %s", got, h.currency)))
	}

	var bidID kernel.UUID
	err := h.retrier.Do(ctx, "submit_bid", func(ctx context.Context) error {
		id, err := h.submit(ctx, command)
		bidID = id
		return err
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	metrics.BidsSubmitted.Inc()
	return bidID, nil
}

func (h SubmitBidCommandHandler) submit(ctx context.Context, command SubmitBidCommand) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	profile, err := transporterOf(ctx, uow.TransporterRepository(), command.CallerID())
	if err != nil {
		return kernel.UUID{}, err
	}

	requests := uow.RequestRepository()
	request, err := requests.Get(ctx, command.RequestID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if request.IsRequester(command.CallerID()) {
		return kernel.UUID{}, fmt.Errorf("%w: requesters cannot bid on their own request", errs.ErrUnauthorized)
	}

	bid, err := request.SubmitBid(profile.ID(), command.Amount(), command.Note(), time.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = requests.Update(ctx, request); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return bid.ID(), nil
}
