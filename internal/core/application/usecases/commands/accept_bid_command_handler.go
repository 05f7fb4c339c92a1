package commands

import (
	"context"
	"time"

	"marketplace/internal/pkg/metrics"
	"marketplace/internal/pkg/retry"
)

// AcceptBidCommandHandler is the bid acceptance coordinator. Each attempt loads the
// request with all its bids in one unit of work, accepts the bid, rejects its siblings
// and commits with a version check. Only version conflicts are retried; a loser of the
// race re-reads the Confirmed request and fails with transport.ErrRequestNotAcceptingBids.
type AcceptBidCommandHandler struct {
	uowFactory RequestUoWFactory
	retrier    *retry.Retrier
}

func NewAcceptBidCommandHandler(uowFactory RequestUoWFactory, retrier *retry.Retrier) AcceptBidCommandHandler {
	return AcceptBidCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

func (h AcceptBidCommandHandler) Handle(ctx context.Context, command AcceptBidCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	err := h.retrier.Do(ctx, "accept_bid", func(ctx context.Context) error {
		return h.accept(ctx, command)
	})
	if err != nil {
		return err
	}

	metrics.BidsAccepted.Inc()
	return nil
}

func (h AcceptBidCommandHandler) accept(ctx context.Context, command AcceptBidCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	request, err := requests.GetByBidID(ctx, command.BidID())
	if err != nil {
		return err
	}

	if err = request.AcceptBid(command.BidID(), command.CallerID(), time.Now()); err != nil {
		return err
	}

	if err = requests.Update(ctx, request); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
