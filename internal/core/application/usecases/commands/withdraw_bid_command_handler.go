package commands

import (
	"context"

	"marketplace/internal/pkg/retry"
)

type WithdrawBidCommandHandler struct {
	uowFactory UoWFactory
	retrier    *retry.Retrier
}

func NewWithdrawBidCommandHandler(uowFactory UoWFactory, retrier *retry.Retrier) WithdrawBidCommandHandler {
	return WithdrawBidCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

// Handle marks the bid Withdrawn. The transporter may bid on the request again afterwards.
func (h WithdrawBidCommandHandler) Handle(ctx context.Context, command WithdrawBidCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.retrier.Do(ctx, "withdraw_bid", func(ctx context.Context) error {
		return h.withdraw(ctx, command)
	})
}

func (h WithdrawBidCommandHandler) withdraw(ctx context.Context, command WithdrawBidCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	profile, err := transporterOf(ctx, uow.TransporterRepository(), command.CallerID())
	if err != nil {
		return err
	}

	requests := uow.RequestRepository()
	request, err := requests.Get(ctx, command.RequestID())
	if err != nil {
		return err
	}

	if err = request.WithdrawBid(command.BidID(), profile.ID()); err != nil {
		return err
	}

	if err = requests.Update(ctx, request); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
