package commands

import (
	"context"

	"marketplace/internal/pkg/retry"
)

// RateJobCommandHandler stores the requester's score on the request and folds it into
// the winning transporter's rating.
type RateJobCommandHandler struct {
	uowFactory UoWFactory
	retrier    *retry.Retrier
}

func NewRateJobCommandHandler(uowFactory UoWFactory, retrier *retry.Retrier) RateJobCommandHandler {
	return RateJobCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

func (h RateJobCommandHandler) Handle(ctx context.Context, command RateJobCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.retrier.Do(ctx, "rate_job", func(ctx context.Context) error {
		return h.rate(ctx, command)
	})
}

func (h RateJobCommandHandler) rate(ctx context.Context, command RateJobCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	request, err := requests.Get(ctx, command.RequestID())
	if err != nil {
		return err
	}

	transporterID, err := request.Rate(command.CallerID(), command.Score())
	if err != nil {
		return err
	}

	transporters := uow.TransporterRepository()
	profile, err := transporters.Get(ctx, transporterID)
	if err != nil {
		return err
	}
	if err = profile.ReceiveRating(command.Score()); err != nil {
		return err
	}

	if err = requests.Update(ctx, request); err != nil {
		return err
	}
	if err = transporters.Update(ctx, profile); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
