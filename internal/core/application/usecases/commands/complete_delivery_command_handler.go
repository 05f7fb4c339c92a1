package commands

import (
	"context"
	"time"

	"marketplace/internal/pkg/retry"
)

// CompleteDeliveryCommandHandler completes the request and counts the job on the
// winning transporter's profile in the same transaction.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	retrier    *retry.Retrier
}

func NewCompleteDeliveryCommandHandler(uowFactory UoWFactory, retrier *retry.Retrier) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.retrier.Do(ctx, "complete_delivery", func(ctx context.Context) error {
		return h.complete(ctx, command)
	})
}

func (h CompleteDeliveryCommandHandler) complete(ctx context.Context, command CompleteDeliveryCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	transporters := uow.TransporterRepository()
	profile, err := transporterOf(ctx, transporters, command.CallerID())
	if err != nil {
		return err
	}

	requests := uow.RequestRepository()
	request, err := requests.Get(ctx, command.RequestID())
	if err != nil {
		return err
	}

	if err = request.CompleteDelivery(profile.ID(), command.MarkCashReceived(), time.Now()); err != nil {
		return err
	}
	profile.RecordCompletedJob()

	if err = requests.Update(ctx, request); err != nil {
		return err
	}
	if err = transporters.Update(ctx, profile); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
