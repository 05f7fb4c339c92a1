package commands

import (
	"context"
	"time"

	"marketplace/internal/pkg/retry"
)

type StartTransitCommandHandler struct {
	uowFactory UoWFactory
	retrier    *retry.Retrier
}

func NewStartTransitCommandHandler(uowFactory UoWFactory, retrier *retry.Retrier) StartTransitCommandHandler {
	return StartTransitCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

// Handle moves a Confirmed request to InTransit.
func (h StartTransitCommandHandler) Handle(ctx context.Context, command StartTransitCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.retrier.Do(ctx, "start_transit", func(ctx context.Context) error {
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

		if err = request.StartTransit(profile.ID(), time.Now()); err != nil {
			return err
		}

		if err = requests.Update(ctx, request); err != nil {
			return err
		}
		return uow.Commit(ctx)
	})
}
