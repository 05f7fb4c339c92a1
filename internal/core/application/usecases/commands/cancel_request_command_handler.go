package commands

import (
	"context"
	"time"

	"marketplace/internal/pkg/retry"
)

// CancelRequestCommandHandler cancels a request. When a winner had been chosen its bid
// is revoked and the job assignment, if any, is deleted so the fleet is released.
type CancelRequestCommandHandler struct {
	uowFactory UoWFactory
	retrier    *retry.Retrier
}

func NewCancelRequestCommandHandler(uowFactory UoWFactory, retrier *retry.Retrier) CancelRequestCommandHandler {
	return CancelRequestCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

func (h CancelRequestCommandHandler) Handle(ctx context.Context, command CancelRequestCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.retrier.Do(ctx, "cancel_request", func(ctx context.Context) error {
		return h.cancel(ctx, command)
	})
}

func (h CancelRequestCommandHandler) cancel(ctx context.Context, command CancelRequestCommand) error {
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

	revoked, err := request.Cancel(command.CallerID(), time.Now())
	if err != nil {
		return err
	}

	if err = requests.Update(ctx, request); err != nil {
		return err
	}
	if revoked != nil {
		if err = uow.AssignmentRepository().DeleteByRequest(ctx, request.ID()); err != nil {
			return err
		}
	}
	return uow.Commit(ctx)
}
