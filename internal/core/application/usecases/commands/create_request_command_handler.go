package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
)

// CreateRequestCommandHandler stores a new Open request. The RequestPosted event
// reaches the outbox through the unit of work.
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

func NewCreateRequestCommandHandler(uowFactory RequestUoWFactory) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{uowFactory: uowFactory}
}

// Handle returns the id of the new request.
func (h CreateRequestCommandHandler) Handle(ctx context.Context, command CreateRequestCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	request, err := transport.NewRequest(command.CallerID(), command.Pickup(), command.Drop(), command.Details(), time.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RequestRepository().Add(ctx, request); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return request.ID(), nil
}
