package commands

import (
	"context"

	"marketplace/internal/pkg/retry"
)

type VerifyTransporterCommandHandler struct {
	uowFactory FleetUoWFactory
	retrier    *retry.Retrier
}

func NewVerifyTransporterCommandHandler(uowFactory FleetUoWFactory, retrier *retry.Retrier) VerifyTransporterCommandHandler {
	return VerifyTransporterCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

func (h VerifyTransporterCommandHandler) Handle(ctx context.Context, command VerifyTransporterCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.retrier.Do(ctx, "verify_transporter", func(ctx context.Context) error {
		return h.verify(ctx, command)
	})
}

func (h VerifyTransporterCommandHandler) verify(ctx context.Context, command VerifyTransporterCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	transporters := uow.TransporterRepository()
	profile, err := transporters.Get(ctx, command.ProfileID())
	if err != nil {
		return err
	}

	profile.Verify()

	if err = transporters.Update(ctx, profile); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
