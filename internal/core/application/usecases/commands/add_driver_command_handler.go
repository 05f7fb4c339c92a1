package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/retry"
)

type AddDriverCommandHandler struct {
	uowFactory FleetUoWFactory
	retrier    *retry.Retrier
}

func NewAddDriverCommandHandler(uowFactory FleetUoWFactory, retrier *retry.Retrier) AddDriverCommandHandler {
	return AddDriverCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

// Handle adds the driver to the caller's profile and returns its id.
func (h AddDriverCommandHandler) Handle(ctx context.Context, command AddDriverCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	driver, err := transporter.NewDriver(
		command.Name(),
		command.Phone(),
		command.LicenceNumber(),
		command.LicenceExpiry(),
		time.Now(),
	)
	if err != nil {
		return kernel.UUID{}, errs.NewValidationError(err)
	}

	err = h.retrier.Do(ctx, "add_driver", func(ctx context.Context) error {
		return h.add(ctx, command.CallerID(), driver)
	})
	if err != nil {
		return kernel.UUID{}, err
	}
	return driver.ID(), nil
}

func (h AddDriverCommandHandler) add(ctx context.Context, callerID kernel.UUID, driver *transporter.Driver) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	transporters := uow.TransporterRepository()
	profile, err := transporterOf(ctx, transporters, callerID)
	if err != nil {
		return err
	}
	if err = profile.AddDriver(driver); err != nil {
		return errs.NewValidationError(err)
	}

	if err = transporters.Update(ctx, profile); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
