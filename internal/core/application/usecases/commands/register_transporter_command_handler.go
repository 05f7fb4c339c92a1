package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/pkg/errs"
)

type RegisterTransporterCommandHandler struct {
	uowFactory FleetUoWFactory
}

func NewRegisterTransporterCommandHandler(uowFactory FleetUoWFactory) RegisterTransporterCommandHandler {
	return RegisterTransporterCommandHandler{uowFactory: uowFactory}
}

// Handle returns the id of the new profile. A user registers at most once.
func (h RegisterTransporterCommandHandler) Handle(ctx context.Context, command RegisterTransporterCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	profile, err := transporter.NewProfile(
		command.CallerID(),
		command.Type(),
		command.Contact(),
		command.TradeLicense(),
		command.Home(),
		command.ServiceRadiusKm(),
		time.Now(),
	)
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

	transporters := uow.TransporterRepository()
	_, err = transporters.GetByUserID(ctx, command.CallerID())
	switch {
	case err == nil:
		return kernel.UUID{}, fmt.Errorf("%w: user already has a transporter profile", errs.ErrConflict)
	case !errors.Is(err, errs.ErrObjectNotFound):
		return kernel.UUID{}, err
	}

	if err = transporters.Add(ctx, profile); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return profile.ID(), nil
}
