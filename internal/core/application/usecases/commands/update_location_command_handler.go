package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// DefaultPingTimeout bounds the fan-out of a single location ping.
const DefaultPingTimeout = 3 * time.Second

// UpdateLocationCommandHandler authorizes a location ping and hands it to the notifier
// and the position tracker in the background. Delivery failures are logged and never
// reach the caller.
type UpdateLocationCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	tracker    ports.PositionTracker
	logger     *slog.Logger
	timeout    time.Duration

	wg sync.WaitGroup
}

func NewUpdateLocationCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	tracker ports.PositionTracker,
	logger *slog.Logger,
	timeout time.Duration,
) *UpdateLocationCommandHandler {
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}
	return &UpdateLocationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		tracker:    tracker,
		logger:     logger.With("component", "update-location"),
		timeout:    timeout,
	}
}

func (h *UpdateLocationCommandHandler) Handle(ctx context.Context, command UpdateLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	transporterID, ping, err := h.authorize(ctx, command)
	if err != nil {
		return err
	}

	position := ports.Position{
		RequestID:     command.RequestID(),
		TransporterID: transporterID,
		Point:         command.Position(),
		RecordedAt:    ping.OccurredAt(),
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.dispatch(context.WithoutCancel(ctx), ping, position)
	}()

	return nil
}

// Wait blocks until every dispatched ping has finished.
func (h *UpdateLocationCommandHandler) Wait() {
	h.wg.Wait()
}

// authorize reads the request and builds the ping. Nothing is written.
func (h *UpdateLocationCommandHandler) authorize(
	ctx context.Context,
	command UpdateLocationCommand,
) (kernel.UUID, event.Event, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, event.Event{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	profile, err := transporterOf(ctx, uow.TransporterRepository(), command.CallerID())
	if err != nil {
		return kernel.UUID{}, event.Event{}, err
	}

	request, err := uow.RequestRepository().Get(ctx, command.RequestID())
	if err != nil {
		return kernel.UUID{}, event.Event{}, err
	}

	ping, err := request.PingLocation(profile.ID(), command.Position(), time.Now())
	if err != nil {
		return kernel.UUID{}, event.Event{}, err
	}
	return profile.ID(), ping, nil
}

func (h *UpdateLocationCommandHandler) dispatch(ctx context.Context, ping event.Event, position ports.Position) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.tracker.Save(ctx, position); err != nil {
		h.logger.WarnContext(ctx, "failed to store position",
			"requestId", position.RequestID.String(), "error", err)
	}
	if err := h.notifier.Publish(ctx, ping); err != nil {
		h.logger.WarnContext(ctx, "failed to publish location ping",
			"requestId", position.RequestID.String(), "error", err)
	}
}
