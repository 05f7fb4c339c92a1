package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/metrics"
)

// RelayOutboxCommandHandler hands pending outbox events to the notifier. Published events
// are marked as such; failed ones stay pending with the failure recorded and are retried
// by the next run. Rows are locked for the duration of the batch so concurrent relays
// never publish the same event twice.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "outbox-relay"),
	}
}

// Handle returns the number of events published.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, command RelayOutboxCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	pending, err := outbox.ListPending(ctx, command.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	published := 0
	for _, e := range pending {
		if publishErr := h.notifier.Publish(ctx, e); publishErr != nil {
			h.logger.WarnContext(ctx, "failed to publish event",
				"eventId", e.ID().String(), "event", string(e.Name()), "error", publishErr)
			metrics.OutboxFailed.Inc()
			if err = outbox.MarkFailed(ctx, e.ID(), publishErr.Error()); err != nil {
				return 0, err
			}
			continue
		}

		if err = outbox.MarkPublished(ctx, e.ID(), time.Now()); err != nil {
			return 0, err
		}
		metrics.OutboxPublished.Inc()
		published++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return published, nil
}
