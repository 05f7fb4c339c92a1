package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
)

// OutboxRepository stores domain events written in the same transaction as the
// aggregate change that produced them.
type OutboxRepository interface {
	// Append stores events as pending.
	Append(ctx context.Context, events ...event.Event) error

	// ListPending locks up to limit pending events, oldest first. Rows locked by a
	// concurrent relay are skipped, and so are events that failed too often.
	ListPending(ctx context.Context, limit int) ([]event.Event, error)

	MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error

	// MarkFailed records a failed attempt. The event stays pending until it has
	// failed the repository's attempt limit, after which it is parked.
	MarkFailed(ctx context.Context, id kernel.UUID, reason string) error
}

// Notifier delivers domain events to subscribers outside the service.
type Notifier interface {
	Publish(ctx context.Context, e event.Event) error
}
