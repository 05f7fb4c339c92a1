// Package ports defines the contracts between the marketplace core and its adapters:
// persistence, the unit of work, event publication and the position store.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
)

// RequestRepository persists Request aggregates together with all their bids.
type RequestRepository interface {
	// Add stores a new request and its bids.
	Add(ctx context.Context, request *transport.Request) error

	// Update writes the request and its bids if the stored version still equals
	// request.Version(), then advances the aggregate's version. A stale version
	// yields errs.ErrConflict and nothing is written.
	Update(ctx context.Context, request *transport.Request) error

	// Get loads a request with all bids. Missing requests yield errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*transport.Request, error)

	// GetForUpdate is Get that also locks the request row until the unit of work ends.
	// Writers that change a request without updating it use it to serialise with
	// concurrent updates of the same request.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*transport.Request, error)

	// GetByBidID loads the request owning bidID.
	GetByBidID(ctx context.Context, bidID kernel.UUID) (*transport.Request, error)

	// ListAcceptingBidsWithin returns Open and Bidding requests whose pickup lies in box.
	// The box is a pre-filter; callers apply the exact distance test.
	ListAcceptingBidsWithin(ctx context.Context, box kernel.BoundingBox) ([]*transport.Request, error)

	// ListCompletedByTransporter returns Completed requests won by transporterID.
	ListCompletedByTransporter(ctx context.Context, transporterID kernel.UUID) ([]*transport.Request, error)
}
