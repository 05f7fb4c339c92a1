package queries

import (
	"context"

	"marketplace/internal/core/ports"
)

type GetLastPositionQueryHandler struct {
	requests     RequestReader
	transporters TransporterReader
	tracker      ports.PositionTracker
}

func NewGetLastPositionQueryHandler(
	requests RequestReader,
	transporters TransporterReader,
	tracker ports.PositionTracker,
) GetLastPositionQueryHandler {
	return GetLastPositionQueryHandler{requests: requests, transporters: transporters, tracker: tracker}
}

// Handle is open to the requester and to the winning transporter.
func (h GetLastPositionQueryHandler) Handle(ctx context.Context, query GetLastPositionQuery) (ports.Position, error) {
	if err := query.Validate(); err != nil {
		return ports.Position{}, err
	}

	request, err := h.requests.Get(ctx, query.RequestID())
	if err != nil {
		return ports.Position{}, err
	}

	if !request.IsRequester(query.CallerID()) {
		profile, err := profileOf(ctx, h.transporters, query.CallerID())
		if err != nil {
			return ports.Position{}, err
		}
		if err := request.AuthorizeWinner(profile.ID()); err != nil {
			return ports.Position{}, err
		}
	}

	return h.tracker.Last(ctx, request.ID())
}
