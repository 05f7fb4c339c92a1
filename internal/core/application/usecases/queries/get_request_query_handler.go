package queries

import (
	"context"

	"marketplace/internal/core/domain/model/transport"
)

type GetRequestQueryHandler struct {
	requests     RequestReader
	transporters TransporterReader
}

func NewGetRequestQueryHandler(requests RequestReader, transporters TransporterReader) GetRequestQueryHandler {
	return GetRequestQueryHandler{requests: requests, transporters: transporters}
}

// Handle shows every bid to the requester. A transporter sees the request with its own
// bids only; any other caller is refused.
func (h GetRequestQueryHandler) Handle(ctx context.Context, query GetRequestQuery) (RequestView, error) {
	if err := query.Validate(); err != nil {
		return RequestView{}, err
	}

	request, err := h.requests.Get(ctx, query.RequestID())
	if err != nil {
		return RequestView{}, err
	}

	visible := func(*transport.Bid) bool { return true }
	if !request.IsRequester(query.CallerID()) {
		profile, err := profileOf(ctx, h.transporters, query.CallerID())
		if err != nil {
			return RequestView{}, err
		}
		visible = func(b *transport.Bid) bool { return b.TransporterID().IsEqual(profile.ID()) }
	}

	return toRequestView(request, visible), nil
}

func toRequestView(r *transport.Request, visible func(*transport.Bid) bool) RequestView {
	view := RequestView{
		ID:            r.ID(),
		RequesterID:   r.RequesterID(),
		Pickup:        r.Pickup(),
		Drop:          r.Drop(),
		ScheduledAt:   r.ScheduledAt(),
		GoodsType:     r.GoodsType(),
		WeightKg:      r.WeightKg(),
		PaymentMethod: r.PaymentMethod().String(),
		CashReceived:  r.CashReceived(),
		Status:        r.Status().String(),
		WinnerBidID:   r.WinnerBidID(),
		Rating:        r.Rating(),
		CreatedAt:     r.CreatedAt(),
		Bids:          []BidView{},
	}

	for _, b := range r.Bids() {
		if !visible(b) {
			continue
		}
		view.Bids = append(view.Bids, BidView{
			ID:            b.ID(),
			TransporterID: b.TransporterID(),
			Amount:        b.Amount(),
			Note:          b.Note(),
			SubmittedAt:   b.SubmittedAt(),
			Status:        b.Status().String(),
			Inert:         r.IsBidInert(b),
		})
	}

	return view
}
