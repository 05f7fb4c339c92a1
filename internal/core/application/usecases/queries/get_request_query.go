package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetRequestQueryIsNotConstructed = errors.New(
	"GetRequestQuery must be created via NewGetRequestQuery constructor",
)

// GetRequestQuery fetches one request with the bids the caller may see.
//
// Example:
//
//	query, err := NewGetRequestQuery(callerID, requestID)
//	if err != nil {
//		return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetRequestQuery struct {
	callerID  kernel.UUID
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRequestQuery(callerID, requestID kernel.UUID) (GetRequestQuery, error) {
	if err := requireCaller(callerID); err != nil {
		return GetRequestQuery{}, err
	}
	if err := requiredID("requestId", requestID); err != nil {
		return GetRequestQuery{}, err
	}

	return GetRequestQuery{
		callerID:  callerID,
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestQueryIsNotConstructed)
}

func (q GetRequestQuery) CallerID() kernel.UUID  { return q.callerID }
func (q GetRequestQuery) RequestID() kernel.UUID { return q.requestID }

// BidView is a bid as shown to its viewer. Inert marks a Pending bid on a request that
// no longer accepts bids.
type BidView struct {
	ID            kernel.UUID
	TransporterID kernel.UUID
	Amount        kernel.Money
	Note          string
	SubmittedAt   time.Time
	Status        string
	Inert         bool
}

type RequestView struct {
	ID            kernel.UUID
	RequesterID   kernel.UUID
	Pickup        kernel.Location
	Drop          kernel.Location
	ScheduledAt   time.Time
	GoodsType     string
	WeightKg      float64
	PaymentMethod string
	CashReceived  bool
	Status        string
	WinnerBidID   *kernel.UUID
	Rating        *int
	CreatedAt     time.Time
	Bids          []BidView
}
