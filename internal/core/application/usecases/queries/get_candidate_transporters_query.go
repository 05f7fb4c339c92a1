package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetCandidateTransportersQueryIsNotConstructed = errors.New(
	"GetCandidateTransportersQuery must be created via NewGetCandidateTransportersQuery constructor",
)

// GetCandidateTransportersQuery lists transporters whose service area covers a request's pickup.
// Only the requester may ask.
type GetCandidateTransportersQuery struct {
	callerID  kernel.UUID
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCandidateTransportersQuery(callerID, requestID kernel.UUID) (GetCandidateTransportersQuery, error) {
	if err := requireCaller(callerID); err != nil {
		return GetCandidateTransportersQuery{}, err
	}
	if err := requiredID("requestId", requestID); err != nil {
		return GetCandidateTransportersQuery{}, err
	}

	return GetCandidateTransportersQuery{
		callerID:  callerID,
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetCandidateTransportersQuery) Validate() error {
	return q.guard.Validate(ErrGetCandidateTransportersQueryIsNotConstructed)
}

func (q GetCandidateTransportersQuery) CallerID() kernel.UUID  { return q.callerID }
func (q GetCandidateTransportersQuery) RequestID() kernel.UUID { return q.requestID }

type CandidateView struct {
	ProfileID       kernel.UUID
	Type            string
	ContactName     string
	ContactPhone    string
	Verified        bool
	Rating          float64
	CompletedJobs   int
	ServiceRadiusKm float64
	DistanceKm      float64
}
