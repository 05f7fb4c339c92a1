package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetLastPositionQueryIsNotConstructed = errors.New(
	"GetLastPositionQuery must be created via NewGetLastPositionQuery constructor",
)

// GetLastPositionQuery returns the latest tracked position of a job.
type GetLastPositionQuery struct {
	callerID  kernel.UUID
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetLastPositionQuery(callerID, requestID kernel.UUID) (GetLastPositionQuery, error) {
	if err := requireCaller(callerID); err != nil {
		return GetLastPositionQuery{}, err
	}
	if err := requiredID("requestId", requestID); err != nil {
		return GetLastPositionQuery{}, err
	}

	return GetLastPositionQuery{
		callerID:  callerID,
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetLastPositionQuery) Validate() error {
	return q.guard.Validate(ErrGetLastPositionQueryIsNotConstructed)
}

func (q GetLastPositionQuery) CallerID() kernel.UUID  { return q.callerID }
func (q GetLastPositionQuery) RequestID() kernel.UUID { return q.requestID }
