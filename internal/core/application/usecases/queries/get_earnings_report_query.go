package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetEarningsReportQueryIsNotConstructed = errors.New(
	"GetEarningsReportQuery must be created via NewGetEarningsReportQuery constructor",
)

// GetEarningsReportQuery summarises the calling transporter's completed jobs.
type GetEarningsReportQuery struct {
	callerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetEarningsReportQuery(callerID kernel.UUID) (GetEarningsReportQuery, error) {
	if err := requireCaller(callerID); err != nil {
		return GetEarningsReportQuery{}, err
	}
	return GetEarningsReportQuery{callerID: callerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetEarningsReportQuery) Validate() error {
	return q.guard.Validate(ErrGetEarningsReportQueryIsNotConstructed)
}

func (q GetEarningsReportQuery) CallerID() kernel.UUID { return q.callerID }
