package queries

import (
	"context"

	"marketplace/internal/core/domain/services"
)

type GetEarningsReportQueryHandler struct {
	transporters TransporterReader
	requests     RequestReader
	calculator   services.EarningsCalculator
}

func NewGetEarningsReportQueryHandler(
	transporters TransporterReader,
	requests RequestReader,
	calculator services.EarningsCalculator,
) GetEarningsReportQueryHandler {
	return GetEarningsReportQueryHandler{
		transporters: transporters,
		requests:     requests,
		calculator:   calculator,
	}
}

// Handle aggregates every completed job won by the caller's profile.
func (h GetEarningsReportQueryHandler) Handle(
	ctx context.Context,
	query GetEarningsReportQuery,
) (services.EarningsReport, error) {
	if err := query.Validate(); err != nil {
		return services.EarningsReport{}, err
	}

	profile, err := profileOf(ctx, h.transporters, query.CallerID())
	if err != nil {
		return services.EarningsReport{}, err
	}

	completed, err := h.requests.ListCompletedByTransporter(ctx, profile.ID())
	if err != nil {
		return services.EarningsReport{}, err
	}

	return h.calculator.Report(profile.ID(), completed)
}
