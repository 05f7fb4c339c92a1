package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRateJobCommandIsNotConstructed = errors.New(
	"RateJobCommand must be created via NewRateJobCommand constructor",
)

type RateJobCommand struct {
	callerID  kernel.UUID
	requestID kernel.UUID
	score     int

	guard guard.ConstructorGuard
}

// NewRateJobCommand checks only the shape of the input; the 1..5 range is enforced by the request.
func NewRateJobCommand(callerID, requestID kernel.UUID, score int) (RateJobCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return RateJobCommand{}, err
	}
	if err := errs.NewValidationError(requiredID("requestId", requestID)); err != nil {
		return RateJobCommand{}, err
	}

	return RateJobCommand{
		callerID:  callerID,
		requestID: requestID,
		score:     score,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RateJobCommand) Validate() error {
	return c.guard.Validate(ErrRateJobCommandIsNotConstructed)
}

func (c RateJobCommand) CallerID() kernel.UUID  { return c.callerID }
func (c RateJobCommand) RequestID() kernel.UUID { return c.requestID }
func (c RateJobCommand) Score() int             { return c.score }
