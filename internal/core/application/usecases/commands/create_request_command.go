package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand posts a new transport request on behalf of a requester.
//
// Example:
//
//	cmd, err := NewCreateRequestCommand(callerID, pickup, drop, tomorrow, "Furniture", 350, "cash")
//	if err != nil {
//	    return err // errs.ErrUnauthenticated or *errs.ValidationError
//	}
//	requestID, err := handler.Handle(ctx, cmd)
type CreateRequestCommand struct {
	callerID kernel.UUID
	pickup   kernel.Location
	drop     kernel.Location
	details  transport.RequestDetails

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand checks the caller and every field, reporting all violations
// in one ValidationError. The handler checks the schedule again against its own clock.
func NewCreateRequestCommand(
	callerID kernel.UUID,
	pickup, drop LocationInput,
	scheduledAt time.Time,
	goodsType string,
	weightKg float64,
	paymentMethod string,
) (CreateRequestCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return CreateRequestCommand{}, err
	}

	pickupLoc, pickupErr := pickup.toLocation("pickup")
	dropLoc, dropErr := drop.toLocation("drop")
	method, methodErr := transport.ParsePaymentMethod(paymentMethod)
	details := transport.RequestDetails{
		ScheduledAt:   scheduledAt,
		GoodsType:     goodsType,
		WeightKg:      weightKg,
		PaymentMethod: method,
	}

	if err := errs.NewValidationError(
		pickupErr, dropErr, details.ValidateShipment(time.Now()), methodErr,
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return CreateRequestCommand{
		callerID: callerID,
		pickup:   pickupLoc,
		drop:     dropLoc,
		details:  details,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) CallerID() kernel.UUID             { return c.callerID }
func (c CreateRequestCommand) Pickup() kernel.Location           { return c.pickup }
func (c CreateRequestCommand) Drop() kernel.Location             { return c.drop }
func (c CreateRequestCommand) Details() transport.RequestDetails { return c.details }
