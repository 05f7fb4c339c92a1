package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSubmitBidCommandIsNotConstructed = errors.New(
	"SubmitBidCommand must be created via NewSubmitBidCommand constructor",
)

// SubmitBidCommand places a transporter's priced offer on a request.
type SubmitBidCommand struct {
	callerID  kernel.UUID
	requestID kernel.UUID
	amount    kernel.Money
	note      string

	guard guard.ConstructorGuard
}

func NewSubmitBidCommand(
	callerID, requestID kernel.UUID,
	amount decimal.Decimal,
	currency, note string,
) (SubmitBidCommand, error) {
	if err := requireCaller(callerID); err != nil {
		return SubmitBidCommand{}, err
	}

	money, moneyErr := kernel.NewMoney(amount, currency)
	if moneyErr == nil && money.IsZero() {
		moneyErr = errs.NewValueIsInvalidErrorWithCause("amount", errors.New("must be greater than zero"))
	}
	if err := errs.NewValidationError(requiredID("requestId", requestID), moneyErr); err != nil {
		return SubmitBidCommand{}, err
	}

	return SubmitBidCommand{
		callerID:  callerID,
		requestID: requestID,
		amount:    money,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitBidCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBidCommandIsNotConstructed)
}

func (c SubmitBidCommand) CallerID() kernel.UUID  { return c.callerID }
func (c SubmitBidCommand) RequestID() kernel.UUID { return c.requestID }
func (c SubmitBidCommand) Amount() kernel.Money   { return c.amount }
func (c SubmitBidCommand) Note() string           { return c.note }
