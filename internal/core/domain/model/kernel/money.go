package kernel

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or ZeroMoney")
	// ErrCurrencyMismatch is returned by arithmetic between amounts in different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// MinorUnits is the number of decimal places an amount may carry.
const MinorUnits = 2

// Money is a non-negative decimal amount with at most MinorUnits decimal places in a
// three-letter upper-case currency.
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney normalizes currency to upper case and rejects negative amounts.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

// ZeroMoney returns a zero amount in currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Sub returns m - other; the result must not be negative.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Sub(other.amount), m.currency)
}

// Cmp compares the amounts of two sums in the same currency.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	return m.amount.Cmp(other.amount), nil
}

// IsEqual reports value equality; 10 and 10.00 in the same currency are equal.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) sameCurrency(other Money) error {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return err
	}
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, "unbounded")
	}
	if !amount.Equal(amount.Truncate(MinorUnits)) {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has more than %d decimal places", amount, MinorUnits))
	}

	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency", errors.New("must be a three-letter code"))
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return errs.NewValueIsInvalidErrorWithCause("currency", errors.New("must contain letters only"))
		}
	}

	m.currency = currency
	return nil
}
