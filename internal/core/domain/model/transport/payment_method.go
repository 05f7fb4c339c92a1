package transport

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// PaymentMethod is how the requester pays the winning transporter.
type PaymentMethod int

const (
	PaymentUnknown PaymentMethod = iota
	// Cash is collected by the transporter; the request tracks whether it was received.
	Cash
	// Online is settled outside this service.
	Online
)

func (m PaymentMethod) Validate() error {
	if m != Cash && m != Online {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

func (m PaymentMethod) String() string {
	switch m {
	case Cash:
		return "Cash"
	case Online:
		return "Online"
	default:
		return "Unknown"
	}
}

// ParsePaymentMethod accepts "cash" or "online" in any case.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return Cash, nil
	case "online":
		return Online, nil
	default:
		return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not a valid payment method", s))
	}
}
