// Package guard provides ConstructorGuard, a marker embedded in value objects,
// entities and commands so that zero values can be told apart from instances
// built through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the object was not
// constructed and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the owning object went through its constructor.
// Embed it as a private field and set it with NewConstructorGuard:
//
//	type BidAmount struct {
//	    value decimal.Decimal
//	    guard guard.ConstructorGuard
//	}
//
//	func NewBidAmount(v decimal.Decimal) (BidAmount, error) {
//	    if v.IsNegative() {
//	        return BidAmount{}, errors.New("amount cannot be negative")
//	    }
//	    return BidAmount{value: v, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (a BidAmount) Validate() error {
//	    return a.guard.Validate(ErrBidAmountNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
