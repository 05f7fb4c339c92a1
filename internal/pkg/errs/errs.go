package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for parameter-level validation failures.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
)

// Sentinels for the outcome kinds returned to callers of the marketplace core.
var (
	// ErrValidation marks malformed input that was rejected before any write.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated means no caller identity could be resolved.
	ErrUnauthenticated = errors.New("caller is not authenticated")
	// ErrUnauthorized means the caller is known but may not act on the resource.
	ErrUnauthorized = errors.New("caller is not allowed to perform this operation")
	// ErrInvalidTransition means the requested status change is outside the lifecycle graph.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrConflict means a concurrent writer committed first; the operation may be retried.
	ErrConflict = errors.New("concurrent modification conflict")
	// ErrResourceInUse means the resource is still referenced and cannot be removed.
	ErrResourceInUse = errors.New("resource is in use")
)

// ObjectNotFoundError reports a lookup that found nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a parameter whose value breaks a rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a parameter outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing parameter.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValidationError groups every field violation found while checking one input.
// errors.Is matches both ErrValidation and each wrapped violation.
type ValidationError struct {
	Cause error
}

// NewValidationError joins the non-nil violations into a ValidationError.
// It returns nil when every violation is nil, so it can wrap a setter chain directly:
//
//	if err := errs.NewValidationError(r.setWeight(w), r.setGoodsType(g)); err != nil {
//	    return nil, err
//	}
func NewValidationError(violations ...error) error {
	joined := errors.Join(violations...)
	if joined == nil {
		return nil
	}
	var existing *ValidationError
	if len(violations) == 1 && errors.As(joined, &existing) {
		return existing
	}
	return &ValidationError{Cause: joined}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.ReplaceAll(e.Cause.Error(), "\n", "; "))
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Cause}
}

// Fields lists the parameter names of every violation, in the order they were found.
func (e *ValidationError) Fields() []string {
	var fields []string
	collectFields(e.Cause, &fields)
	return fields
}

func collectFields(err error, fields *[]string) {
	if err == nil {
		return
	}
	if nested, ok := err.(*ValidationError); ok {
		collectFields(nested.Cause, fields)
		return
	}
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range multi.Unwrap() {
			collectFields(inner, fields)
		}
		return
	}

	switch e := err.(type) {
	case *ValueIsRequiredError:
		*fields = append(*fields, e.ParamName)
	case *ValueIsInvalidError:
		*fields = append(*fields, e.ParamName)
	case *ValueIsOutOfRangeError:
		*fields = append(*fields, e.ParamName)
	default:
		*fields = append(*fields, err.Error())
	}
}

// WithParamPrefix returns err with every typed violation's ParamName prefixed by
// prefix and a dot, so nested value objects report paths like "pickup.latitude".
// Errors that carry no parameter name are returned unchanged.
func WithParamPrefix(prefix string, err error) error {
	if err == nil || prefix == "" {
		return err
	}
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		if _, isValidation := err.(*ValidationError); !isValidation {
			inner := multi.Unwrap()
			prefixed := make([]error, 0, len(inner))
			for _, e := range inner {
				prefixed = append(prefixed, WithParamPrefix(prefix, e))
			}
			return errors.Join(prefixed...)
		}
	}

	name := func(p string) string { return prefix + "." + p }
	switch e := err.(type) {
	case *ValueIsRequiredError:
		return &ValueIsRequiredError{ParamName: name(e.ParamName), Cause: e.Cause}
	case *ValueIsInvalidError:
		return &ValueIsInvalidError{ParamName: name(e.ParamName), Cause: e.Cause}
	case *ValueIsOutOfRangeError:
		return &ValueIsOutOfRangeError{ParamName: name(e.ParamName), Value: e.Value, Min: e.Min, Max: e.Max, Cause: e.Cause}
	case *ValidationError:
		return &ValidationError{Cause: WithParamPrefix(prefix, e.Cause)}
	default:
		return err
	}
}

func sanitize(v any) string {
	s := fmt.Sprintf("%s", v)
	return strings.ReplaceAll(s, "\n", " ")
}
