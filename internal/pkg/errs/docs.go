// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - ValidationError: Groups every field violation of one input
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The outcome kinds reported to callers (ErrValidation, ErrUnauthenticated,
// ErrUnauthorized, ErrInvalidTransition, ErrConflict, ErrResourceInUse and
// ErrObjectNotFound) are plain sentinels matched with errors.Is. Inbound adapters
// map them to transport-level status codes.
package errs
