// Package errs provides standardized error types for the tendering application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidTransitionError: For state changes forbidden by the current state
//   - DuplicateOpenQuotationError: For a second open quotation on the same tender
//   - RepositoryError: For failures reported by a storage collaborator
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf maps any error produced by the application onto the closed Kind
// taxonomy that inbound adapters translate into user-visible responses.
package errs
