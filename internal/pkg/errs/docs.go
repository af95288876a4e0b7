// Package errs provides standardized error types for the order lifecycle service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types grouped by how callers react to them:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation
//     failures rejected before any write; the message is returned verbatim
//   - NotPermittedError: the actor's role may not perform the action; callers only
//     ever see a generic message, the detail stays in server logs
//   - ObjectNotFoundError: the addressed object does not exist or is not visible
//   - ConflictError: the target was already decided or changed concurrently
//   - ReferentialIntegrityError: a delete is blocked by dependent rows
//   - UpstreamFailureError: an external collaborator (blob store, bus) failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
package errs
