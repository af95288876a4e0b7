// Package kernel provides the primitives shared by every aggregate of the
// order lifecycle: identifiers, calendar dates, roles and the acting party.
//
// The package includes:
//   - UUID: a validated identifier value object wrapping github.com/google/uuid
//   - Date: a calendar day without time of day, used for production and ETA dates
//   - Role: the closed set of roles a session may carry
//   - Actor: the immutable identity passed explicitly into every command and query
//
// Values are immutable and safe for concurrent use. Zero values are invalid and
// are rejected by the corresponding Validate methods.
package kernel
