package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired      = errors.New("value is required")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrObjectNotFound       = errors.New("object not found")
	ErrNotPermitted         = errors.New("not permitted")
	ErrConflict             = errors.New("conflict")
	ErrReferentialIntegrity = errors.New("there are still related records")
	ErrUpstreamFailure      = errors.New("upstream failure")
)

// sanitize keeps user supplied values on a single line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ValueIsRequiredError is returned when a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError is returned when a value fails a business rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a value falls outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError is returned when a lookup by identifier finds nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// NotPermittedError carries the reason an actor was denied. Reason is for
// server-side logs only; transports must answer with ErrNotPermitted's text.
type NotPermittedError struct {
	Action string
	Reason string
}

func NewNotPermittedError(action, reason string) *NotPermittedError {
	return &NotPermittedError{Action: action, Reason: reason}
}

func (e *NotPermittedError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrNotPermitted, e.Action, sanitize(e.Reason))
}

func (e *NotPermittedError) Unwrap() error {
	return ErrNotPermitted
}

// ConflictError is returned when a decision was already taken or the
// stored state moved on since the caller read it.
type ConflictError struct {
	ParamName string
	Current   any
	Cause     error
}

func NewConflictError(paramName string, current any) *ConflictError {
	return &ConflictError{ParamName: paramName, Current: current}
}

func NewConflictErrorWithCause(paramName string, current any, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Current: current, Cause: cause}
}

func (e *ConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s is already %s", ErrConflict, e.ParamName, sanitize(e.Current)), e.Cause)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ReferentialIntegrityError names the relationship that blocked a delete.
type ReferentialIntegrityError struct {
	Relationship string
	Cause        error
}

func NewReferentialIntegrityError(relationship string, cause error) *ReferentialIntegrityError {
	return &ReferentialIntegrityError{Relationship: relationship, Cause: cause}
}

func (e *ReferentialIntegrityError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrReferentialIntegrity, e.Relationship), e.Cause)
}

func (e *ReferentialIntegrityError) Unwrap() error {
	return ErrReferentialIntegrity
}

// UpstreamFailureError reports a failed call to an external collaborator for
// a single subject, typically a file name.
type UpstreamFailureError struct {
	Subject string
	Cause   error
}

func NewUpstreamFailureError(subject string, cause error) *UpstreamFailureError {
	return &UpstreamFailureError{Subject: subject, Cause: cause}
}

func (e *UpstreamFailureError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUpstreamFailure, sanitize(e.Subject)), e.Cause)
}

func (e *UpstreamFailureError) Unwrap() error {
	return ErrUpstreamFailure
}

// IsValidation reports whether err belongs to the validation family.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}
