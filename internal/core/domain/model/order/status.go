package order

import (
	"fmt"

	"mfgorders/internal/pkg/errs"
)

// Status is the top-level lifecycle state of an order.
//
// State transitions:
//
//	ClientRequest ──> Draft ──┬──> SubmittedForSample ──> SubmittedToManufacturer ──> InProgress ──> Completed
//	                          │                                   ^
//	                          └───────────────────────────────────┘
//
// The machine is forward-only. Deletion is not a status; it removes the order.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Draft is an order under internal construction, the only state that
	// permits structural edits.
	Draft

	// ClientRequest is an order proposed by a client, waiting for staff to
	// configure it.
	ClientRequest

	// SubmittedForSample waits for the order sample to be produced and approved.
	SubmittedForSample

	// SubmittedToManufacturer hands the order to the manufacturer for quoting
	// and production.
	SubmittedToManufacturer

	// InProgress has at least one product in production.
	InProgress

	// Completed is final.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                 "unknown",
		Draft:                   "draft",
		ClientRequest:           "client_request",
		SubmittedForSample:      "submitted_for_sample",
		SubmittedToManufacturer: "submitted_to_manufacturer",
		InProgress:              "in_progress",
		Completed:               "completed",
	}
}

// getNextStatuses lists the statuses reachable from each status in one step.
func getNextStatuses() map[Status][]Status {
	return map[Status][]Status{
		Unknown:                 nil,
		Draft:                   {SubmittedForSample, SubmittedToManufacturer},
		ClientRequest:           {Draft},
		SubmittedForSample:      {SubmittedToManufacturer},
		SubmittedToManufacturer: {InProgress},
		InProgress:              {Completed},
		Completed:               nil,
	}
}

// ParseStatus maps a persisted status string onto a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and any value outside the six defined statuses.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted representation; it is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsDraft reports whether structural edits are allowed.
func (s Status) IsDraft() bool {
	return s == Draft
}

// IsSubmitted reports whether the order has left internal construction and is
// not yet completed. Routing and production work happen only here.
func (s Status) IsSubmitted() bool {
	switch s {
	case SubmittedForSample, SubmittedToManufacturer, InProgress:
		return true
	case Unknown, Draft, ClientRequest, Completed:
		return false
	}
	return false
}

// Next validates a single-step transition and returns the target.
//
// Returns:
//   - (target, nil) if target is reachable from s
//   - (Unknown, error) otherwise; the error names both statuses
func (s Status) Next(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	for _, allowed := range getNextStatuses()[s] {
		if allowed == target {
			return target, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("cannot move from %s to %s", s, target),
	)
}

// SubmissionTarget returns the status a draft moves to on submission.
func SubmissionTarget(hasSampleNotes bool) Status {
	if hasSampleNotes {
		return SubmittedForSample
	}
	return SubmittedToManufacturer
}
