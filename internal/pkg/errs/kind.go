package errs

import (
	"errors"
	"net/http"
)

// Kind is the category of an error as seen by transports and metrics.
type Kind string

const (
	KindValidation           Kind = "validation"
	KindNotPermitted         Kind = "not_permitted"
	KindNotFound             Kind = "not_found"
	KindConflict             Kind = "conflict"
	KindReferentialIntegrity Kind = "referential_integrity"
	KindUpstream             Kind = "upstream"
	KindInternal             Kind = "internal"
)

// KindOf classifies err. Authorization is checked first so a joined error
// never leaks as a validation message.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotPermitted):
		return KindNotPermitted
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrReferentialIntegrity):
		return KindReferentialIntegrity
	case errors.Is(err, ErrUpstreamFailure):
		return KindUpstream
	case IsValidation(err):
		return KindValidation
	default:
		return KindInternal
	}
}

// HTTPStatus resolves the response status for a kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotPermitted:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindReferentialIntegrity:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusBadGateway
	case KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusOK
}
