package kernel

import (
	"fmt"

	"mfgorders/internal/pkg/errs"
)

// Role is the closed set of session roles.
type Role int

const (
	UnknownRole Role = iota
	SuperAdmin
	Admin
	OrderApprover
	OrderCreator
	Manufacturer
	Client
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole:   "unknown",
		SuperAdmin:    "super_admin",
		Admin:         "admin",
		OrderApprover: "order_approver",
		OrderCreator:  "order_creator",
		Manufacturer:  "manufacturer",
		Client:        "client",
	}
}

// ParseRole maps the session role string onto a Role.
func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != UnknownRole && str == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == UnknownRole {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// IsStaff reports whether the role belongs to the internal team.
func (r Role) IsStaff() bool {
	switch r {
	case SuperAdmin, Admin, OrderApprover, OrderCreator:
		return true
	case UnknownRole, Manufacturer, Client:
		return false
	}
	return false
}

// SeesMargins reports whether prices shown to this role carry the configured margin.
func (r Role) SeesMargins() bool {
	return r == Admin || r == SuperAdmin
}
