package order

import (
	"fmt"
	"strings"

	"mfgorders/internal/pkg/errs"
)

// Custodian is the party currently responsible for acting on a product or
// the order sample.
type Custodian int

const (
	UnknownCustodian Custodian = iota
	CustodianStaff
	CustodianManufacturer
	CustodianClient
)

// Staff custody is persisted as "admin".
func getCustodianStrings() map[Custodian]string {
	return map[Custodian]string{
		UnknownCustodian:      "unknown",
		CustodianStaff:        "admin",
		CustodianManufacturer: "manufacturer",
		CustodianClient:       "client",
	}
}

func ParseCustodian(s string) (Custodian, error) {
	for c, str := range getCustodianStrings() {
		if c != UnknownCustodian && str == s {
			return c, nil
		}
	}
	return UnknownCustodian, errs.NewValueIsInvalidErrorWithCause("routed_to", fmt.Errorf("%q is not a valid custodian", s))
}

func (c Custodian) Validate() error {
	if _, ok := getCustodianStrings()[c]; !ok || c == UnknownCustodian {
		return errs.NewValueIsInvalidErrorWithCause("routed_to", fmt.Errorf("%d is not a valid custodian", c))
	}
	return nil
}

func (c Custodian) String() string {
	if str, ok := getCustodianStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// Decision is the state of an approval field: an item's admin_status or
// manufacturer_status, or the sample status.
type Decision int

const (
	UnknownDecision Decision = iota
	DecisionPending
	DecisionApproved
	DecisionRejected
)

func getDecisionStrings() map[Decision]string {
	return map[Decision]string{
		UnknownDecision:  "unknown",
		DecisionPending:  "pending",
		DecisionApproved: "approved",
		DecisionRejected: "rejected",
	}
}

func ParseDecision(s string) (Decision, error) {
	for d, str := range getDecisionStrings() {
		if d != UnknownDecision && str == s {
			return d, nil
		}
	}
	return UnknownDecision, errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%q is not a valid decision", s))
}

func (d Decision) Validate() error {
	if _, ok := getDecisionStrings()[d]; !ok || d == UnknownDecision {
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%d is not a valid decision", d))
	}
	return nil
}

func (d Decision) String() string {
	if str, ok := getDecisionStrings()[d]; ok {
		return str
	}
	return "unknown"
}

// Decide moves a pending decision to approved or rejected. A decision that was
// already taken yields a ConflictError and is left untouched.
func (d Decision) Decide(verdict Decision) (Decision, error) {
	if verdict != DecisionApproved && verdict != DecisionRejected {
		return UnknownDecision, errs.NewValueIsInvalidErrorWithCause(
			"decision", fmt.Errorf("%s is not a verdict", verdict))
	}
	if d != DecisionPending {
		return UnknownDecision, errs.NewConflictError("decision", d)
	}
	return verdict, nil
}

// ApprovalField selects one of the two independent item decisions.
type ApprovalField int

const (
	UnknownApprovalField ApprovalField = iota
	AdminStatus
	ManufacturerStatus
)

func ParseApprovalField(s string) (ApprovalField, error) {
	switch s {
	case "admin_status":
		return AdminStatus, nil
	case "manufacturer_status":
		return ManufacturerStatus, nil
	}
	return UnknownApprovalField, errs.NewValueIsInvalidErrorWithCause("field", fmt.Errorf("%q is not an approval field", s))
}

func (f ApprovalField) String() string {
	switch f {
	case AdminStatus:
		return "admin_status"
	case ManufacturerStatus:
		return "manufacturer_status"
	case UnknownApprovalField:
	}
	return "unknown"
}

// ShippingMethod is the transport the product ships with. Unset is the zero
// value and is valid.
type ShippingMethod int

const (
	ShippingUnset ShippingMethod = iota
	ShippingAir
	ShippingBoat
)

func ParseShippingMethod(s string) (ShippingMethod, error) {
	switch s {
	case "":
		return ShippingUnset, nil
	case "air":
		return ShippingAir, nil
	case "boat":
		return ShippingBoat, nil
	}
	return ShippingUnset, errs.NewValueIsInvalidErrorWithCause("shipping method", fmt.Errorf("%q is not air or boat", s))
}

func (m ShippingMethod) Validate() error {
	switch m {
	case ShippingUnset, ShippingAir, ShippingBoat:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("shipping method", fmt.Errorf("%d is not a valid shipping method", m))
}

// String returns "" for ShippingUnset.
func (m ShippingMethod) String() string {
	switch m {
	case ShippingAir:
		return "air"
	case ShippingBoat:
		return "boat"
	case ShippingUnset:
	}
	return ""
}

// MediaKind classifies an attachment for display.
type MediaKind int

const (
	UnknownMediaKind MediaKind = iota
	MediaImage
	MediaVideo
	MediaDocument
)

func ParseMediaKind(s string) (MediaKind, error) {
	switch s {
	case "image":
		return MediaImage, nil
	case "video":
		return MediaVideo, nil
	case "document":
		return MediaDocument, nil
	}
	return UnknownMediaKind, errs.NewValueIsInvalidErrorWithCause("media kind", fmt.Errorf("%q is not a valid media kind", s))
}

// MediaKindFromContentType maps a MIME type onto a kind; anything that is
// neither an image nor a video is a document.
func MediaKindFromContentType(contentType string) MediaKind {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return MediaImage
	case strings.HasPrefix(ct, "video/"):
		return MediaVideo
	default:
		return MediaDocument
	}
}

func (k MediaKind) Validate() error {
	switch k {
	case MediaImage, MediaVideo, MediaDocument:
		return nil
	case UnknownMediaKind:
	}
	return errs.NewValueIsInvalidErrorWithCause("media kind", fmt.Errorf("%d is not a valid media kind", k))
}

func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaVideo:
		return "video"
	case MediaDocument:
		return "document"
	case UnknownMediaKind:
	}
	return "unknown"
}
