package order

import (
	"fmt"

	"mfgorders/internal/pkg/errs"
)

// ProductStatus is the work state of a single order product. The manufacturer
// question is an overlay on Product, not a status.
type ProductStatus int

const (
	UnknownProductStatus ProductStatus = iota
	ProductPending
	ProductInProduction
	ProductCompleted
	ProductShipped
	ProductPendingClientApproval
	ProductClientApproved
)

// legacyQuestionStatus is accepted on read only; it restores as pending with
// the question overlay raised.
const legacyQuestionStatus = "question_for_admin"

func getProductStatusStrings() map[ProductStatus]string {
	return map[ProductStatus]string{
		UnknownProductStatus:         "unknown",
		ProductPending:               "pending",
		ProductInProduction:          "in_production",
		ProductCompleted:             "completed",
		ProductShipped:               "shipped",
		ProductPendingClientApproval: "pending_client_approval",
		ProductClientApproved:        "client_approved",
	}
}

// ParseProductStatus maps a persisted product_status string. The second
// result is true for the legacy question_for_admin value.
func ParseProductStatus(s string) (ProductStatus, bool, error) {
	if s == legacyQuestionStatus {
		return ProductPending, true, nil
	}
	for status, str := range getProductStatusStrings() {
		if status != UnknownProductStatus && str == s {
			return status, false, nil
		}
	}
	return UnknownProductStatus, false, errs.NewValueIsInvalidErrorWithCause(
		"product status is invalid", fmt.Errorf("%q is not a valid product status", s))
}

func (s ProductStatus) Validate() error {
	if _, ok := getProductStatusStrings()[s]; !ok || s == UnknownProductStatus {
		return errs.NewValueIsInvalidErrorWithCause(
			"product status is invalid", fmt.Errorf("%d is not a valid product status", s))
	}
	return nil
}

func (s ProductStatus) String() string {
	if str, ok := getProductStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinished reports whether the product no longer blocks order completion.
func (s ProductStatus) IsFinished() bool {
	switch s {
	case ProductCompleted, ProductShipped, ProductClientApproved:
		return true
	case UnknownProductStatus, ProductPending, ProductInProduction, ProductPendingClientApproval:
		return false
	}
	return false
}

// HasStarted reports whether production has begun.
func (s ProductStatus) HasStarted() bool {
	switch s {
	case ProductInProduction, ProductCompleted, ProductShipped, ProductPendingClientApproval, ProductClientApproved:
		return true
	case UnknownProductStatus, ProductPending:
		return false
	}
	return false
}

// Advance validates a manufacturer work step:
// pending -> in_production -> completed -> shipped.
func (s ProductStatus) Advance(target ProductStatus) (ProductStatus, error) {
	if err := target.Validate(); err != nil {
		return UnknownProductStatus, err
	}
	var from ProductStatus
	switch target {
	case ProductInProduction:
		from = ProductPending
	case ProductCompleted:
		from = ProductInProduction
	case ProductShipped:
		from = ProductCompleted
	case UnknownProductStatus, ProductPending, ProductPendingClientApproval, ProductClientApproved:
		return UnknownProductStatus, errs.NewValueIsInvalidErrorWithCause(
			"product status is invalid",
			fmt.Errorf("%s is not a manufacturer work step", target),
		)
	}
	if s != from {
		return UnknownProductStatus, errs.NewValueIsInvalidErrorWithCause(
			"product status is invalid",
			fmt.Errorf("cannot move from %s to %s", s, target),
		)
	}
	return target, nil
}
