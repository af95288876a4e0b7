package order

import (
	"fmt"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Sample is the order-level pre-production sample. There is one per order.
type Sample struct {
	Required  bool
	Status    Decision
	RoutedTo  Custodian
	Fee       *decimal.Decimal
	ETA       *kernel.Date
	Shipment  Shipment
	DecidedBy *kernel.UUID
	DecidedAt *time.Time
}

// SampleUpdate is what the manufacturer enters for the sample.
type SampleUpdate struct {
	Fee      *decimal.Decimal
	ETA      *kernel.Date
	Shipment Shipment
}

func newSample() Sample {
	return Sample{Status: DecisionPending, RoutedTo: CustodianStaff}
}

// IsApproved reports whether the client approved the sample.
func (s Sample) IsApproved() bool {
	return s.Required && s.Status == DecisionApproved
}

func (s Sample) requireCustodian(c Custodian) error {
	if s.RoutedTo != c {
		return errs.NewValueIsInvalidErrorWithCause(
			"sample routed_to", fmt.Errorf("sample is routed to %s, not %s", s.RoutedTo, c))
	}
	return nil
}
