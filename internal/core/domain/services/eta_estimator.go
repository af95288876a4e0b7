package services

import (
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
)

const (
	AirShippingDays  = 15
	BoatShippingDays = 25
)

// ETA is the estimated delivery date of a product. Date is nil when the
// manufacturer has not entered production days yet.
type ETA struct {
	Date                *kernel.Date
	IsEstimate          bool
	ShippingMethodUnset bool
}

// ETAEstimator computes delivery dates from production and shipping data.
//
// Once production has actually started the real start date is used and the
// result is not an estimate. Before that the estimate starts today. An unset
// shipping method assumes the boat duration.
type ETAEstimator struct {
	clock kernel.Clock
}

func NewETAEstimator(clock kernel.Clock) ETAEstimator {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return ETAEstimator{clock: clock}
}

func (e ETAEstimator) Estimate(p *order.Product) ETA {
	method := p.ShippingMethod()
	eta := ETA{IsEstimate: true, ShippingMethodUnset: method == order.ShippingUnset}

	production := p.Production()
	if production.Days == nil {
		return eta
	}

	shipDays := BoatShippingDays
	if method == order.ShippingAir {
		shipDays = AirShippingDays
	}

	start := e.clock.Today()
	if p.Status() == order.ProductInProduction && production.StartDate != nil {
		start = *production.StartDate
		eta.IsEstimate = false
	}

	d := start.AddDays(*production.Days + shipDays)
	eta.Date = &d
	return eta
}
