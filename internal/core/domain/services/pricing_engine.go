package services

import (
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MarginConfig holds the process-wide markup percentages.
type MarginConfig struct {
	ProductMarginPct  decimal.Decimal
	ShippingMarginPct decimal.Decimal
}

// DefaultMarginConfig is used when no margin configuration is stored.
func DefaultMarginConfig() MarginConfig {
	return MarginConfig{
		ProductMarginPct:  decimal.NewFromInt(80),
		ShippingMarginPct: decimal.Zero,
	}
}

// ProductTotals is the priced view of a single product for one role.
type ProductTotals struct {
	ProductID     kernel.UUID
	Quantity      int
	UnitPrice     decimal.Decimal
	SampleFee     decimal.Decimal
	ShippingPrice decimal.Decimal
	Total         decimal.Decimal
}

// OrderTotals is the priced view of an order for one role.
type OrderTotals struct {
	Products      []ProductTotals
	Total         decimal.Decimal
	MarginApplied bool
}

// PricingEngine turns manufacturer-entered costs into the prices a role sees.
// Admin and super admin see marked-up prices; every other role sees the raw
// manufacturer figures.
type PricingEngine struct{}

func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// ProductTotal computes unitPrice * quantity + sampleFee + shippingPrice.
func (PricingEngine) ProductTotal(p *order.Product, role kernel.Role, cfg MarginConfig) ProductTotals {
	costs := p.Costs()
	unit := costs.UnitPrice
	fee := costs.SampleFee
	ship := ShippingPrice(p)

	if role.SeesMargins() {
		productFactor := decimal.NewFromInt(1).Add(cfg.ProductMarginPct.Div(hundred))
		shippingFactor := decimal.NewFromInt(1).Add(cfg.ShippingMarginPct.Div(hundred))
		unit = unit.Mul(productFactor)
		fee = fee.Mul(productFactor)
		ship = ship.Mul(shippingFactor)
	}

	qty := p.Quantity()
	return ProductTotals{
		ProductID:     p.ID(),
		Quantity:      qty,
		UnitPrice:     unit,
		SampleFee:     fee,
		ShippingPrice: ship,
		Total:         unit.Mul(decimal.NewFromInt(int64(qty))).Add(fee).Add(ship),
	}
}

// OrderTotal sums ProductTotal over all products of o.
func (e PricingEngine) OrderTotal(o *order.Order, role kernel.Role, cfg MarginConfig) OrderTotals {
	totals := OrderTotals{Total: decimal.Zero, MarginApplied: role.SeesMargins()}
	for _, p := range o.Products() {
		pt := e.ProductTotal(p, role, cfg)
		totals.Products = append(totals.Products, pt)
		totals.Total = totals.Total.Add(pt.Total)
	}
	return totals
}

// ShippingPrice returns the price of the selected method, zero when unset.
func ShippingPrice(p *order.Product) decimal.Decimal {
	switch p.ShippingMethod() {
	case order.ShippingAir:
		return p.Costs().AirPrice
	case order.ShippingBoat:
		return p.Costs().BoatPrice
	case order.ShippingUnset:
	}
	return decimal.Zero
}
