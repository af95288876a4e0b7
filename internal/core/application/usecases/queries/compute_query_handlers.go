package queries

import (
	"context"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/services"
	"mfgorders/internal/core/ports"
)

// ComputeTotalsQueryHandler returns the role-priced totals of an order.
// Totals are computed on every read and never stored.
type ComputeTotalsQueryHandler struct {
	orders  ports.OrderRepository
	margins ports.MarginConfigProvider
	policy  services.AccessPolicy
	pricing services.PricingEngine
}

func NewComputeTotalsQueryHandler(orders ports.OrderRepository, margins ports.MarginConfigProvider) ComputeTotalsQueryHandler {
	return ComputeTotalsQueryHandler{
		orders:  orders,
		margins: margins,
		policy:  services.NewAccessPolicy(),
		pricing: services.NewPricingEngine(),
	}
}

func (h ComputeTotalsQueryHandler) Handle(ctx context.Context, query ComputeTotalsQuery) (services.OrderTotals, error) {
	if err := query.Validate(); err != nil {
		return services.OrderTotals{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return services.OrderTotals{}, err
	}
	if err = h.policy.CanView(query.Actor(), o); err != nil {
		return services.OrderTotals{}, err
	}

	cfg, err := h.margins.MarginConfig(ctx)
	if err != nil {
		return services.OrderTotals{}, err
	}
	return h.pricing.OrderTotal(o, query.Actor().Role(), cfg), nil
}

// ETAResponse pairs a product with its estimate.
type ETAResponse struct {
	ProductID kernel.UUID
	services.ETA
}

type ComputeETAQueryHandler struct {
	orders ports.OrderRepository
	policy services.AccessPolicy
	eta    services.ETAEstimator
}

func NewComputeETAQueryHandler(orders ports.OrderRepository, clock kernel.Clock) ComputeETAQueryHandler {
	return ComputeETAQueryHandler{
		orders: orders,
		policy: services.NewAccessPolicy(),
		eta:    services.NewETAEstimator(clock),
	}
}

func (h ComputeETAQueryHandler) Handle(ctx context.Context, query ComputeETAQuery) (ETAResponse, error) {
	if err := query.Validate(); err != nil {
		return ETAResponse{}, err
	}

	o, err := h.orders.GetByProductID(ctx, query.ProductID())
	if err != nil {
		return ETAResponse{}, err
	}
	if err = h.policy.CanView(query.Actor(), o); err != nil {
		return ETAResponse{}, err
	}

	p, err := o.Product(query.ProductID())
	if err != nil {
		return ETAResponse{}, err
	}
	return ETAResponse{ProductID: p.ID(), ETA: h.eta.Estimate(p)}, nil
}
