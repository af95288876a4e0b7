package queries

import (
	"context"

	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
	"mfgorders/internal/core/ports"
)

// ListOrdersQueryHandler narrows the listing with the actor's scope in storage
// and applies the full visibility rules to what comes back.
type ListOrdersQueryHandler struct {
	orders  ports.OrderRepository
	margins ports.MarginConfigProvider
	policy  services.AccessPolicy
	pricing services.PricingEngine
}

func NewListOrdersQueryHandler(orders ports.OrderRepository, margins ports.MarginConfigProvider) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{
		orders:  orders,
		margins: margins,
		policy:  services.NewAccessPolicy(),
		pricing: services.NewPricingEngine(),
	}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	scope := h.policy.ListScope(actor)
	filter := ports.OrderFilter{
		CreatedBy:      scope.CreatedBy,
		ClientID:       scope.ClientID,
		ManufacturerID: scope.ManufacturerID,
	}
	if scope.ExcludeDrafts {
		filter.ExcludeStatuses = []order.Status{order.Draft}
	}

	found, err := h.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	cfg, err := h.margins.MarginConfig(ctx)
	if err != nil {
		return nil, err
	}

	visible := h.policy.FilterVisible(actor, found)
	rows := make([]OrderSummary, 0, len(visible))
	for _, o := range visible {
		totals := h.pricing.OrderTotal(o, actor.Role(), cfg)
		routing := o.RoutingSummary()
		rows = append(rows, OrderSummary{
			ID:              o.ID(),
			Number:          o.Number(),
			Name:            o.Name(),
			Status:          o.Status().String(),
			ClientID:        o.ClientID(),
			ManufacturerID:  o.ManufacturerID(),
			CreatedAt:       o.CreatedAt(),
			ProductCount:    len(o.Products()),
			RoutingLabel:    routing.Label(),
			CompletionLabel: routing.CompletionLabel(),
			Total:           totals.Total,
			MarginApplied:   totals.MarginApplied,
		})
	}
	return rows, nil
}
