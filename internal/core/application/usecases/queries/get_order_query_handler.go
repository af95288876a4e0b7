package queries

import (
	"context"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
	"mfgorders/internal/core/ports"
)

// GetOrderQueryHandler assembles the order detail: per-product totals and
// ETA, the routing summary and the order total, all priced for the actor's
// role.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(orders, margins, kernel.SystemClock{})
//	query, _ := NewGetOrderQuery(actor, orderID)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(view.Number, view.RoutingLabel, view.Total)
type GetOrderQueryHandler struct {
	orders  ports.OrderRepository
	margins ports.MarginConfigProvider
	policy  services.AccessPolicy
	pricing services.PricingEngine
	eta     services.ETAEstimator
}

func NewGetOrderQueryHandler(
	orders ports.OrderRepository,
	margins ports.MarginConfigProvider,
	clock kernel.Clock,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		orders:  orders,
		margins: margins,
		policy:  services.NewAccessPolicy(),
		pricing: services.NewPricingEngine(),
		eta:     services.NewETAEstimator(clock),
	}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}
	if err = h.policy.CanView(query.Actor(), o); err != nil {
		return OrderView{}, err
	}

	cfg, err := h.margins.MarginConfig(ctx)
	if err != nil {
		return OrderView{}, err
	}

	return h.view(o, query.Actor().Role(), cfg), nil
}

func (h GetOrderQueryHandler) view(o *order.Order, role kernel.Role, cfg services.MarginConfig) OrderView {
	totals := h.pricing.OrderTotal(o, role, cfg)
	routing := o.RoutingSummary()
	sample := o.Sample()

	products := make([]ProductView, 0, len(o.Products()))
	for i, p := range o.Products() {
		products = append(products, productView(p, totals.Products[i], h.eta.Estimate(p)))
	}

	return OrderView{
		ID:             o.ID(),
		Number:         o.Number(),
		Name:           o.Name(),
		Status:         o.Status().String(),
		ClientID:       o.ClientID(),
		ManufacturerID: o.ManufacturerID(),
		CreatedBy:      o.CreatedBy(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
		Version:        o.Version(),
		Sample: SampleView{
			Required:       sample.Required,
			Status:         sample.Status.String(),
			RoutedTo:       sample.RoutedTo.String(),
			Fee:            sample.Fee,
			ETA:            sample.ETA,
			TrackingNumber: sample.Shipment.TrackingNumber,
			Carrier:        sample.Shipment.Carrier,
			Media:          mediaViews(o.SampleMedia()),
		},
		Products:        products,
		Routing:         routing,
		RoutingLabel:    routing.Label(),
		CompletionLabel: routing.CompletionLabel(),
		Total:           totals.Total,
		MarginApplied:   totals.MarginApplied,
	}
}
