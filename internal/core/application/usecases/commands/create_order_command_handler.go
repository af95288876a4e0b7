package commands

import (
	"context"

	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
)

// CreateOrderCommandHandler persists a new draft or client request and
// records its creation.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) CreateOrderCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle returns the id of the created order. Client requests notify staff.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (id kernel.UUID, err error) {
	ctx, done := observe(ctx, "create_order")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	actor := cmd.Actor()
	if err = h.policy.CanCreate(actor); err != nil {
		return kernel.UUID{}, err
	}

	now := h.clock.Now()
	var o *order.Order
	if actor.Role() == kernel.Client {
		o, err = order.NewClientRequest(kernel.NewUUID(), cmd.Name(), actor.ID(), *actor.PartyID(), now)
	} else {
		o, err = order.NewDraft(kernel.NewUUID(), cmd.Name(), actor.ID(), cmd.ClientID(), cmd.ManufacturerID(), now)
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = record(ctx, uow.AuditRepository(), actor, o, change{
		action:     audit.OrderCreated,
		targetType: audit.TargetOrder,
		targetID:   o.ID(),
		newValue:   o.Status().String(),
	}, now); err != nil {
		return kernel.UUID{}, err
	}

	if o.Status() == order.ClientRequest {
		if err = notify(ctx, uow.NotificationRepository(), o, order.CustodianStaff,
			"order.client_request", "New client request "+o.Number(), now); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return o.ID(), nil
}
