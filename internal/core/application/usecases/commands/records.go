package commands

import (
	"context"
	"fmt"
	"time"

	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/notification"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/ports"
)

// change describes one audited modification.
type change struct {
	action     audit.Action
	targetType audit.TargetType
	targetID   kernel.UUID
	oldValue   string
	newValue   string
}

func record(ctx context.Context, repo ports.AuditRepository, actor kernel.Actor, o *order.Order, c change, at time.Time) error {
	entry, err := audit.NewEntry(actor, c.action, c.targetType, c.targetID, o.ID(), c.oldValue, c.newValue, at)
	if err != nil {
		return err
	}
	return repo.Record(ctx, entry)
}

// notify writes an order-scoped notification for the party that now holds
// something of o. Staff notifications carry no party.
func notify(
	ctx context.Context,
	repo ports.NotificationRepository,
	o *order.Order,
	recipient order.Custodian,
	kind, message string,
	at time.Time,
) error {
	var party *kernel.UUID
	switch recipient {
	case order.CustodianClient:
		party = o.ClientID()
	case order.CustodianManufacturer:
		party = o.ManufacturerID()
	case order.CustodianStaff, order.UnknownCustodian:
	}
	n, err := notification.NewNotification(o.ID(), recipient, party, kind, message, at)
	if err != nil {
		return err
	}
	return repo.Add(ctx, n)
}

func productLabel(o *order.Order, p *order.Product) string {
	if p.ProductRef() != "" {
		return fmt.Sprintf("%s line %d (%s)", o.Number(), p.Sequence(), p.ProductRef())
	}
	return fmt.Sprintf("%s line %d", o.Number(), p.Sequence())
}
