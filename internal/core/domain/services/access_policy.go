package services

import (
	"fmt"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/pkg/errs"
)

// AccessPolicy decides which actor may see or act on an order. Every method
// returns nil or a *errs.NotPermittedError whose reason is meant for logs only.
//
// Roles:
//   - super_admin, admin and order_approver (operators) see every order
//   - order_creator sees and edits only the orders they created
//   - manufacturer sees non-draft orders assigned to them with at least one
//     product routed to them
//   - client sees their own orders except drafts
type AccessPolicy struct{}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// Scope narrows an order listing before the per-order visibility check.
type Scope struct {
	All            bool
	CreatedBy      *kernel.UUID
	ClientID       *kernel.UUID
	ManufacturerID *kernel.UUID
	ExcludeDrafts  bool
}

func isOperator(r kernel.Role) bool {
	return r == kernel.SuperAdmin || r == kernel.Admin || r == kernel.OrderApprover
}

func denied(action string, a kernel.Actor, format string, args ...any) error {
	return errs.NewNotPermittedError(action, fmt.Sprintf("%s %s: ", a.Role(), a.ID())+fmt.Sprintf(format, args...))
}

func (AccessPolicy) isAssignedManufacturer(a kernel.Actor, o *order.Order) bool {
	return a.Role() == kernel.Manufacturer && a.ActsFor(o.ManufacturerID())
}

// worksOn is the assigned manufacturer on an order it can currently see.
func (p AccessPolicy) worksOn(a kernel.Actor, o *order.Order) bool {
	return p.isAssignedManufacturer(a, o) && p.CanView(a, o) == nil
}

func (AccessPolicy) isOrderClient(a kernel.Actor, o *order.Order) bool {
	return a.Role() == kernel.Client && a.ActsFor(o.ClientID())
}

// ListScope returns the coarse filter for listing orders visible to a.
func (AccessPolicy) ListScope(a kernel.Actor) Scope {
	switch a.Role() {
	case kernel.SuperAdmin, kernel.Admin, kernel.OrderApprover:
		return Scope{All: true}
	case kernel.OrderCreator:
		id := a.ID()
		return Scope{CreatedBy: &id}
	case kernel.Manufacturer:
		return Scope{ManufacturerID: a.PartyID(), ExcludeDrafts: true}
	case kernel.Client:
		return Scope{ClientID: a.PartyID(), ExcludeDrafts: true}
	case kernel.UnknownRole:
	}
	nobody := kernel.NewUUID()
	return Scope{CreatedBy: &nobody}
}

// CanView applies the visibility rules to a single order.
func (p AccessPolicy) CanView(a kernel.Actor, o *order.Order) error {
	const action = "view order"
	switch a.Role() {
	case kernel.SuperAdmin, kernel.Admin, kernel.OrderApprover:
		return nil
	case kernel.OrderCreator:
		if o.CreatedBy().IsEqual(a.ID()) {
			return nil
		}
		return denied(action, a, "order %s was created by someone else", o.ID())
	case kernel.Manufacturer:
		if !p.isAssignedManufacturer(a, o) {
			return denied(action, a, "order %s is assigned to another manufacturer", o.ID())
		}
		if o.Status() == order.Draft || !o.HasProductRoutedTo(order.CustodianManufacturer) {
			return denied(action, a, "order %s has nothing routed to the manufacturer", o.ID())
		}
		return nil
	case kernel.Client:
		if !p.isOrderClient(a, o) {
			return denied(action, a, "order %s belongs to another client", o.ID())
		}
		if o.Status() == order.Draft {
			return denied(action, a, "order %s is a draft", o.ID())
		}
		return nil
	case kernel.UnknownRole:
	}
	return denied(action, a, "unknown role")
}

// FilterVisible keeps the orders a may view.
func (p AccessPolicy) FilterVisible(a kernel.Actor, orders []*order.Order) []*order.Order {
	visible := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if p.CanView(a, o) == nil {
			visible = append(visible, o)
		}
	}
	return visible
}

// CanCreate allows drafting staff to create drafts and clients to create requests.
func (AccessPolicy) CanCreate(a kernel.Actor) error {
	switch a.Role() {
	case kernel.SuperAdmin, kernel.OrderApprover, kernel.OrderCreator, kernel.Client:
		return nil
	case kernel.Admin, kernel.Manufacturer, kernel.UnknownRole:
	}
	return denied("create order", a, "role may not create orders")
}

// CanEditDraft allows order creators on their own drafts and approvers or
// super admins on any draft.
func (AccessPolicy) CanEditDraft(a kernel.Actor, o *order.Order) error {
	const action = "edit draft"
	switch a.Role() {
	case kernel.SuperAdmin, kernel.OrderApprover:
		return nil
	case kernel.OrderCreator:
		if o.CreatedBy().IsEqual(a.ID()) {
			return nil
		}
		return denied(action, a, "order %s was created by someone else", o.ID())
	case kernel.Admin, kernel.Manufacturer, kernel.Client, kernel.UnknownRole:
	}
	return denied(action, a, "role may not edit drafts")
}

// CanTransition allows approvers and super admins to move any order forward.
// Admins may additionally accept client requests into draft.
func (AccessPolicy) CanTransition(a kernel.Actor, o *order.Order, target order.Status) error {
	switch a.Role() {
	case kernel.SuperAdmin, kernel.OrderApprover:
		return nil
	case kernel.Admin:
		if o.Status() == order.ClientRequest && target == order.Draft {
			return nil
		}
	case kernel.OrderCreator, kernel.Manufacturer, kernel.Client, kernel.UnknownRole:
	}
	return denied("transition order", a, "role may not move %s to %s", o.Status(), target)
}

// CanDelete allows super admins to delete any order and admins to delete drafts.
func (AccessPolicy) CanDelete(a kernel.Actor, o *order.Order) error {
	switch a.Role() {
	case kernel.SuperAdmin:
		return nil
	case kernel.Admin:
		if o.Status() == order.Draft {
			return nil
		}
		return denied("delete order", a, "admins may only delete drafts, order is %s", o.Status())
	case kernel.OrderApprover, kernel.OrderCreator, kernel.Manufacturer, kernel.Client, kernel.UnknownRole:
	}
	return denied("delete order", a, "role may not delete orders")
}

// CanRouteProduct allows operators to route anywhere and the assigned
// manufacturer to hand a product it holds back to staff.
func (p AccessPolicy) CanRouteProduct(a kernel.Actor, o *order.Order, pr *order.Product, target order.Custodian) error {
	if isOperator(a.Role()) {
		return nil
	}
	if p.isAssignedManufacturer(a, o) && pr.RoutedTo() == order.CustodianManufacturer && target == order.CustodianStaff {
		return nil
	}
	return denied("route product", a, "may not route product %s to %s", pr.ID(), target)
}

// CanApproveProduct allows only the order's client.
func (p AccessPolicy) CanApproveProduct(a kernel.Actor, o *order.Order) error {
	if p.isOrderClient(a, o) {
		return nil
	}
	return denied("approve product", a, "only the order's client approves products")
}

// CanDecideItem matches the field to the role: staff set admin_status, the
// assigned manufacturer sets manufacturer_status while the order is visible
// to it.
func (p AccessPolicy) CanDecideItem(a kernel.Actor, o *order.Order, field order.ApprovalField) error {
	switch field {
	case order.AdminStatus:
		if isOperator(a.Role()) {
			return nil
		}
	case order.ManufacturerStatus:
		if p.worksOn(a, o) {
			return nil
		}
	case order.UnknownApprovalField:
	}
	return denied("decide item", a, "role may not set %s", field)
}

// CanWorkProduct covers quoting, production steps and raising questions. The
// manufacturer must be able to view the order.
func (p AccessPolicy) CanWorkProduct(a kernel.Actor, o *order.Order) error {
	if p.worksOn(a, o) {
		return nil
	}
	return denied("work on product", a, "only the assigned manufacturer works on visible orders")
}

// CanResolveQuestion allows operators.
func (AccessPolicy) CanResolveQuestion(a kernel.Actor) error {
	if isOperator(a.Role()) {
		return nil
	}
	return denied("resolve question", a, "only operators resolve questions")
}

// CanSelectShipping allows operators, the creator of the order and its client.
func (p AccessPolicy) CanSelectShipping(a kernel.Actor, o *order.Order) error {
	if isOperator(a.Role()) || p.isOrderClient(a, o) {
		return nil
	}
	if a.Role() == kernel.OrderCreator && o.CreatedBy().IsEqual(a.ID()) {
		return nil
	}
	return denied("select shipping", a, "may not choose shipping on order %s", o.ID())
}

// CanRouteSample allows operators, and the assigned manufacturer while it holds the sample.
func (p AccessPolicy) CanRouteSample(a kernel.Actor, o *order.Order) error {
	if isOperator(a.Role()) {
		return nil
	}
	if p.isAssignedManufacturer(a, o) && o.Sample().RoutedTo == order.CustodianManufacturer {
		return nil
	}
	return denied("route sample", a, "may not route the sample of order %s", o.ID())
}

// CanUpdateSample allows the assigned manufacturer.
func (p AccessPolicy) CanUpdateSample(a kernel.Actor, o *order.Order) error {
	if p.isAssignedManufacturer(a, o) {
		return nil
	}
	return denied("update sample", a, "only the assigned manufacturer updates the sample")
}

// CanDecideSample allows only the order's client.
func (p AccessPolicy) CanDecideSample(a kernel.Actor, o *order.Order) error {
	if p.isOrderClient(a, o) {
		return nil
	}
	return denied("decide sample", a, "only the order's client decides the sample")
}

// CanUploadMedia allows staff who can see the order and the assigned manufacturer.
func (p AccessPolicy) CanUploadMedia(a kernel.Actor, o *order.Order) error {
	if a.Role().IsStaff() && p.CanView(a, o) == nil {
		return nil
	}
	if p.isAssignedManufacturer(a, o) {
		return nil
	}
	return denied("upload media", a, "may not attach files to order %s", o.ID())
}

// CanViewAudit allows staff who can see the order.
func (p AccessPolicy) CanViewAudit(a kernel.Actor, o *order.Order) error {
	if a.Role().IsStaff() && p.CanView(a, o) == nil {
		return nil
	}
	return denied("view audit", a, "audit trail is staff only")
}
