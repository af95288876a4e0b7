package order

import (
	"errors"
	"fmt"
	"strings"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/pkg/errs"
)

// Item is a variant line of an order product. Its two decisions are
// independent and are never combined here.
type Item struct {
	id                 kernel.UUID
	label              string
	quantity           int
	notes              string
	adminStatus        Decision
	manufacturerStatus Decision
}

// ItemSpec describes an item in a draft edit. A nil ID adds a new item.
type ItemSpec struct {
	ID       *kernel.UUID
	Label    string
	Quantity int
	Notes    string
}

func NewItem(id kernel.UUID, label string, quantity int, notes string) (*Item, error) {
	item := &Item{
		notes:              notes,
		adminStatus:        DecisionPending,
		manufacturerStatus: DecisionPending,
	}
	if err := errors.Join(
		id.Validate(),
		item.setLabel(label),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}
	item.id = id
	return item, nil
}

// RestoreItem rehydrates an item from storage without re-running edit rules.
func RestoreItem(id kernel.UUID, label string, quantity int, notes string, adminStatus, manufacturerStatus Decision) *Item {
	return &Item{
		id:                 id,
		label:              label,
		quantity:           quantity,
		notes:              notes,
		adminStatus:        adminStatus,
		manufacturerStatus: manufacturerStatus,
	}
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) Label() string {
	return i.label
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) Notes() string {
	return i.notes
}

func (i *Item) AdminStatus() Decision {
	return i.adminStatus
}

func (i *Item) ManufacturerStatus() Decision {
	return i.manufacturerStatus
}

// Status returns the decision stored in the given field.
func (i *Item) Status(field ApprovalField) Decision {
	switch field {
	case AdminStatus:
		return i.adminStatus
	case ManufacturerStatus:
		return i.manufacturerStatus
	case UnknownApprovalField:
	}
	return UnknownDecision
}

func (i *Item) decide(field ApprovalField, verdict Decision) (Decision, error) {
	old := i.Status(field)
	if old == UnknownDecision {
		return UnknownDecision, errs.NewValueIsInvalidErrorWithCause("field", fmt.Errorf("%s is not an approval field", field))
	}
	next, err := old.Decide(verdict)
	if err != nil {
		var conflict *errs.ConflictError
		if errors.As(err, &conflict) {
			return old, errs.NewConflictError(field.String(), old)
		}
		return old, err
	}
	if field == AdminStatus {
		i.adminStatus = next
	} else {
		i.manufacturerStatus = next
	}
	return old, nil
}

func (i *Item) apply(spec ItemSpec) error {
	if err := errors.Join(i.setLabel(spec.Label), i.setQuantity(spec.Quantity)); err != nil {
		return err
	}
	i.notes = spec.Notes
	return nil
}

func (i *Item) setLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return errs.NewValueIsRequiredError("item label")
	}
	i.label = label
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is less than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
