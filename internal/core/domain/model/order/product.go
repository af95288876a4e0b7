package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Costs are the manufacturer-entered figures, before any margin.
type Costs struct {
	UnitPrice decimal.Decimal
	SampleFee decimal.Decimal
	AirPrice  decimal.Decimal
	BoatPrice decimal.Decimal
}

func (c Costs) validate() error {
	var errList []error
	for name, v := range map[string]decimal.Decimal{
		"unit price": c.UnitPrice,
		"sample fee": c.SampleFee,
		"air price":  c.AirPrice,
		"boat price": c.BoatPrice,
	} {
		if v.IsNegative() {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", v)))
		}
	}
	return errors.Join(errList...)
}

// Production holds the manufacturer schedule. Days is nil until quoted.
type Production struct {
	StartDate *kernel.Date
	Days      *int
}

// Shipment is shared by products and the sample.
type Shipment struct {
	TrackingNumber string
	Carrier        string
	ShippedDate    *kernel.Date
}

// Quote is what the manufacturer enters for a product.
type Quote struct {
	Costs      Costs
	Production Production
}

// ProductSpec describes a product in a draft edit. A nil ID adds a new product.
type ProductSpec struct {
	ID          *kernel.UUID
	ProductRef  string
	Description string
	SampleNotes string
	Items       []ItemSpec
}

// ProductState is the full persisted shape of a product, used to restore it.
type ProductState struct {
	ID               kernel.UUID
	ProductRef       string
	Sequence         int
	Description      string
	SampleNotes      string
	RoutedTo         Custodian
	RoutedAt         *time.Time
	RoutedBy         *kernel.UUID
	Status           ProductStatus
	ReviewedFrom     ProductStatus
	QuestionRaised   bool
	QuestionNote     string
	Costs            Costs
	ShippingMethod   ShippingMethod
	Production       Production
	Shipment         Shipment
	ClientApprovedBy *kernel.UUID
	ClientApprovedAt *time.Time
	Items            []*Item
	Media            []*MediaAttachment
}

// Product is one line of work inside an order. It carries two orthogonal
// fields: who holds it (routedTo) and how far the work is (status).
type Product struct {
	id          kernel.UUID
	productRef  string
	sequence    int
	description string
	sampleNotes string

	routedTo Custodian
	routedAt *time.Time
	routedBy *kernel.UUID
	status   ProductStatus
	// reviewedFrom is the work status held while a client review is open.
	reviewedFrom ProductStatus

	questionRaised bool
	questionNote   string

	costs          Costs
	shippingMethod ShippingMethod
	production     Production
	shipment       Shipment

	clientApprovedBy *kernel.UUID
	clientApprovedAt *time.Time

	items []*Item
	media []*MediaAttachment
}

func newProduct(id kernel.UUID, sequence int, spec ProductSpec) (*Product, error) {
	p := &Product{
		id:       id,
		sequence: sequence,
		routedTo: CustodianStaff,
		status:   ProductPending,
		costs: Costs{
			UnitPrice: decimal.Zero,
			SampleFee: decimal.Zero,
			AirPrice:  decimal.Zero,
			BoatPrice: decimal.Zero,
		},
	}
	if err := p.apply(spec); err != nil {
		return nil, err
	}
	return p, nil
}

// RestoreProduct rehydrates a product from storage.
func RestoreProduct(s ProductState) *Product {
	return &Product{
		id:               s.ID,
		productRef:       s.ProductRef,
		sequence:         s.Sequence,
		description:      s.Description,
		sampleNotes:      s.SampleNotes,
		routedTo:         s.RoutedTo,
		routedAt:         s.RoutedAt,
		routedBy:         s.RoutedBy,
		status:           s.Status,
		reviewedFrom:     s.ReviewedFrom,
		questionRaised:   s.QuestionRaised,
		questionNote:     s.QuestionNote,
		costs:            s.Costs,
		shippingMethod:   s.ShippingMethod,
		production:       s.Production,
		shipment:         s.Shipment,
		clientApprovedBy: s.ClientApprovedBy,
		clientApprovedAt: s.ClientApprovedAt,
		items:            s.Items,
		media:            s.Media,
	}
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) ProductRef() string {
	return p.productRef
}

func (p *Product) Sequence() int {
	return p.sequence
}

func (p *Product) Description() string {
	return p.description
}

func (p *Product) SampleNotes() string {
	return p.sampleNotes
}

func (p *Product) RoutedTo() Custodian {
	return p.routedTo
}

func (p *Product) RoutedAt() *time.Time {
	return p.routedAt
}

func (p *Product) RoutedBy() *kernel.UUID {
	return p.routedBy
}

func (p *Product) Status() ProductStatus {
	return p.status
}

// ReviewedFrom is the status a product returns to when an open client review
// is pulled back. UnknownProductStatus outside a review.
func (p *Product) ReviewedFrom() ProductStatus {
	return p.reviewedFrom
}

func (p *Product) QuestionRaised() bool {
	return p.questionRaised
}

func (p *Product) QuestionNote() string {
	return p.questionNote
}

func (p *Product) Costs() Costs {
	return p.costs
}

func (p *Product) ShippingMethod() ShippingMethod {
	return p.shippingMethod
}

func (p *Product) Production() Production {
	return p.production
}

func (p *Product) Shipment() Shipment {
	return p.shipment
}

func (p *Product) ClientApprovedBy() *kernel.UUID {
	return p.clientApprovedBy
}

func (p *Product) ClientApprovedAt() *time.Time {
	return p.clientApprovedAt
}

func (p *Product) Media() []*MediaAttachment {
	return append([]*MediaAttachment(nil), p.media...)
}

func (p *Product) Items() []*Item {
	return append([]*Item(nil), p.items...)
}

// Quantity is the sum of all item quantities.
func (p *Product) Quantity() int {
	total := 0
	for _, it := range p.items {
		total += it.quantity
	}
	return total
}

// HasSampleNotes reports whether the product asks for a sample.
func (p *Product) HasSampleNotes() bool {
	return strings.TrimSpace(p.sampleNotes) != ""
}

func (p *Product) findItem(id kernel.UUID) *Item {
	for _, it := range p.items {
		if it.id.IsEqual(id) {
			return it
		}
	}
	return nil
}

// apply overwrites the editable product fields and diffs the item collection:
// items carrying a known ID are updated in place, items without one are added,
// and items missing from spec are dropped.
func (p *Product) apply(spec ProductSpec) error {
	ref := strings.TrimSpace(spec.ProductRef)
	if ref == "" {
		return errs.NewValueIsRequiredError("product reference")
	}

	items := make([]*Item, 0, len(spec.Items))
	var errList []error
	for _, is := range spec.Items {
		if is.ID != nil {
			existing := p.findItem(*is.ID)
			if existing == nil {
				errList = append(errList, errs.NewObjectNotFoundError("item", is.ID.String()))
				continue
			}
			if err := existing.apply(is); err != nil {
				errList = append(errList, err)
				continue
			}
			items = append(items, existing)
			continue
		}
		it, err := NewItem(kernel.NewUUID(), is.Label, is.Quantity, is.Notes)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		items = append(items, it)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	p.productRef = ref
	p.description = spec.Description
	p.sampleNotes = spec.SampleNotes
	p.items = items
	return nil
}

func (p *Product) routeTo(target Custodian, by kernel.UUID, at time.Time) {
	p.routedTo = target
	p.routedAt = &at
	p.routedBy = &by
}

func (p *Product) requireCustodian(c Custodian) error {
	if p.routedTo != c {
		return errs.NewValueIsInvalidErrorWithCause(
			"routed_to", fmt.Errorf("product %s is routed to %s, not %s", p.id, p.routedTo, c))
	}
	return nil
}

func (p *Product) clone() *Product {
	c := *p
	c.items = make([]*Item, len(p.items))
	for i, it := range p.items {
		cp := *it
		c.items[i] = &cp
	}
	c.media = append([]*MediaAttachment(nil), p.media...)
	return &c
}
