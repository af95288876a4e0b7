package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewDraft, NewClientRequest or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewDraft or NewClientRequest constructor")
)

// State is the full persisted shape of an order, used to restore it.
type State struct {
	ID             kernel.UUID
	Number         string
	Name           string
	Status         Status
	ClientID       *kernel.UUID
	ManufacturerID *kernel.UUID
	CreatedBy      kernel.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int
	Sample         Sample
	Products       []*Product
	SampleMedia    []*MediaAttachment
}

// Order is the aggregate root of a custom-manufacturing order. It owns its
// products (and through them items and reference media), the order-level
// sample and the sample media.
//
// Order follows these invariants:
//   - Status is always one of the six defined statuses
//   - Products, items, client and manufacturer change only while in Draft
//   - Routing, quoting and production happen only between submission and completion
//   - Item decisions and the sample approval are decided once
//
// Role checks are not made here; callers authorize the actor first and the
// aggregate validates the state change.
type Order struct {
	id             kernel.UUID
	number         string
	name           string
	status         Status
	clientID       *kernel.UUID
	manufacturerID *kernel.UUID
	createdBy      kernel.UUID
	createdAt      time.Time
	updatedAt      time.Time

	// version is the optimistic concurrency token as read from storage.
	version int

	sample      Sample
	products    []*Product
	sampleMedia []*MediaAttachment

	isConstructed bool
}

// NewNumber builds the human-readable order number MO-YYYYMMDD-XXXXXX.
func NewNumber(createdAt time.Time, id kernel.UUID) string {
	return fmt.Sprintf("MO-%s-%s", createdAt.UTC().Format("20060102"), id.Short())
}

// NewDraft creates an order in Draft. Client and manufacturer may be chosen later.
//
// Example:
//
//	o, err := order.NewDraft(kernel.NewUUID(), "Spring tote run", actor.ID(), &clientID, nil, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewDraft(
	id kernel.UUID,
	name string,
	createdBy kernel.UUID,
	clientID, manufacturerID *kernel.UUID,
	now time.Time,
) (*Order, error) {
	o, err := newOrder(id, name, createdBy, Draft, now)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(validateOptional(clientID), validateOptional(manufacturerID)); err != nil {
		return nil, err
	}
	o.clientID = copyID(clientID)
	o.manufacturerID = copyID(manufacturerID)
	return o, nil
}

// NewClientRequest creates an order proposed by a client. Staff turn it into a
// draft once products and pricing are configured.
func NewClientRequest(id kernel.UUID, name string, createdBy, clientID kernel.UUID, now time.Time) (*Order, error) {
	o, err := newOrder(id, name, createdBy, ClientRequest, now)
	if err != nil {
		return nil, err
	}
	if err = clientID.Validate(); err != nil {
		return nil, err
	}
	o.clientID = &clientID
	return o, nil
}

func newOrder(id kernel.UUID, name string, createdBy kernel.UUID, status Status, now time.Time) (*Order, error) {
	o := &Order{
		status:        status,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		version:       0,
		sample:        newSample(),
		isConstructed: true,
	}
	if err := errors.Join(
		o.setID(id),
		o.setName(name),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	o.createdBy = createdBy
	o.number = NewNumber(now, id)
	return o, nil
}

// RestoreOrder rehydrates an order from storage. Stored data is trusted.
func RestoreOrder(s State) *Order {
	return &Order{
		id:             s.ID,
		number:         s.Number,
		name:           s.Name,
		status:         s.Status,
		clientID:       s.ClientID,
		manufacturerID: s.ManufacturerID,
		createdBy:      s.CreatedBy,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		version:        s.Version,
		sample:         s.Sample,
		products:       s.Products,
		sampleMedia:    s.SampleMedia,
		isConstructed:  true,
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) Name() string {
	return o.name
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) ClientID() *kernel.UUID {
	return copyID(o.clientID)
}

func (o *Order) ManufacturerID() *kernel.UUID {
	return copyID(o.manufacturerID)
}

func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) Version() int {
	return o.version
}

func (o *Order) Sample() Sample {
	return o.sample
}

func (o *Order) Products() []*Product {
	return append([]*Product(nil), o.products...)
}

func (o *Order) SampleMedia() []*MediaAttachment {
	return append([]*MediaAttachment(nil), o.sampleMedia...)
}

// Product returns the product with the given id.
func (o *Order) Product(id kernel.UUID) (*Product, error) {
	if p := o.findProduct(id); p != nil {
		return p, nil
	}
	return nil, errs.NewObjectNotFoundError("product", id.String())
}

// FindItem returns an item and the product it belongs to.
func (o *Order) FindItem(id kernel.UUID) (*Product, *Item, error) {
	for _, p := range o.products {
		if it := p.findItem(id); it != nil {
			return p, it, nil
		}
	}
	return nil, nil, errs.NewObjectNotFoundError("item", id.String())
}

// HasSampleNotes reports whether any product asks for a sample.
func (o *Order) HasSampleNotes() bool {
	for _, p := range o.products {
		if p.HasSampleNotes() {
			return true
		}
	}
	return false
}

// HasProductRoutedTo reports whether at least one product is held by c.
func (o *Order) HasProductRoutedTo(c Custodian) bool {
	for _, p := range o.products {
		if p.routedTo == c {
			return true
		}
	}
	return false
}

// ReplaceContents applies a draft edit. Products and items carrying a known ID
// are updated in place, entries without an ID are added and everything not
// listed is removed. Sequence numbers follow the order of specs. On error the
// order is left unchanged.
func (o *Order) ReplaceContents(name string, clientID, manufacturerID *kernel.UUID, specs []ProductSpec) error {
	if err := o.requireDraft("editing products"); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(validateOptional(clientID), validateOptional(manufacturerID)); err != nil {
		return err
	}

	products := make([]*Product, 0, len(specs))
	var errList []error
	for idx, spec := range specs {
		if spec.ID == nil {
			p, err := newProduct(kernel.NewUUID(), idx+1, spec)
			if err != nil {
				errList = append(errList, err)
				continue
			}
			products = append(products, p)
			continue
		}
		existing := o.findProduct(*spec.ID)
		if existing == nil {
			errList = append(errList, errs.NewObjectNotFoundError("product", spec.ID.String()))
			continue
		}
		p := existing.clone()
		if err := p.apply(spec); err != nil {
			errList = append(errList, err)
			continue
		}
		p.sequence = idx + 1
		products = append(products, p)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.name = strings.TrimSpace(name)
	o.clientID = copyID(clientID)
	o.manufacturerID = copyID(manufacturerID)
	o.products = products
	return nil
}

// AddProduct appends a product to a draft.
func (o *Order) AddProduct(spec ProductSpec) (*Product, error) {
	if err := o.requireDraft("adding a product"); err != nil {
		return nil, err
	}
	p, err := newProduct(kernel.NewUUID(), len(o.products)+1, spec)
	if err != nil {
		return nil, err
	}
	o.products = append(o.products, p)
	return p, nil
}

// RemoveProduct drops a product from a draft and renumbers the rest.
func (o *Order) RemoveProduct(id kernel.UUID) error {
	if err := o.requireDraft("removing a product"); err != nil {
		return err
	}
	kept := make([]*Product, 0, len(o.products))
	found := false
	for _, p := range o.products {
		if p.id.IsEqual(id) {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return errs.NewObjectNotFoundError("product", id.String())
	}
	for i, p := range kept {
		p.sequence = i + 1
	}
	o.products = kept
	return nil
}

// UpdateItemQuantity changes the quantity of one item of a draft.
func (o *Order) UpdateItemQuantity(itemID kernel.UUID, quantity int) error {
	if err := o.requireDraft("editing item quantities"); err != nil {
		return err
	}
	_, it, err := o.FindItem(itemID)
	if err != nil {
		return err
	}
	return it.setQuantity(quantity)
}

// ValidateForSubmission checks that a draft is complete enough to be sent out.
func (o *Order) ValidateForSubmission() error {
	var errList []error
	if o.clientID == nil {
		errList = append(errList, errs.NewValueIsRequiredError("client"))
	}
	if o.manufacturerID == nil {
		errList = append(errList, errs.NewValueIsRequiredError("manufacturer"))
	}
	if len(o.products) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("at least one product"))
	}
	for _, p := range o.products {
		if strings.TrimSpace(p.productRef) == "" {
			errList = append(errList, errs.NewValueIsRequiredError(fmt.Sprintf("product reference of line %d", p.sequence)))
		}
		if len(p.items) == 0 {
			errList = append(errList, errs.NewValueIsRequiredError(fmt.Sprintf("at least one item on line %d", p.sequence)))
		}
	}
	return errors.Join(errList...)
}

// TransitionTo moves the order one step forward and applies the side effects
// of the step. It returns the previous status.
//
// Gates:
//   - Draft goes to SubmittedForSample when any product carries sample notes,
//     otherwise to SubmittedToManufacturer; every product is routed to the
//     manufacturer
//   - SubmittedForSample needs the sample approved
//   - SubmittedToManufacturer needs at least one product in production or later
//   - InProgress needs every product completed, shipped or client approved
func (o *Order) TransitionTo(target Status, by kernel.UUID, now time.Time) (Status, error) {
	prev := o.status
	next, err := o.status.Next(target)
	if err != nil {
		return prev, err
	}

	switch o.status {
	case Draft:
		if err = o.ValidateForSubmission(); err != nil {
			return prev, err
		}
		if expected := SubmissionTarget(o.HasSampleNotes()); next != expected {
			return prev, errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("this order must be submitted as %s", expected),
			)
		}
		for _, p := range o.products {
			p.routeTo(CustodianManufacturer, by, now)
		}
		if next == SubmittedForSample {
			o.sample = Sample{Required: true, Status: DecisionPending, RoutedTo: CustodianManufacturer}
		}
	case SubmittedForSample:
		if !o.sample.IsApproved() {
			return prev, errs.NewValueIsInvalidErrorWithCause(
				"status is invalid", fmt.Errorf("sample is %s, not approved", o.sample.Status))
		}
	case SubmittedToManufacturer:
		started := false
		for _, p := range o.products {
			started = started || p.status.HasStarted()
		}
		if !started {
			return prev, errs.NewValueIsInvalidErrorWithCause(
				"status is invalid", errors.New("no product is in production yet"))
		}
	case InProgress:
		for _, p := range o.products {
			if !p.status.IsFinished() {
				return prev, errs.NewValueIsInvalidErrorWithCause(
					"status is invalid", fmt.Errorf("product %d is still %s", p.sequence, p.status))
			}
		}
	case Unknown, ClientRequest, Completed:
	}

	o.status = next
	return prev, nil
}

// RouteProduct hands a product to another custodian and returns the previous
// one. Routing to the client opens a client review, which needs finished work
// (completed or shipped). Pulling a product back from an unanswered review
// restores the status it had before.
func (o *Order) RouteProduct(productID kernel.UUID, target Custodian, by kernel.UUID, now time.Time) (Custodian, error) {
	if err := o.requireSubmitted("routing"); err != nil {
		return UnknownCustodian, err
	}
	if err := target.Validate(); err != nil {
		return UnknownCustodian, err
	}
	p, err := o.Product(productID)
	if err != nil {
		return UnknownCustodian, err
	}
	prev := p.routedTo
	if prev == target {
		return prev, errs.NewConflictError("routed_to", target)
	}

	switch target {
	case CustodianClient:
		if o.clientID == nil {
			return prev, errs.NewValueIsRequiredError("client")
		}
		if p.status == ProductClientApproved {
			return prev, errs.NewConflictError("product status", p.status)
		}
		if p.status != ProductCompleted && p.status != ProductShipped {
			return prev, errs.NewValueIsInvalidErrorWithCause(
				"product status is invalid", fmt.Errorf("%s is not ready for client review", p.status))
		}
		p.reviewedFrom = p.status
		p.status = ProductPendingClientApproval
	case CustodianStaff, CustodianManufacturer:
		if p.status == ProductPendingClientApproval {
			p.status = p.reviewedFrom
			if p.status == UnknownProductStatus {
				p.status = ProductCompleted
			}
			p.reviewedFrom = UnknownProductStatus
		}
	case UnknownCustodian:
	}
	p.routeTo(target, by, now)
	return prev, nil
}

// ApproveProduct records the client's approval and routes the product back to staff.
func (o *Order) ApproveProduct(productID kernel.UUID, by kernel.UUID, now time.Time) error {
	if err := o.requireSubmitted("approving a product"); err != nil {
		return err
	}
	p, err := o.Product(productID)
	if err != nil {
		return err
	}
	if p.status == ProductClientApproved {
		return errs.NewConflictError("product status", p.status)
	}
	if err = p.requireCustodian(CustodianClient); err != nil {
		return err
	}
	if p.status != ProductPendingClientApproval {
		return errs.NewValueIsInvalidErrorWithCause(
			"product status is invalid", fmt.Errorf("%s is not awaiting client approval", p.status))
	}
	p.status = ProductClientApproved
	p.reviewedFrom = UnknownProductStatus
	p.clientApprovedBy = &by
	p.clientApprovedAt = &now
	p.routeTo(CustodianStaff, by, now)
	return nil
}

// DecideItem sets one approval field of an item and returns the old value.
// A field that was already decided yields a ConflictError.
func (o *Order) DecideItem(itemID kernel.UUID, field ApprovalField, verdict Decision) (*Product, Decision, error) {
	if err := o.requireSubmitted("deciding an item"); err != nil {
		return nil, UnknownDecision, err
	}
	p, it, err := o.FindItem(itemID)
	if err != nil {
		return nil, UnknownDecision, err
	}
	old, err := it.decide(field, verdict)
	if err != nil {
		return p, old, err
	}
	return p, old, nil
}

// UpdateQuote stores the manufacturer's costs and schedule for a product it holds.
func (o *Order) UpdateQuote(productID kernel.UUID, q Quote) error {
	if err := o.requireSubmitted("quoting"); err != nil {
		return err
	}
	p, err := o.Product(productID)
	if err != nil {
		return err
	}
	if err = p.requireCustodian(CustodianManufacturer); err != nil {
		return err
	}
	if err = q.Costs.validate(); err != nil {
		return err
	}
	if q.Production.Days != nil && *q.Production.Days < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"production days", fmt.Errorf("%d is less than 0", *q.Production.Days))
	}
	p.costs = q.Costs
	p.production = q.Production
	return nil
}

// AdvanceProduct moves a product through pending, in_production, completed and
// shipped. Starting production defaults the start date to today; shipping
// needs a tracking number and a carrier and defaults the shipped date to today.
func (o *Order) AdvanceProduct(productID kernel.UUID, target ProductStatus, shipment Shipment, today kernel.Date) error {
	if o.status != SubmittedToManufacturer && o.status != InProgress {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("production is not open while the order is %s", o.status))
	}
	p, err := o.Product(productID)
	if err != nil {
		return err
	}
	if err = p.requireCustodian(CustodianManufacturer); err != nil {
		return err
	}
	next, err := p.status.Advance(target)
	if err != nil {
		return err
	}

	switch next {
	case ProductInProduction:
		if p.production.StartDate == nil {
			start := today
			p.production.StartDate = &start
		}
	case ProductShipped:
		var errList []error
		if strings.TrimSpace(shipment.TrackingNumber) == "" {
			errList = append(errList, errs.NewValueIsRequiredError("tracking number"))
		}
		if strings.TrimSpace(shipment.Carrier) == "" {
			errList = append(errList, errs.NewValueIsRequiredError("carrier"))
		}
		if err = errors.Join(errList...); err != nil {
			return err
		}
		if shipment.ShippedDate == nil {
			d := today
			shipment.ShippedDate = &d
		}
		p.shipment = shipment
	case UnknownProductStatus, ProductPending, ProductCompleted, ProductPendingClientApproval, ProductClientApproved:
	}
	p.status = next
	return nil
}

// RaiseQuestion sets the question overlay on a product held by the manufacturer.
// Routing does not change.
func (o *Order) RaiseQuestion(productID kernel.UUID, note string) error {
	if err := o.requireSubmitted("raising a question"); err != nil {
		return err
	}
	p, err := o.Product(productID)
	if err != nil {
		return err
	}
	if err = p.requireCustodian(CustodianManufacturer); err != nil {
		return err
	}
	if p.questionRaised {
		return errs.NewConflictError("question", "raised")
	}
	if strings.TrimSpace(note) == "" {
		return errs.NewValueIsRequiredError("question note")
	}
	p.questionRaised = true
	p.questionNote = strings.TrimSpace(note)
	return nil
}

// ResolveQuestion clears the question overlay.
func (o *Order) ResolveQuestion(productID kernel.UUID) error {
	p, err := o.Product(productID)
	if err != nil {
		return err
	}
	if !p.questionRaised {
		return errs.NewValueIsInvalidErrorWithCause("question", errors.New("no open question"))
	}
	p.questionRaised = false
	p.questionNote = ""
	return nil
}

// SelectShippingMethod chooses air, boat or unset for a product not yet shipped.
func (o *Order) SelectShippingMethod(productID kernel.UUID, method ShippingMethod) error {
	if o.status == Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", errors.New("order is completed"))
	}
	if err := method.Validate(); err != nil {
		return err
	}
	p, err := o.Product(productID)
	if err != nil {
		return err
	}
	if p.status == ProductShipped {
		return errs.NewConflictError("product status", p.status)
	}
	p.shippingMethod = method
	return nil
}

// RouteSample hands the sample to another custodian and returns the previous
// one. Sending a rejected sample back to the manufacturer starts a new round.
func (o *Order) RouteSample(target Custodian, now time.Time) (Custodian, error) {
	if err := o.requireSample("routing the sample"); err != nil {
		return UnknownCustodian, err
	}
	if err := target.Validate(); err != nil {
		return UnknownCustodian, err
	}
	prev := o.sample.RoutedTo
	if prev == target {
		return prev, errs.NewConflictError("sample routed_to", target)
	}
	if o.sample.Status == DecisionApproved {
		return prev, errs.NewConflictError("sample status", o.sample.Status)
	}

	switch target {
	case CustodianClient:
		if o.sample.Status != DecisionPending {
			return prev, errs.NewValueIsInvalidErrorWithCause(
				"sample status", fmt.Errorf("a %s sample must go back to the manufacturer first", o.sample.Status))
		}
	case CustodianManufacturer:
		if o.sample.Status == DecisionRejected {
			o.sample.Status = DecisionPending
			o.sample.DecidedBy = nil
			o.sample.DecidedAt = nil
		}
	case CustodianStaff, UnknownCustodian:
	}
	o.sample.RoutedTo = target
	o.updatedAt = now.UTC()
	return prev, nil
}

// UpdateSample stores the manufacturer's sample fee, ETA and shipment.
func (o *Order) UpdateSample(u SampleUpdate) error {
	if err := o.requireSample("updating the sample"); err != nil {
		return err
	}
	if err := o.sample.requireCustodian(CustodianManufacturer); err != nil {
		return err
	}
	if o.sample.Status == DecisionApproved {
		return errs.NewConflictError("sample status", o.sample.Status)
	}
	if u.Fee != nil && u.Fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("sample fee", fmt.Errorf("%s is negative", u.Fee))
	}
	o.sample.Fee = u.Fee
	o.sample.ETA = u.ETA
	o.sample.Shipment = u.Shipment
	return nil
}

// DecideSample records the client's verdict and routes the sample back to
// staff. An approved sample stays approved.
func (o *Order) DecideSample(verdict Decision, by kernel.UUID, now time.Time) (Decision, error) {
	if err := o.requireSample("deciding the sample"); err != nil {
		return UnknownDecision, err
	}
	old := o.sample.Status
	if old != DecisionPending {
		return old, errs.NewConflictError("sample status", old)
	}
	if err := o.sample.requireCustodian(CustodianClient); err != nil {
		return old, err
	}
	next, err := old.Decide(verdict)
	if err != nil {
		return old, err
	}
	o.sample.Status = next
	o.sample.DecidedBy = &by
	o.sample.DecidedAt = &now
	o.sample.RoutedTo = CustodianStaff
	return old, nil
}

// AttachMedia adds an uploaded file to its product, or to the sample when the
// attachment is sample scoped.
func (o *Order) AttachMedia(m *MediaAttachment) error {
	if m == nil {
		return errs.NewValueIsRequiredError("media")
	}
	if m.SampleScoped() {
		if err := o.requireSample("attaching sample media"); err != nil {
			return err
		}
		o.sampleMedia = append(o.sampleMedia, m)
		return nil
	}
	p, err := o.Product(*m.productID)
	if err != nil {
		return err
	}
	p.media = append(p.media, m)
	return nil
}

// RoutingSummary counts products per custodian.
func (o *Order) RoutingSummary() RoutingSummary {
	s := RoutingSummary{AllCompleted: len(o.products) > 0}
	for _, p := range o.products {
		switch p.routedTo {
		case CustodianStaff:
			s.Staff++
		case CustodianManufacturer:
			s.Manufacturer++
		case CustodianClient:
			s.Client++
		case UnknownCustodian:
		}
		if p.status != ProductCompleted {
			s.AllCompleted = false
		}
	}
	return s
}

func (o *Order) requireDraft(action string) error {
	if !o.status.IsDraft() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%s is only allowed in draft, order is %s", action, o.status))
	}
	return nil
}

func (o *Order) requireSubmitted(action string) error {
	if !o.status.IsSubmitted() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%s is not allowed while the order is %s", action, o.status))
	}
	return nil
}

func (o *Order) requireSample(action string) error {
	if err := o.requireSubmitted(action); err != nil {
		return err
	}
	if !o.sample.Required {
		return errs.NewValueIsInvalidErrorWithCause("sample", errors.New("this order has no sample"))
	}
	return nil
}

func (o *Order) findProduct(id kernel.UUID) *Product {
	for _, p := range o.products {
		if p.id.IsEqual(id) {
			return p
		}
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	o.name = name
	return nil
}

func validateOptional(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	return id.Validate()
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
