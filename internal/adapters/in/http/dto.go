package http

import (
	"time"

	"mfgorders/internal/core/application/usecases/commands"
	"mfgorders/internal/core/application/usecases/queries"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
	"mfgorders/internal/core/ports"
	"mfgorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	ClientID       string `json:"client_id" validate:"omitempty,uuid"`
	ManufacturerID string `json:"manufacturer_id" validate:"omitempty,uuid"`
}

type ItemRequest struct {
	ID       string `json:"id" validate:"omitempty,uuid"`
	Label    string `json:"label" validate:"max=255"`
	Quantity int    `json:"quantity" validate:"gte=0"`
	Notes    string `json:"notes"`
}

type ProductRequest struct {
	ID          string        `json:"id" validate:"omitempty,uuid"`
	ProductRef  string        `json:"product_ref" validate:"max=128"`
	Description string        `json:"description"`
	SampleNotes string        `json:"sample_notes"`
	Items       []ItemRequest `json:"items" validate:"dive"`
}

type SaveDraftRequest struct {
	Version        int              `json:"version" validate:"gte=0"`
	Name           string           `json:"name" validate:"required,max=255"`
	ClientID       string           `json:"client_id" validate:"omitempty,uuid"`
	ManufacturerID string           `json:"manufacturer_id" validate:"omitempty,uuid"`
	Products       []ProductRequest `json:"products" validate:"dive"`
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

type RouteRequest struct {
	To string `json:"to" validate:"required,oneof=admin manufacturer client"`
}

type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
}

type ItemDecisionRequest struct {
	Field    string `json:"field" validate:"required,oneof=admin_status manufacturer_status"`
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
}

type QuoteRequest struct {
	UnitPrice           decimal.Decimal `json:"unit_price"`
	SampleFee           decimal.Decimal `json:"sample_fee"`
	AirPrice            decimal.Decimal `json:"air_price"`
	BoatPrice           decimal.Decimal `json:"boat_price"`
	ProductionDays      *int            `json:"production_days" validate:"omitempty,gte=0"`
	ProductionStartDate string          `json:"production_start_date" validate:"omitempty,datetime=2006-01-02"`
}

type ShipmentRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"max=128"`
	Carrier        string `json:"carrier" validate:"max=128"`
	ShippedDate    string `json:"shipped_date" validate:"omitempty,datetime=2006-01-02"`
}

type AdvanceRequest struct {
	ShipmentRequest
	Status string `json:"status" validate:"required,oneof=in_production completed shipped"`
}

type SampleUpdateRequest struct {
	ShipmentRequest
	Fee *decimal.Decimal `json:"fee"`
	ETA string           `json:"eta" validate:"omitempty,datetime=2006-01-02"`
}

type QuestionRequest struct {
	Note string `json:"note" validate:"required"`
}

type ShippingMethodRequest struct {
	Method string `json:"method" validate:"omitempty,oneof=air boat"`
}

func optionalUUID(name, s string) (*kernel.UUID, error) {
	id, err := kernel.OptionalUUIDFromString(s)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func optionalDate(name, s string) (*kernel.Date, error) {
	d, err := kernel.ParseOptionalDate(s)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return d, nil
}

func (r ProductRequest) toSpec() (order.ProductSpec, error) {
	id, err := optionalUUID("product id", r.ID)
	if err != nil {
		return order.ProductSpec{}, err
	}
	spec := order.ProductSpec{
		ID:          id,
		ProductRef:  r.ProductRef,
		Description: r.Description,
		SampleNotes: r.SampleNotes,
		Items:       make([]order.ItemSpec, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		itemID, itemErr := optionalUUID("item id", item.ID)
		if itemErr != nil {
			return order.ProductSpec{}, itemErr
		}
		spec.Items = append(spec.Items, order.ItemSpec{
			ID:       itemID,
			Label:    item.Label,
			Quantity: item.Quantity,
			Notes:    item.Notes,
		})
	}
	return spec, nil
}

func (r ShipmentRequest) toShipment() (order.Shipment, error) {
	shipped, err := optionalDate("shipped date", r.ShippedDate)
	if err != nil {
		return order.Shipment{}, err
	}
	return order.Shipment{TrackingNumber: r.TrackingNumber, Carrier: r.Carrier, ShippedDate: shipped}, nil
}

func (r QuoteRequest) toQuote() (order.Quote, error) {
	start, err := optionalDate("production start date", r.ProductionStartDate)
	if err != nil {
		return order.Quote{}, err
	}
	return order.Quote{
		Costs: order.Costs{
			UnitPrice: r.UnitPrice,
			SampleFee: r.SampleFee,
			AirPrice:  r.AirPrice,
			BoatPrice: r.BoatPrice,
		},
		Production: order.Production{StartDate: start, Days: r.ProductionDays},
	}, nil
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type VersionResponse struct {
	Version int `json:"version"`
}

type ItemResponse struct {
	ID                 string `json:"id"`
	Label              string `json:"label"`
	Quantity           int    `json:"quantity"`
	Notes              string `json:"notes,omitempty"`
	AdminStatus        string `json:"admin_status"`
	ManufacturerStatus string `json:"manufacturer_status"`
}

type MediaResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	FileName  string    `json:"file_name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type ETAResponse struct {
	ETA                 *string `json:"eta"`
	IsEstimate          bool    `json:"is_estimate"`
	ShippingMethodUnset bool    `json:"shipping_method_unset"`
}

type ProductTotalsResponse struct {
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	SampleFee     decimal.Decimal `json:"sample_fee"`
	ShippingPrice decimal.Decimal `json:"shipping_price"`
	Total         decimal.Decimal `json:"total"`
}

type TotalsResponse struct {
	Products      []ProductTotalsResponse `json:"products"`
	Total         decimal.Decimal         `json:"total"`
	MarginApplied bool                    `json:"margin_applied"`
}

type ProductResponse struct {
	ID             string                `json:"id"`
	Sequence       int                   `json:"sequence"`
	ProductRef     string                `json:"product_ref"`
	Description    string                `json:"description,omitempty"`
	SampleNotes    string                `json:"sample_notes,omitempty"`
	RoutedTo       string                `json:"routed_to"`
	RoutedAt       *time.Time            `json:"routed_at,omitempty"`
	Status         string                `json:"status"`
	QuestionRaised bool                  `json:"question_for_admin"`
	QuestionNote   string                `json:"question_note,omitempty"`
	ShippingMethod string                `json:"shipping_method"`
	TrackingNumber string                `json:"tracking_number,omitempty"`
	Carrier        string                `json:"carrier,omitempty"`
	ProductionDays *int                  `json:"production_days,omitempty"`
	StartDate      *string               `json:"production_start_date,omitempty"`
	Totals         ProductTotalsResponse `json:"totals"`
	ETA            ETAResponse           `json:"eta"`
	Items          []ItemResponse        `json:"items"`
	Media          []MediaResponse       `json:"media"`
}

type SampleResponse struct {
	Required       bool             `json:"required"`
	Status         string           `json:"status"`
	RoutedTo       string           `json:"routed_to"`
	Fee            *decimal.Decimal `json:"fee,omitempty"`
	ETA            *string          `json:"eta,omitempty"`
	TrackingNumber string           `json:"tracking_number,omitempty"`
	Carrier        string           `json:"carrier,omitempty"`
	Media          []MediaResponse  `json:"media"`
}

type RoutingResponse struct {
	Staff           int    `json:"staff"`
	Manufacturer    int    `json:"manufacturer"`
	Client          int    `json:"client"`
	Label           string `json:"label"`
	CompletionLabel string `json:"completion_label,omitempty"`
}

type OrderResponse struct {
	ID             string            `json:"id"`
	Number         string            `json:"number"`
	Name           string            `json:"name"`
	Status         string            `json:"status"`
	ClientID       *string           `json:"client_id"`
	ManufacturerID *string           `json:"manufacturer_id"`
	CreatedBy      string            `json:"created_by"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Version        int               `json:"version"`
	Sample         SampleResponse    `json:"sample"`
	Products       []ProductResponse `json:"products"`
	Routing        RoutingResponse   `json:"routing"`
	Total          decimal.Decimal   `json:"total"`
	MarginApplied  bool              `json:"margin_applied"`
}

type OrderSummaryResponse struct {
	ID              string          `json:"id"`
	Number          string          `json:"number"`
	Name            string          `json:"name"`
	Status          string          `json:"status"`
	ClientID        *string         `json:"client_id"`
	ManufacturerID  *string         `json:"manufacturer_id"`
	CreatedAt       time.Time       `json:"created_at"`
	ProductCount    int             `json:"product_count"`
	RoutingLabel    string          `json:"routing_label"`
	CompletionLabel string          `json:"completion_label,omitempty"`
	Total           decimal.Decimal `json:"total"`
	MarginApplied   bool            `json:"margin_applied"`
}

type AuditEntryResponse struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	CreatedAt  time.Time `json:"created_at"`
}

type UploadResultResponse struct {
	FileName string `json:"file_name"`
	MediaID  string `json:"media_id,omitempty"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

type DeleteReportResponse struct {
	OrderID string             `json:"order_id"`
	Steps   []ports.DeleteStep `json:"steps"`
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func dateString(d *kernel.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func etaResponse(eta services.ETA) ETAResponse {
	return ETAResponse{
		ETA:                 dateString(eta.Date),
		IsEstimate:          eta.IsEstimate,
		ShippingMethodUnset: eta.ShippingMethodUnset,
	}
}

func productTotalsResponse(t services.ProductTotals) ProductTotalsResponse {
	return ProductTotalsResponse{
		ProductID:     t.ProductID.String(),
		Quantity:      t.Quantity,
		UnitPrice:     t.UnitPrice,
		SampleFee:     t.SampleFee,
		ShippingPrice: t.ShippingPrice,
		Total:         t.Total,
	}
}

func totalsResponse(t services.OrderTotals) TotalsResponse {
	products := make([]ProductTotalsResponse, 0, len(t.Products))
	for _, p := range t.Products {
		products = append(products, productTotalsResponse(p))
	}
	return TotalsResponse{Products: products, Total: t.Total, MarginApplied: t.MarginApplied}
}

func mediaResponses(views []queries.MediaView) []MediaResponse {
	out := make([]MediaResponse, 0, len(views))
	for _, m := range views {
		out = append(out, MediaResponse{
			ID:        m.ID.String(),
			URL:       m.URL,
			FileName:  m.FileName,
			Kind:      m.Kind,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}

func productResponse(p queries.ProductView) ProductResponse {
	items := make([]ItemResponse, 0, len(p.Items))
	for _, i := range p.Items {
		items = append(items, ItemResponse{
			ID:                 i.ID.String(),
			Label:              i.Label,
			Quantity:           i.Quantity,
			Notes:              i.Notes,
			AdminStatus:        i.AdminStatus,
			ManufacturerStatus: i.ManufacturerStatus,
		})
	}
	return ProductResponse{
		ID:             p.ID.String(),
		Sequence:       p.Sequence,
		ProductRef:     p.ProductRef,
		Description:    p.Description,
		SampleNotes:    p.SampleNotes,
		RoutedTo:       p.RoutedTo,
		RoutedAt:       p.RoutedAt,
		Status:         p.Status,
		QuestionRaised: p.QuestionRaised,
		QuestionNote:   p.QuestionNote,
		ShippingMethod: p.ShippingMethod,
		TrackingNumber: p.TrackingNumber,
		Carrier:        p.Carrier,
		ProductionDays: p.ProductionDays,
		StartDate:      dateString(p.StartDate),
		Totals:         productTotalsResponse(p.Totals),
		ETA:            etaResponse(p.ETA),
		Items:          items,
		Media:          mediaResponses(p.Media),
	}
}

func orderResponse(v queries.OrderView) OrderResponse {
	products := make([]ProductResponse, 0, len(v.Products))
	for _, p := range v.Products {
		products = append(products, productResponse(p))
	}
	return OrderResponse{
		ID:             v.ID.String(),
		Number:         v.Number,
		Name:           v.Name,
		Status:         v.Status,
		ClientID:       uuidString(v.ClientID),
		ManufacturerID: uuidString(v.ManufacturerID),
		CreatedBy:      v.CreatedBy.String(),
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		Version:        v.Version,
		Sample: SampleResponse{
			Required:       v.Sample.Required,
			Status:         v.Sample.Status,
			RoutedTo:       v.Sample.RoutedTo,
			Fee:            v.Sample.Fee,
			ETA:            dateString(v.Sample.ETA),
			TrackingNumber: v.Sample.TrackingNumber,
			Carrier:        v.Sample.Carrier,
			Media:          mediaResponses(v.Sample.Media),
		},
		Products: products,
		Routing: RoutingResponse{
			Staff:           v.Routing.Staff,
			Manufacturer:    v.Routing.Manufacturer,
			Client:          v.Routing.Client,
			Label:           v.RoutingLabel,
			CompletionLabel: v.CompletionLabel,
		},
		Total:         v.Total,
		MarginApplied: v.MarginApplied,
	}
}

func orderSummaryResponse(s queries.OrderSummary) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:              s.ID.String(),
		Number:          s.Number,
		Name:            s.Name,
		Status:          s.Status,
		ClientID:        uuidString(s.ClientID),
		ManufacturerID:  uuidString(s.ManufacturerID),
		CreatedAt:       s.CreatedAt,
		ProductCount:    s.ProductCount,
		RoutingLabel:    s.RoutingLabel,
		CompletionLabel: s.CompletionLabel,
		Total:           s.Total,
		MarginApplied:   s.MarginApplied,
	}
}

func auditEntryResponse(e queries.AuditEntryView) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         e.ID.String(),
		ActorID:    e.ActorID.String(),
		ActorRole:  e.ActorRole,
		Action:     e.Action,
		TargetType: e.TargetType,
		TargetID:   e.TargetID.String(),
		OldValue:   e.OldValue,
		NewValue:   e.NewValue,
		CreatedAt:  e.CreatedAt,
	}
}

func uploadResultResponses(results []commands.UploadResult) []UploadResultResponse {
	out := make([]UploadResultResponse, 0, len(results))
	for _, r := range results {
		resp := UploadResultResponse{FileName: r.FileName, URL: r.URL}
		if r.MediaID != nil {
			resp.MediaID = r.MediaID.String()
		}
		if r.Err != nil {
			resp.Error = r.Err.Error()
		}
		out = append(out, resp)
	}
	return out
}
