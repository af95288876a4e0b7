package queries

import (
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

type ItemView struct {
	ID                 kernel.UUID
	Label              string
	Quantity           int
	Notes              string
	AdminStatus        string
	ManufacturerStatus string
}

type MediaView struct {
	ID        kernel.UUID
	URL       string
	FileName  string
	Kind      string
	CreatedAt time.Time
}

type ProductView struct {
	ID             kernel.UUID
	Sequence       int
	ProductRef     string
	Description    string
	SampleNotes    string
	RoutedTo       string
	RoutedAt       *time.Time
	Status         string
	QuestionRaised bool
	QuestionNote   string
	ShippingMethod string
	TrackingNumber string
	Carrier        string
	ProductionDays *int
	StartDate      *kernel.Date
	Totals         services.ProductTotals
	ETA            services.ETA
	Items          []ItemView
	Media          []MediaView
}

type SampleView struct {
	Required       bool
	Status         string
	RoutedTo       string
	Fee            *decimal.Decimal
	ETA            *kernel.Date
	TrackingNumber string
	Carrier        string
	Media          []MediaView
}

// OrderView is the order detail as one actor sees it. Prices carry the
// configured margin only when MarginApplied is set.
type OrderView struct {
	ID              kernel.UUID
	Number          string
	Name            string
	Status          string
	ClientID        *kernel.UUID
	ManufacturerID  *kernel.UUID
	CreatedBy       kernel.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int
	Sample          SampleView
	Products        []ProductView
	Routing         order.RoutingSummary
	RoutingLabel    string
	CompletionLabel string
	Total           decimal.Decimal
	MarginApplied   bool
}

// OrderSummary is a row of the order list.
type OrderSummary struct {
	ID              kernel.UUID
	Number          string
	Name            string
	Status          string
	ClientID        *kernel.UUID
	ManufacturerID  *kernel.UUID
	CreatedAt       time.Time
	ProductCount    int
	RoutingLabel    string
	CompletionLabel string
	Total           decimal.Decimal
	MarginApplied   bool
}

func mediaViews(media []*order.MediaAttachment) []MediaView {
	views := make([]MediaView, 0, len(media))
	for _, m := range media {
		views = append(views, MediaView{
			ID:        m.ID(),
			URL:       m.URL(),
			FileName:  m.FileName(),
			Kind:      m.Kind().String(),
			CreatedAt: m.CreatedAt(),
		})
	}
	return views
}

func productView(p *order.Product, totals services.ProductTotals, eta services.ETA) ProductView {
	items := make([]ItemView, 0, len(p.Items()))
	for _, i := range p.Items() {
		items = append(items, ItemView{
			ID:                 i.ID(),
			Label:              i.Label(),
			Quantity:           i.Quantity(),
			Notes:              i.Notes(),
			AdminStatus:        i.AdminStatus().String(),
			ManufacturerStatus: i.ManufacturerStatus().String(),
		})
	}
	return ProductView{
		ID:             p.ID(),
		Sequence:       p.Sequence(),
		ProductRef:     p.ProductRef(),
		Description:    p.Description(),
		SampleNotes:    p.SampleNotes(),
		RoutedTo:       p.RoutedTo().String(),
		RoutedAt:       p.RoutedAt(),
		Status:         p.Status().String(),
		QuestionRaised: p.QuestionRaised(),
		QuestionNote:   p.QuestionNote(),
		ShippingMethod: p.ShippingMethod().String(),
		TrackingNumber: p.Shipment().TrackingNumber,
		Carrier:        p.Shipment().Carrier,
		ProductionDays: p.Production().Days,
		StartDate:      p.Production().StartDate,
		Totals:         totals,
		ETA:            eta,
		Items:          items,
		Media:          mediaViews(p.Media()),
	}
}
