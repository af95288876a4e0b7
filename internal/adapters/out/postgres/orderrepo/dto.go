// Package orderrepo persists order aggregates: the orders row with the embedded
// sample columns, order_products, order_items and order_media. Enum values are
// stored as their string form.
package orderrepo

import (
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Products and media are loaded through their
// foreign keys.
type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number         string     `gorm:"size:32;uniqueIndex"`
	Name           string     `gorm:"size:255"`
	Status         string     `gorm:"size:32;index"`
	ClientID       *uuid.UUID `gorm:"type:uuid;index"`
	ManufacturerID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy      uuid.UUID  `gorm:"type:uuid;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
	Version        int       `gorm:"not null;default:0"`
	Sample         SampleDTO `gorm:"embedded;embeddedPrefix:sample_"`

	Products []ProductDTO `gorm:"foreignKey:OrderID"`
	Media    []MediaDTO   `gorm:"foreignKey:OrderID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// SampleDTO holds the order-level sample columns.
type SampleDTO struct {
	Required       bool
	Status         string           `gorm:"size:16"`
	RoutedTo       string           `gorm:"size:16"`
	Fee            *decimal.Decimal `gorm:"type:numeric(12,2)"`
	ETA            *time.Time       `gorm:"type:date"`
	TrackingNumber string           `gorm:"size:128"`
	Carrier        string           `gorm:"size:128"`
	ShippedDate    *time.Time       `gorm:"type:date"`
	DecidedBy      *uuid.UUID       `gorm:"type:uuid"`
	DecidedAt      *time.Time
}

// ProductDTO is the order_products row.
type ProductDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;index;not null"`
	Sequence         int
	ProductRef       string     `gorm:"size:128"`
	Description      string     `gorm:"type:text"`
	SampleNotes      string     `gorm:"type:text"`
	RoutedTo         string     `gorm:"size:16;index"`
	RoutedAt         *time.Time
	RoutedBy         *uuid.UUID `gorm:"type:uuid"`
	Status           string     `gorm:"size:32"`
	ReviewedFrom     string     `gorm:"size:32"`
	QuestionRaised   bool
	QuestionNote     string          `gorm:"type:text"`
	UnitPrice        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	SampleFee        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	AirPrice         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	BoatPrice        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	ShippingMethod   string          `gorm:"size:8"`
	ProductionStart  *time.Time      `gorm:"type:date"`
	ProductionDays   *int
	TrackingNumber   string     `gorm:"size:128"`
	Carrier          string     `gorm:"size:128"`
	ShippedDate      *time.Time `gorm:"type:date"`
	ClientApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ClientApprovedAt *time.Time

	Items []ItemDTO `gorm:"foreignKey:ProductID"`
}

func (ProductDTO) TableName() string {
	return "order_products"
}

// ItemDTO is the order_items row. Position keeps the entry order of a product's items.
type ItemDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID          uuid.UUID `gorm:"type:uuid;index;not null"`
	Position           int
	Label              string `gorm:"size:255"`
	Quantity           int
	Notes              string `gorm:"type:text"`
	AdminStatus        string `gorm:"size:16"`
	ManufacturerStatus string `gorm:"size:16"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// MediaDTO is the order_media row. A nil ProductID marks sample media.
type MediaDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProductID  *uuid.UUID `gorm:"type:uuid;index"`
	URL        string     `gorm:"type:text"`
	FileName   string     `gorm:"size:255"`
	Kind       string     `gorm:"size:16"`
	UploadedBy uuid.UUID  `gorm:"type:uuid"`
	CreatedAt  time.Time
}

func (MediaDTO) TableName() string {
	return "order_media"
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalDate(d *kernel.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}

func optionalTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// fromDomain flattens the aggregate into its rows.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	s := o.Sample()

	dto := OrderDTO{
		ID:             orderID,
		Number:         o.Number(),
		Name:           o.Name(),
		Status:         o.Status().String(),
		ClientID:       optionalID(o.ClientID()),
		ManufacturerID: optionalID(o.ManufacturerID()),
		CreatedBy:      o.CreatedBy().Bytes(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
		Version:        o.Version(),
		Sample: SampleDTO{
			Required:       s.Required,
			Status:         s.Status.String(),
			RoutedTo:       s.RoutedTo.String(),
			Fee:            s.Fee,
			ETA:            optionalDate(s.ETA),
			TrackingNumber: s.Shipment.TrackingNumber,
			Carrier:        s.Shipment.Carrier,
			ShippedDate:    optionalDate(s.Shipment.ShippedDate),
			DecidedBy:      optionalID(s.DecidedBy),
			DecidedAt:      optionalTime(s.DecidedAt),
		},
	}

	for _, m := range o.SampleMedia() {
		dto.Media = append(dto.Media, mediaFromDomain(orderID, m))
	}
	for _, p := range o.Products() {
		dto.Products = append(dto.Products, productFromDomain(orderID, p))
		for _, m := range p.Media() {
			dto.Media = append(dto.Media, mediaFromDomain(orderID, m))
		}
	}
	return dto
}

func productFromDomain(orderID uuid.UUID, p *order.Product) ProductDTO {
	costs, production, shipment := p.Costs(), p.Production(), p.Shipment()
	dto := ProductDTO{
		ID:               p.ID().Bytes(),
		OrderID:          orderID,
		Sequence:         p.Sequence(),
		ProductRef:       p.ProductRef(),
		Description:      p.Description(),
		SampleNotes:      p.SampleNotes(),
		RoutedTo:         p.RoutedTo().String(),
		RoutedAt:         optionalTime(p.RoutedAt()),
		RoutedBy:         optionalID(p.RoutedBy()),
		Status:           p.Status().String(),
		ReviewedFrom:     reviewedFrom(p),
		QuestionRaised:   p.QuestionRaised(),
		QuestionNote:     p.QuestionNote(),
		UnitPrice:        costs.UnitPrice,
		SampleFee:        costs.SampleFee,
		AirPrice:         costs.AirPrice,
		BoatPrice:        costs.BoatPrice,
		ShippingMethod:   p.ShippingMethod().String(),
		ProductionStart:  optionalDate(production.StartDate),
		ProductionDays:   production.Days,
		TrackingNumber:   shipment.TrackingNumber,
		Carrier:          shipment.Carrier,
		ShippedDate:      optionalDate(shipment.ShippedDate),
		ClientApprovedBy: optionalID(p.ClientApprovedBy()),
		ClientApprovedAt: optionalTime(p.ClientApprovedAt()),
	}
	for i, item := range p.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			ID:                 item.ID().Bytes(),
			ProductID:          dto.ID,
			Position:           i,
			Label:              item.Label(),
			Quantity:           item.Quantity(),
			Notes:              item.Notes(),
			AdminStatus:        item.AdminStatus().String(),
			ManufacturerStatus: item.ManufacturerStatus().String(),
		})
	}
	return dto
}

func mediaFromDomain(orderID uuid.UUID, m *order.MediaAttachment) MediaDTO {
	return MediaDTO{
		ID:         m.ID().Bytes(),
		OrderID:    orderID,
		ProductID:  optionalID(m.ProductID()),
		URL:        m.URL(),
		FileName:   m.FileName(),
		Kind:       m.Kind().String(),
		UploadedBy: m.UploadedBy().Bytes(),
		CreatedAt:  m.CreatedAt(),
	}
}

func reviewedFrom(p *order.Product) string {
	if p.ReviewedFrom() == order.UnknownProductStatus {
		return ""
	}
	return p.ReviewedFrom().String()
}
