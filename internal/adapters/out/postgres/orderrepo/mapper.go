package orderrepo

import (
	"errors"
	"sort"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"

	"github.com/google/uuid"
)

func toID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

func toOptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := toID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func toOptionalDate(t *time.Time) *kernel.Date {
	if t == nil {
		return nil
	}
	d := kernel.DateOf(*t)
	return &d
}

func toOptionalTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// toDomain rebuilds the aggregate from its rows.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := toID(dto.ID)
	if err != nil {
		return nil, err
	}
	createdBy, err := toID(dto.CreatedBy)
	if err != nil {
		return nil, err
	}
	clientID, err := toOptionalID(dto.ClientID)
	if err != nil {
		return nil, err
	}
	manufacturerID, err := toOptionalID(dto.ManufacturerID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	sample, err := sampleToDomain(dto.Sample)
	if err != nil {
		return nil, err
	}

	mediaByProduct := make(map[uuid.UUID][]*order.MediaAttachment)
	var sampleMedia []*order.MediaAttachment
	sort.SliceStable(dto.Media, func(i, j int) bool { return dto.Media[i].CreatedAt.Before(dto.Media[j].CreatedAt) })
	for _, m := range dto.Media {
		attachment, mErr := mediaToDomain(m)
		if mErr != nil {
			return nil, mErr
		}
		if m.ProductID == nil {
			sampleMedia = append(sampleMedia, attachment)
			continue
		}
		mediaByProduct[*m.ProductID] = append(mediaByProduct[*m.ProductID], attachment)
	}

	sort.SliceStable(dto.Products, func(i, j int) bool { return dto.Products[i].Sequence < dto.Products[j].Sequence })
	products := make([]*order.Product, 0, len(dto.Products))
	for _, p := range dto.Products {
		product, pErr := productToDomain(p, mediaByProduct[p.ID])
		if pErr != nil {
			return nil, pErr
		}
		products = append(products, product)
	}

	return order.RestoreOrder(order.State{
		ID:             id,
		Number:         dto.Number,
		Name:           dto.Name,
		Status:         status,
		ClientID:       clientID,
		ManufacturerID: manufacturerID,
		CreatedBy:      createdBy,
		CreatedAt:      dto.CreatedAt.UTC(),
		UpdatedAt:      dto.UpdatedAt.UTC(),
		Version:        dto.Version,
		Sample:         sample,
		Products:       products,
		SampleMedia:    sampleMedia,
	}), nil
}

func sampleToDomain(dto SampleDTO) (order.Sample, error) {
	s := order.Sample{
		Required: dto.Required,
		Fee:      dto.Fee,
		ETA:      toOptionalDate(dto.ETA),
		Shipment: order.Shipment{
			TrackingNumber: dto.TrackingNumber,
			Carrier:        dto.Carrier,
			ShippedDate:    toOptionalDate(dto.ShippedDate),
		},
		DecidedAt: toOptionalTime(dto.DecidedAt),
	}

	var statusErr, routedErr, decidedErr error
	s.Status, statusErr = order.ParseDecision(dto.Status)
	s.RoutedTo, routedErr = order.ParseCustodian(dto.RoutedTo)
	s.DecidedBy, decidedErr = toOptionalID(dto.DecidedBy)
	return s, errors.Join(statusErr, routedErr, decidedErr)
}

func productToDomain(dto ProductDTO, media []*order.MediaAttachment) (*order.Product, error) {
	id, err := toID(dto.ID)
	if err != nil {
		return nil, err
	}
	routedTo, err := order.ParseCustodian(dto.RoutedTo)
	if err != nil {
		return nil, err
	}
	status, legacyQuestion, err := order.ParseProductStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	var reviewedFrom order.ProductStatus
	if dto.ReviewedFrom != "" {
		if reviewedFrom, _, err = order.ParseProductStatus(dto.ReviewedFrom); err != nil {
			return nil, err
		}
	}
	method, err := order.ParseShippingMethod(dto.ShippingMethod)
	if err != nil {
		return nil, err
	}
	routedBy, err := toOptionalID(dto.RoutedBy)
	if err != nil {
		return nil, err
	}
	approvedBy, err := toOptionalID(dto.ClientApprovedBy)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(dto.Items, func(i, j int) bool { return dto.Items[i].Position < dto.Items[j].Position })
	items := make([]*order.Item, 0, len(dto.Items))
	for _, i := range dto.Items {
		item, iErr := itemToDomain(i)
		if iErr != nil {
			return nil, iErr
		}
		items = append(items, item)
	}

	return order.RestoreProduct(order.ProductState{
		ID:             id,
		ProductRef:     dto.ProductRef,
		Sequence:       dto.Sequence,
		Description:    dto.Description,
		SampleNotes:    dto.SampleNotes,
		RoutedTo:       routedTo,
		RoutedAt:       toOptionalTime(dto.RoutedAt),
		RoutedBy:       routedBy,
		Status:         status,
		ReviewedFrom:   reviewedFrom,
		QuestionRaised: dto.QuestionRaised || legacyQuestion,
		QuestionNote:   dto.QuestionNote,
		Costs: order.Costs{
			UnitPrice: dto.UnitPrice,
			SampleFee: dto.SampleFee,
			AirPrice:  dto.AirPrice,
			BoatPrice: dto.BoatPrice,
		},
		ShippingMethod: method,
		Production: order.Production{
			StartDate: toOptionalDate(dto.ProductionStart),
			Days:      dto.ProductionDays,
		},
		Shipment: order.Shipment{
			TrackingNumber: dto.TrackingNumber,
			Carrier:        dto.Carrier,
			ShippedDate:    toOptionalDate(dto.ShippedDate),
		},
		ClientApprovedBy: approvedBy,
		ClientApprovedAt: toOptionalTime(dto.ClientApprovedAt),
		Items:            items,
		Media:            media,
	}), nil
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := toID(dto.ID)
	if err != nil {
		return nil, err
	}
	adminStatus, adminErr := order.ParseDecision(dto.AdminStatus)
	manufacturerStatus, mfgErr := order.ParseDecision(dto.ManufacturerStatus)
	if err = errors.Join(adminErr, mfgErr); err != nil {
		return nil, err
	}
	return order.RestoreItem(id, dto.Label, dto.Quantity, dto.Notes, adminStatus, manufacturerStatus), nil
}

func mediaToDomain(dto MediaDTO) (*order.MediaAttachment, error) {
	id, err := toID(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := toOptionalID(dto.ProductID)
	if err != nil {
		return nil, err
	}
	uploadedBy, err := toID(dto.UploadedBy)
	if err != nil {
		return nil, err
	}
	kind, err := order.ParseMediaKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	return order.RestoreMediaAttachment(id, productID, dto.URL, dto.FileName, kind, uploadedBy, dto.CreatedAt.UTC()), nil
}
