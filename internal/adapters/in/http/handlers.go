package http

import (
	"context"

	"mfgorders/internal/core/application/usecases/commands"
	"mfgorders/internal/core/application/usecases/queries"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/services"
	"mfgorders/internal/core/ports"
)

// Handler is a use case without a result.
type Handler[In any] interface {
	Handle(ctx context.Context, in In) error
}

// ResultHandler is a use case returning a value.
type ResultHandler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Handlers are the use cases behind the routes. Every field must be set.
type Handlers struct {
	CreateOrder     ResultHandler[commands.CreateOrderCommand, kernel.UUID]
	SaveDraft       ResultHandler[commands.SaveDraftCommand, int]
	TransitionOrder Handler[commands.TransitionOrderCommand]
	DeleteOrder     ResultHandler[commands.DeleteOrderCommand, ports.DeleteReport]

	RouteProduct    Handler[commands.RouteProductCommand]
	ApproveProduct  Handler[commands.ApproveProductCommand]
	UpdateQuote     Handler[commands.UpdateProductQuoteCommand]
	AdvanceStatus   Handler[commands.AdvanceProductStatusCommand]
	RaiseQuestion   Handler[commands.RaiseQuestionCommand]
	ResolveQuestion Handler[commands.ResolveQuestionCommand]
	SelectShipping  Handler[commands.SelectShippingMethodCommand]
	DecideItem      Handler[commands.DecideItemCommand]

	RouteSample  Handler[commands.RouteSampleCommand]
	UpdateSample Handler[commands.UpdateSampleCommand]
	DecideSample Handler[commands.DecideSampleCommand]
	UploadMedia  ResultHandler[commands.UploadMediaCommand, []commands.UploadResult]

	GetOrder      ResultHandler[queries.GetOrderQuery, queries.OrderView]
	ListOrders    ResultHandler[queries.ListOrdersQuery, []queries.OrderSummary]
	ComputeTotals ResultHandler[queries.ComputeTotalsQuery, services.OrderTotals]
	ComputeETA    ResultHandler[queries.ComputeETAQuery, queries.ETAResponse]
	ListAudit     ResultHandler[queries.ListAuditQuery, []queries.AuditEntryView]
}
