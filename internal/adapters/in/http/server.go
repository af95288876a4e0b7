package http

import (
	"net/http"

	"mfgorders/internal/core/application/usecases/commands"
	"mfgorders/internal/core/application/usecases/queries"
	"mfgorders/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Server maps the /api/v1 routes onto the order use cases.
type Server struct {
	h      Handlers
	logger *zap.Logger
}

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{h: handlers, logger: logger}
}

// Register mounts every route on g. g must resolve the actor first.
func (s *Server) Register(g *echo.Group) {
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders", s.ListOrders)
	g.GET("/orders/:orderId", s.GetOrder)
	g.PUT("/orders/:orderId/draft", s.SaveDraft)
	g.POST("/orders/:orderId/transitions", s.TransitionOrder)
	g.DELETE("/orders/:orderId", s.DeleteOrder)
	g.GET("/orders/:orderId/totals", s.ComputeTotals)
	g.GET("/orders/:orderId/audit", s.ListAudit)

	g.POST("/orders/:orderId/sample/route", s.RouteSample)
	g.PUT("/orders/:orderId/sample", s.UpdateSample)
	g.POST("/orders/:orderId/sample/decision", s.DecideSample)
	g.POST("/orders/:orderId/sample/media", s.UploadSampleMedia)

	g.POST("/products/:productId/route", s.RouteProduct)
	g.POST("/products/:productId/approve", s.ApproveProduct)
	g.PUT("/products/:productId/quote", s.UpdateQuote)
	g.POST("/products/:productId/status", s.AdvanceProductStatus)
	g.POST("/products/:productId/question", s.RaiseQuestion)
	g.DELETE("/products/:productId/question", s.ResolveQuestion)
	g.PUT("/products/:productId/shipping-method", s.SelectShippingMethod)
	g.GET("/products/:productId/eta", s.ComputeETA)
	g.POST("/products/:productId/media", s.UploadProductMedia)

	g.POST("/items/:itemId/decisions", s.DecideItem)
}

// CreateOrder handles POST /api/v1/orders - opens a draft or a client request.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}
	clientID, err := optionalUUID("client_id", req.ClientID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	manufacturerID, err := optionalUUID("manufacturer_id", req.ManufacturerID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(actorOf(ctx), req.Name, clientID, manufacturerID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	id, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: id.String()})
}

// ListOrders handles GET /api/v1/orders - orders visible to the caller.
func (s *Server) ListOrders(ctx echo.Context) error {
	query, err := queries.NewListOrdersQuery(actorOf(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}
	summaries, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]OrderSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, orderSummaryResponse(summary))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(actorOf(ctx), orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderResponse(view))
}

// SaveDraft handles PUT /api/v1/orders/:orderId/draft - replaces the draft
// contents if the version still matches.
func (s *Server) SaveDraft(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req SaveDraftRequest
	if err = bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}
	clientID, err := optionalUUID("client_id", req.ClientID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	manufacturerID, err := optionalUUID("manufacturer_id", req.ManufacturerID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	products := make([]order.ProductSpec, 0, len(req.Products))
	for _, p := range req.Products {
		spec, specErr := p.toSpec()
		if specErr != nil {
			return s.writeError(ctx, specErr)
		}
		products = append(products, spec)
	}

	cmd, err := commands.NewSaveDraftCommand(
		actorOf(ctx), orderID, req.Version, req.Name, clientID, manufacturerID, products,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}
	version, err := s.h.SaveDraft.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, VersionResponse{Version: version})
}

// TransitionOrder handles POST /api/v1/orders/:orderId/transitions.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req TransitionRequest
	if err = bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(actorOf(ctx), orderID, target)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.TransitionOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:orderId and returns the
// per-table report.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewDeleteOrderCommand(actorOf(ctx), orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	report, err := s.h.DeleteOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, DeleteReportResponse{OrderID: report.OrderID.String(), Steps: report.Steps})
}

// ComputeTotals handles GET /api/v1/orders/:orderId/totals.
func (s *Server) ComputeTotals(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewComputeTotalsQuery(actorOf(ctx), orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	totals, err := s.h.ComputeTotals.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, totalsResponse(totals))
}

// ListAudit handles GET /api/v1/orders/:orderId/audit.
func (s *Server) ListAudit(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewListAuditQuery(actorOf(ctx), orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	entries, err := s.h.ListAudit.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, auditEntryResponse(e))
	}
	return ctx.JSON(http.StatusOK, response)
}
