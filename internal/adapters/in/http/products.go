package http

import (
	"net/http"

	"mfgorders/internal/core/application/usecases/commands"
	"mfgorders/internal/core/application/usecases/queries"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// RouteProduct handles POST /api/v1/products/:productId/route.
func (s *Server) RouteProduct(ctx echo.Context) error {
	productID, err := uuidParam(ctx, "productId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req RouteRequest
	if err = bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}
	target, err := order.ParseCustodian(req.To)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewRouteProductCommand(actorOf(ctx), productID, target)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.noContent(ctx, s.h.RouteProduct.Handle(ctx.Request().Context(), cmd))
}

// ApproveProduct handles POST /api/v1/products/:productId/approve - client
// approval, which hands the product back to staff.
func (s *Server) ApproveProduct(ctx echo.Context) error {
	productID, err := uuidParam(ctx, "productId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewApproveProductCommand(actorOf(ctx), productID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.noContent(ctx, s.h.ApproveProduct.Handle(ctx.Request().Context(), cmd))
}

// UpdateQuote handles PUT /api/v1/products/:productId/quote.
func (s *Server) UpdateQuote(ctx echo.Context) error {
	productID, err := uuidParam(ctx, "productId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req QuoteRequest
	if err = bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}
	quote, err := req.toQuote()
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateProductQuoteCommand(actorOf(ctx), productID, quote)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.noContent(ctx, s.h.UpdateQuote.Handle(ctx.Request().Context(), cmd))
}

// AdvanceProductStatus handles POST /api/v1/products/:productId/status.
func (s *Server) AdvanceProductStatus(ctx echo.Context) error {
	productID, err := uuidParam(ctx, "productId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req AdvanceRequest
	if err = bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}
	target, legacy, err := order.ParseProductStatus(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if legacy {
		return s.writeError(ctx, errs.NewValueIsInvalidError("status"))
	}
	shipment, err := req.toShipment()
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceProductStatusCommand(actorOf(ctx), productID, target, shipment)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.noContent(ctx, s.h.AdvanceStatus.Handle(ctx.Request().Context(), cmd))
}

// RaiseQuestion handles POST /api/v1/products/:productId/question.
func (s *Server) RaiseQuestion(ctx echo.Context) error {
	productID, err := uuidParam(ctx, "productId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req QuestionRequest
	if err = bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewRaiseQuestionCommand(actorOf(ctx), productID, req.Note)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.noContent(ctx, s.h.RaiseQuestion.Handle(ctx.Request().Context(), cmd))
}

// ResolveQuestion handles DELETE /api/v1/products/:productId/question.
func (s *Server) ResolveQuestion(ctx echo.Context) error {
	productID, err := uuidParam(ctx, "productId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewResolveQuestionCommand(actorOf(ctx), productID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.noContent(ctx, s.h.ResolveQuestion.Handle(ctx.Request().Context(), cmd))
}

// SelectShippingMethod handles PUT /api/v1/products/:productId/shipping-method.
func (s *Server) SelectShippingMethod(ctx echo.Context) error {
	productID, err := uuidParam(ctx, "productId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req ShippingMethodRequest
	if err = bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}
	method, err := order.ParseShippingMethod(req.Method)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewSelectShippingMethodCommand(actorOf(ctx), productID, method)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.noContent(ctx, s.h.SelectShipping.Handle(ctx.Request().Context(), cmd))
}

// ComputeETA handles GET /api/v1/products/:productId/eta.
func (s *Server) ComputeETA(ctx echo.Context) error {
	productID, err := uuidParam(ctx, "productId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewComputeETAQuery(actorOf(ctx), productID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	eta, err := s.h.ComputeETA.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, etaResponse(eta.ETA))
}

// DecideItem handles POST /api/v1/items/:itemId/decisions.
func (s *Server) DecideItem(ctx echo.Context) error {
	itemID, err := uuidParam(ctx, "itemId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req ItemDecisionRequest
	if err = bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}
	field, err := order.ParseApprovalField(req.Field)
	if err != nil {
		return s.writeError(ctx, err)
	}
	verdict, err := order.ParseDecision(req.Decision)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewDecideItemCommand(actorOf(ctx), itemID, field, verdict)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.noContent(ctx, s.h.DecideItem.Handle(ctx.Request().Context(), cmd))
}

func (s *Server) noContent(ctx echo.Context, err error) error {
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
