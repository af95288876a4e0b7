package http

import (
	"io"
	"mime/multipart"
	"net/http"

	"mfgorders/internal/core/application/usecases/commands"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/ports"
	"mfgorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const filesField = "files"

// RouteSample handles POST /api/v1/orders/:orderId/sample/route.
func (s *Server) RouteSample(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
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

	cmd, err := commands.NewRouteSampleCommand(actorOf(ctx), orderID, target)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.noContent(ctx, s.h.RouteSample.Handle(ctx.Request().Context(), cmd))
}

// UpdateSample handles PUT /api/v1/orders/:orderId/sample.
func (s *Server) UpdateSample(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req SampleUpdateRequest
	if err = bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}
	shipment, err := req.toShipment()
	if err != nil {
		return s.writeError(ctx, err)
	}
	eta, err := optionalDate("eta", req.ETA)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateSampleCommand(actorOf(ctx), orderID, order.SampleUpdate{
		Fee:      req.Fee,
		ETA:      eta,
		Shipment: shipment,
	})
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.noContent(ctx, s.h.UpdateSample.Handle(ctx.Request().Context(), cmd))
}

// DecideSample handles POST /api/v1/orders/:orderId/sample/decision.
func (s *Server) DecideSample(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req DecisionRequest
	if err = bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}
	verdict, err := order.ParseDecision(req.Decision)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewDecideSampleCommand(actorOf(ctx), orderID, verdict)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.noContent(ctx, s.h.DecideSample.Handle(ctx.Request().Context(), cmd))
}

// UploadSampleMedia handles POST /api/v1/orders/:orderId/sample/media.
func (s *Server) UploadSampleMedia(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.upload(ctx, func(files []ports.Upload) (commands.UploadMediaCommand, error) {
		return commands.NewUploadSampleMediaCommand(actorOf(ctx), orderID, files)
	})
}

// UploadProductMedia handles POST /api/v1/products/:productId/media.
func (s *Server) UploadProductMedia(ctx echo.Context) error {
	productID, err := uuidParam(ctx, "productId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.upload(ctx, func(files []ports.Upload) (commands.UploadMediaCommand, error) {
		return commands.NewUploadProductMediaCommand(actorOf(ctx), productID, files)
	})
}

// upload reads the multipart files and reports one result per file. A file
// the blob store rejects does not fail the request.
func (s *Server) upload(
	ctx echo.Context,
	build func(files []ports.Upload) (commands.UploadMediaCommand, error),
) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause(filesField, err))
	}
	headers := form.File[filesField]
	if len(headers) == 0 {
		return s.writeError(ctx, errs.NewValueIsRequiredError(filesField))
	}

	files, closeAll, err := openUploads(headers)
	defer closeAll()
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := build(files)
	if err != nil {
		return s.writeError(ctx, err)
	}
	results, err := s.h.UploadMedia.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, uploadResultResponses(results))
}

func openUploads(headers []*multipart.FileHeader) ([]ports.Upload, func(), error) {
	var opened []io.Closer
	closeAll := func() {
		for _, c := range opened {
			_ = c.Close()
		}
	}

	files := make([]ports.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, errs.NewValueIsInvalidErrorWithCause(fh.Filename, err)
		}
		opened = append(opened, f)
		files = append(files, ports.Upload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return files, closeAll, nil
}
