package http

import (
	"errors"

	"mfgorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const (
	messageNotPermitted = "not permitted"
	messageInternal     = "internal error"
)

// writeError maps err onto a status. Authorization detail and unexpected
// errors are only logged.
func (s *Server) writeError(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := kind.HTTPStatus()
	message := err.Error()

	switch kind {
	case errs.KindNotPermitted:
		s.logger.Warn("request denied",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
		message = messageNotPermitted
	case errs.KindInternal:
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return err
		}
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
		message = messageInternal
	}
	return c.JSON(status, Error{Code: status, Message: message})
}
