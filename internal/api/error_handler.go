package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yedidi/warehouse-api/internal/api/handler"
	"github.com/yedidi/warehouse-api/internal/api/metrics"
	"github.com/yedidi/warehouse-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps classified domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "...", "errors": [...]}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		metrics.RequestErrorsTotal.WithLabelValues(metrics.KindLabel(err)).Inc()

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	if de, ok := domain.AsError(err); ok {
		return statusFor(de.Kind), handler.ErrorResponse{Message: de.Message, Errors: de.Fields}
	}

	// Echo's own errors (404 from router, 405, oversized body, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := he.Message
		if inner, ok := msg.(*echo.HTTPError); ok {
			msg = inner.Message
		}
		return he.Code, handler.ErrorResponse{Message: fmt.Sprintf("%v", msg)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorResponse{Message: "internal server error"}
}

// statusFor maps an error kind to its HTTP status. A duplicate username is
// answered with 401, which existing clients rely on.
func statusFor(kind error) int {
	switch kind {
	case domain.ErrValidation:
		return http.StatusBadRequest
	case domain.ErrUnauthorized, domain.ErrConflict:
		return http.StatusUnauthorized
	case domain.ErrForbidden:
		return http.StatusForbidden
	case domain.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
