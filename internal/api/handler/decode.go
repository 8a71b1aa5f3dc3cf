package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/yedidi/warehouse-api/internal/core/domain"
)

// decodeBody reads the request body as JSON into v whatever the declared
// Content-Type. An empty or malformed body is a validation error.
func decodeBody(c echo.Context, v any) error {
	if err := c.Echo().JSONSerializer.Deserialize(c, v); err != nil {
		return domain.NewValidationError(domain.MsgInvalidJSON)
	}
	return nil
}

// ErrorResponse is the canonical error envelope for all API errors.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}
