package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yedidi/warehouse-api/internal/api/metrics"
	"github.com/yedidi/warehouse-api/internal/api/middleware"
	"github.com/yedidi/warehouse-api/internal/core/domain"
	"github.com/yedidi/warehouse-api/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry product creation safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	catalog ports.CatalogService
}

func NewProductHandler(catalog ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type idResponse struct {
	ID string `json:"id"`
}

// productRequest documents the product body. Ids are assigned by the store,
// so it has no id field.
type productRequest struct {
	Name        string  `json:"name" example:"Logo mug"`
	Category    string  `json:"category" enums:"t-shirt,hoodie,hat,necklace,bracelet,shoes,pillow,mug,book,puzzle,cards" example:"mug"`
	Description string  `json:"description" example:"350ml ceramic"`
	Price       int     `json:"price" example:"12"`
	Stock       int     `json:"stock" example:"40"`
	Image       string  `json:"image,omitempty"`
}

// Get returns every product of a category, or a single product by id.
//
// @Summary      Get products
// @Description  A category literal (e.g. "mug") returns an array; anything else is treated as a product id.
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category or product id"
// @Success      200  {array}   domain.Product
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/product/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	lookup, err := h.catalog.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if lookup.ByCategory {
		return c.JSON(http.StatusOK, lookup.Products)
	}
	return c.JSON(http.StatusOK, lookup.Products[0])
}

// Create adds a product to the catalog.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Replays the first result when the same user repeats a key with the same body"
// @Param        body             body      productRequest  true   "Product fields"
// @Success      201              {object}  idResponse
// @Failure      400              {object}  ErrorResponse
// @Failure      401              {object}  ErrorResponse
// @Failure      403              {object}  ErrorResponse
// @Router       /api/product [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var payload ports.ProductPayload
	if err := decodeObject(c, &payload); err != nil {
		return err
	}

	id, err := h.catalog.Create(c.Request().Context(), ports.CreateProductInput{
		Payload:        payload,
		ActorID:        actorID(c),
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, idResponse{ID: id})
}

// Update changes the supplied fields of a product. Unknown fields are ignored.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Fields to change"
// @Success      200   {object}  idResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/product/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var payload ports.ProductPayload
	if err := decodeObject(c, &payload); err != nil {
		return err
	}

	id, err := h.catalog.Update(c.Request().Context(), c.Param("id"), payload)
	if err != nil {
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, idResponse{ID: id})
}

// Delete removes a product. Admin only.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id   path  string  true  "Product id"
// @Success      200
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/product/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.catalog.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusOK)
}

func actorID(c echo.Context) string {
	if u := middleware.CurrentUser(c); u != nil {
		return u.ID
	}
	return ""
}

// decodeObject is decodeBody for bodies that must be a JSON object.
func decodeObject(c echo.Context, payload *ports.ProductPayload) error {
	if err := decodeBody(c, payload); err != nil {
		return err
	}
	if *payload == nil {
		return domain.NewValidationError(domain.MsgInvalidJSON)
	}
	return nil
}
