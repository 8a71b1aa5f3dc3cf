package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"

	"github.com/yedidi/warehouse-api/internal/core/domain"
	"github.com/yedidi/warehouse-api/internal/core/ports"
)

// productSchema lists the recognised product fields in reporting order.
var productSchema = []string{"name", "category", "description", "price", "stock", "image"}

// requiredOnCreate lists the fields a new product must carry.
var requiredOnCreate = []string{"name", "category", "description", "price", "stock"}

// productFields is the typed form of a payload. Nil means absent.
type productFields struct {
	Name        *string `validate:"omitnil,min=1"`
	Category    *string `validate:"omitnil,category"`
	Description *string `validate:"omitnil,min=1"`
	Price       *int    `validate:"omitnil,min=0,max=1000"`
	Stock       *int    `validate:"omitnil,min=0"`
	Image       *string
}

// NewProduct validates a creation payload. Unknown fields are ignored.
func NewProduct(payload ports.ProductPayload) (*domain.Product, error) {
	fields, present, errs := decodeProduct(payload)
	for _, name := range requiredOnCreate {
		if !present[name] {
			errs = append(errs, domain.FieldError{Field: name, Message: name + " is required"})
		}
	}
	errs = append(errs, Struct(fields)...)
	if len(errs) > 0 {
		return nil, domain.NewValidationError(domain.MsgInvalidProduct, errs...)
	}

	p := &domain.Product{
		Name:        *fields.Name,
		Category:    domain.Category(*fields.Category),
		Description: *fields.Description,
		Price:       *fields.Price,
		Stock:       *fields.Stock,
	}
	if fields.Image != nil {
		p.Image = *fields.Image
	}
	return p, nil
}

// ProductUpdate validates a partial payload and returns the changes it
// describes. It fails when the payload names no recognised field.
func ProductUpdate(payload ports.ProductPayload) (ports.ProductChanges, error) {
	fields, present, errs := decodeProduct(payload)
	if len(present) == 0 && len(errs) == 0 {
		return ports.ProductChanges{}, domain.NewValidationError(domain.MsgNoUpdatableFields)
	}
	errs = append(errs, Struct(fields)...)
	if len(errs) > 0 {
		return ports.ProductChanges{}, domain.NewValidationError(domain.MsgInvalidProduct, errs...)
	}

	changes := ports.ProductChanges{
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Stock:       fields.Stock,
		Image:       fields.Image,
	}
	if fields.Category != nil {
		c := domain.Category(*fields.Category)
		changes.Category = &c
	}
	return changes, nil
}

// decodeProduct decodes every recognised, non-null field of payload. present
// holds the names decoded successfully; type mismatches are reported as
// field errors.
func decodeProduct(payload ports.ProductPayload) (productFields, map[string]bool, []domain.FieldError) {
	var (
		fields  productFields
		present = make(map[string]bool, len(productSchema))
		errs    []domain.FieldError
	)
	for _, name := range productSchema {
		raw, ok := payload[name]
		if !ok || isNull(raw) {
			continue
		}
		var err error
		switch name {
		case "name":
			fields.Name, err = decodeString(raw)
		case "category":
			fields.Category, err = decodeString(raw)
		case "description":
			fields.Description, err = decodeString(raw)
		case "image":
			fields.Image, err = decodeString(raw)
		case "price":
			fields.Price, err = decodeInt(raw)
		case "stock":
			fields.Stock, err = decodeInt(raw)
		}
		if err != nil {
			errs = append(errs, domain.FieldError{Field: name, Message: name + " must be " + typeName(name)})
			continue
		}
		present[name] = true
	}
	return fields, present, errs
}

func typeName(field string) string {
	if field == "price" || field == "stock" {
		return "an integer"
	}
	return "a string"
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeString(raw json.RawMessage) (*string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// maxExactInt is the largest magnitude a JSON number carries without losing
// integer precision.
const maxExactInt = 1 << 53

// decodeInt accepts any JSON number with an integral value, so 12, 12.0 and
// 1.2e1 are equal. 12.5, "12" and true are rejected.
func decodeInt(raw json.RawMessage) (*int, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactInt {
		return nil, errors.New("not an integral number")
	}
	n := int(f)
	return &n, nil
}
