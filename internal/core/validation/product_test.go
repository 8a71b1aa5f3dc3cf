package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/yedidi/warehouse-api/internal/core/domain"
	"github.com/yedidi/warehouse-api/internal/core/ports"
)

func payload(t *testing.T, body string) ports.ProductPayload {
	t.Helper()
	var p ports.ProductPayload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("bad fixture %s: %v", body, err)
	}
	return p
}

func fieldNames(t *testing.T, err error) map[string]bool {
	t.Helper()
	de, ok := domain.AsError(err)
	if !ok {
		t.Fatalf("expected *domain.Error, got %v", err)
	}
	out := make(map[string]bool, len(de.Fields))
	for _, f := range de.Fields {
		out[f.Field] = true
	}
	return out
}

const validProduct = `{"name":"Logo mug","category":"mug","description":"350ml ceramic","price":12,"stock":40}`

func TestNewProduct_Valid(t *testing.T) {
	p, err := NewProduct(payload(t, validProduct))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.Product{Name: "Logo mug", Category: domain.CategoryMug, Description: "350ml ceramic", Price: 12, Stock: 40}
	if *p != want {
		t.Fatalf("got %+v, want %+v", *p, want)
	}
}

func TestNewProduct_BoundaryValues(t *testing.T) {
	for _, body := range []string{
		`{"name":"a","category":"book","description":"d","price":0,"stock":0}`,
		`{"name":"a","category":"book","description":"d","price":1000,"stock":0,"image":"http://x/y.png"}`,
	} {
		if _, err := NewProduct(payload(t, body)); err != nil {
			t.Fatalf("%s: unexpected error: %v", body, err)
		}
	}
}

func TestNewProduct_MissingFields(t *testing.T) {
	for _, missing := range requiredOnCreate {
		p := payload(t, validProduct)
		delete(p, missing)

		_, err := NewProduct(p)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("missing %s: expected ErrValidation, got %v", missing, err)
		}
		if !fieldNames(t, err)[missing] {
			t.Fatalf("missing %s: field not reported", missing)
		}
	}
}

func TestNewProduct_NullCountsAsMissing(t *testing.T) {
	_, err := NewProduct(payload(t, `{"name":null,"category":"mug","description":"d","price":1,"stock":1}`))
	if !fieldNames(t, err)["name"] {
		t.Fatalf("expected name to be reported, got %v", err)
	}
}

func TestNewProduct_RuleViolations(t *testing.T) {
	cases := map[string]string{
		"price above max":  `{"name":"a","category":"mug","description":"d","price":1001,"stock":1}`,
		"negative price":   `{"name":"a","category":"mug","description":"d","price":-1,"stock":1}`,
		"negative stock":   `{"name":"a","category":"mug","description":"d","price":1,"stock":-5}`,
		"float price":      `{"name":"a","category":"mug","description":"d","price":12.5,"stock":1}`,
		"huge stock":       `{"name":"a","category":"mug","description":"d","price":1,"stock":1e300}`,
		"string stock":     `{"name":"a","category":"mug","description":"d","price":1,"stock":"3"}`,
		"unknown category": `{"name":"a","category":"sock","description":"d","price":1,"stock":1}`,
		"wrong case":       `{"name":"a","category":"Mug","description":"d","price":1,"stock":1}`,
		"numeric name":     `{"name":7,"category":"mug","description":"d","price":1,"stock":1}`,
		"empty name":       `{"name":"","category":"mug","description":"d","price":1,"stock":1}`,
		"numeric image":    `{"name":"a","category":"mug","description":"d","price":1,"stock":1,"image":3}`,
	}
	for name, body := range cases {
		if _, err := NewProduct(payload(t, body)); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestNewProduct_IntegralNumbers(t *testing.T) {
	p, err := NewProduct(payload(t, `{"name":"a","category":"mug","description":"d","price":12.0,"stock":1e2}`))
	if err != nil {
		t.Fatalf("integral numbers rejected: %v", err)
	}
	if p.Price != 12 || p.Stock != 100 {
		t.Fatalf("got price %d stock %d", p.Price, p.Stock)
	}
}

func TestNewProduct_ReportsEveryField(t *testing.T) {
	_, err := NewProduct(payload(t, `{"price":"x","stock":-1,"category":"sock"}`))
	got := fieldNames(t, err)
	for _, f := range []string{"name", "description", "price", "stock", "category"} {
		if !got[f] {
			t.Fatalf("expected %s to be reported, got %v", f, got)
		}
	}
}

func TestProductUpdate_OnlyRecognisedFields(t *testing.T) {
	changes, err := ProductUpdate(payload(t, `{"price":99,"colour":"red"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changes.Price == nil || *changes.Price != 99 {
		t.Fatalf("price not applied: %+v", changes)
	}
	if changes.Name != nil || changes.Category != nil || changes.Stock != nil {
		t.Fatalf("unexpected fields set: %+v", changes)
	}
}

func TestProductUpdate_NoRecognisedFields(t *testing.T) {
	for _, body := range []string{`{}`, `{"colour":"red","size":3}`, `{"price":null}`} {
		_, err := ProductUpdate(payload(t, body))
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", body, err)
		}
		de, _ := domain.AsError(err)
		if de.Message != domain.MsgNoUpdatableFields {
			t.Fatalf("%s: unexpected message %q", body, de.Message)
		}
	}
}

func TestProductUpdate_InvalidValues(t *testing.T) {
	for _, body := range []string{
		`{"price":"cheap"}`,
		`{"stock":1.5}`,
		`{"category":"sock"}`,
		`{"price":5000}`,
		`{"name":""}`,
	} {
		if _, err := ProductUpdate(payload(t, body)); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", body, err)
		}
	}
}

func TestProductUpdate_Category(t *testing.T) {
	changes, err := ProductUpdate(payload(t, `{"category":"hoodie"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changes.Category == nil || *changes.Category != domain.CategoryHoodie {
		t.Fatalf("category not applied: %+v", changes)
	}
}

func TestStruct_Credentials(t *testing.T) {
	errs := Struct(ports.Credentials{Username: "alice"})
	if len(errs) != 1 || errs[0].Field != "password" || errs[0].Message != "password is required" {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if errs := Struct(ports.Credentials{Username: "alice", Password: "pw"}); errs != nil {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}
