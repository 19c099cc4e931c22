package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jacentio/catalog/catalog"
	"github.com/jacentio/catalog/internal/dynamotest"
)

func TestProductCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.cat.Products.Create(ctx, validProduct())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.BasePrice != 12.5 {
		t.Errorf("unexpected product %+v", p)
	}

	got, err := f.cat.Products.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != p {
		t.Errorf("expected %+v, got %+v", p, got)
	}
}

func TestProductCreate_Prices(t *testing.T) {
	tests := []struct {
		name  string
		price any
		want  float64
		code  catalog.Code
	}{
		{"zero", 0.0, 0, ""},
		{"integer", 3, 3, ""},
		{"json number", json.Number("19.99"), 19.99, ""},
		{"negative", -1.0, 0, catalog.CodeInvalidFormat},
		{"string", "12.5", 0, catalog.CodeInvalidFormat},
		{"null", nil, 0, catalog.CodeInvalidFormat},
		{"bool", true, 0, catalog.CodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			p, err := f.cat.Products.Create(context.Background(), with(validProduct(), "basePrice", tt.price))
			if tt.code != "" {
				expectCode(t, err, tt.code)
				if f.fake.Writes() != 0 {
					t.Error("expected no write")
				}
				return
			}
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if p.BasePrice != tt.want {
				t.Errorf("expected price %v, got %v", tt.want, p.BasePrice)
			}
		})
	}
}

func TestProductCreate_MissingFields(t *testing.T) {
	for _, field := range catalog.ProductRequired() {
		t.Run(field, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.cat.Products.Create(context.Background(), without(validProduct(), field))
			expectCode(t, err, catalog.CodeMissingField)

			var e *catalog.Error
			errors.As(err, &e)
			if e.Field != field {
				t.Errorf("expected field %q, got %q", field, e.Field)
			}
		})
	}
}

func TestProductList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"bolt", "nut", "washer"} {
		if _, err := f.cat.Products.Create(ctx, with(validProduct(), "name", name)); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	all, err := f.cat.Products.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 products, got %d", len(all))
	}
}

func TestProductUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, _ := f.cat.Products.Create(ctx, validProduct())

	updated, err := f.cat.Products.Update(ctx, p.ID, catalog.Fields{
		"basePrice": json.Number("0"),
		"productId": "ignored",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != p.ID || updated.BasePrice != 0 || updated.Name != p.Name {
		t.Errorf("unexpected update result %+v", updated)
	}
}

func TestProductUpdate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input catalog.Fields
		code  catalog.Code
	}{
		{"empty", catalog.Fields{}, catalog.CodeMissingField},
		{"negative price", catalog.Fields{"basePrice": -0.01}, catalog.CodeInvalidFormat},
		{"string price", catalog.Fields{"basePrice": "5"}, catalog.CodeInvalidFormat},
		{"blank name", catalog.Fields{"name": ""}, catalog.CodeInvalidFormat},
		{"unknown", catalog.Fields{"sku": "B-1"}, catalog.CodeUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p, _ := f.cat.Products.Create(context.Background(), validProduct())
			writes := f.fake.Writes()

			_, err := f.cat.Products.Update(context.Background(), p.ID, tt.input)
			expectCode(t, err, tt.code)
			if f.fake.Writes() != writes {
				t.Error("expected no write")
			}
		})
	}
}

func TestProductUpdate_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.cat.Products.Update(context.Background(), "ghost", catalog.Fields{"name": "x"})
	expectCode(t, err, catalog.CodeNotFound)
}

func TestProductDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, _ := f.cat.Products.Create(ctx, validProduct())

	if err := f.cat.Products.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if f.fake.Len(f.cfg.ProductsTable) != 0 {
		t.Error("expected table to be empty")
	}

	err := f.cat.Products.Delete(ctx, p.ID)
	expectCode(t, err, catalog.CodeNotFound)
}

func TestProductGet_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.fake.FailOn(dynamotest.OpGetItem, errBoom)

	_, err := f.cat.Products.Get(context.Background(), "any")
	expectCode(t, err, catalog.CodeStore)
	if errors.Is(err, catalog.ErrNotFound) {
		t.Error("store failure must not look like not found")
	}
}

func TestProductList_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.fake.FailOn(dynamotest.OpScan, errBoom)

	_, err := f.cat.Products.List(context.Background())
	expectCode(t, err, catalog.CodeStore)
}
