package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jacentio/catalog/catalog"
	"github.com/jacentio/catalog/internal/dynamotest"
	"github.com/jacentio/catalog/store"
)

type fixture struct {
	cat  *catalog.Catalog
	fake *dynamotest.Fake
	cfg  store.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := store.DefaultConfig()
	fake := dynamotest.New(map[string]string{
		cfg.ClientsTable:   catalog.AttrClientID,
		cfg.AddressesTable: catalog.AttrAddressID,
		cfg.ProductsTable:  catalog.AttrProductID,
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		cat:  catalog.New(fake, cfg, logger),
		fake: fake,
		cfg:  cfg,
	}
}

func validClient() catalog.Fields {
	return catalog.Fields{
		"legalName": "Acme Industrial S.A. de C.V.",
		"tradeName": "Acme",
		"taxId":     "ABCD250101XY1",
		"email":     "billing@acme.example",
		"phone":     "+52 55 1234 5678",
	}
}

func validAddress() catalog.Fields {
	return catalog.Fields{
		"street":       "Av. Reforma 222",
		"neighborhood": "Juarez",
		"municipality": "Cuauhtemoc",
		"state":        "CDMX",
		"addressType":  "BILLING",
	}
}

func validProduct() catalog.Fields {
	return catalog.Fields{
		"name":          "Steel bolt",
		"unitOfMeasure": "PIECE",
		"basePrice":     12.5,
	}
}

func (f *fixture) createClient(t *testing.T, in catalog.Fields) catalog.Client {
	t.Helper()
	c, err := f.cat.Clients.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return c
}

func (f *fixture) createAddress(t *testing.T, clientID string) catalog.Address {
	t.Helper()
	a, err := f.cat.Addresses.Create(context.Background(), clientID, validAddress())
	if err != nil {
		t.Fatalf("create address: %v", err)
	}
	return a
}

func expectCode(t *testing.T, err error, code catalog.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := catalog.CodeOf(err); got != code {
		t.Fatalf("expected code %s, got %s (%v)", code, got, err)
	}
}

func with(base catalog.Fields, kv ...any) catalog.Fields {
	out := catalog.Fields{}
	for k, v := range base {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i].(string)] = kv[i+1]
	}
	return out
}

func without(base catalog.Fields, keys ...string) catalog.Fields {
	out := with(base)
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

var errBoom = errors.New("dynamodb unavailable")
