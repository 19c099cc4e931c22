package catalog

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/jacentio/catalog/store"
)

// Catalog bundles the three services over one DynamoDB client. Build it
// once at startup and share it.
type Catalog struct {
	Clients   *ClientService
	Addresses *AddressService
	Products  *ProductService
}

// New wires tables and services for the given table configuration.
func New(api store.API, cfg store.Config, logger *slog.Logger) *Catalog {
	cfg.Validate()
	if logger == nil {
		logger = slog.Default()
	}

	clients := store.NewTable[Client](api, cfg.ClientsTable, AttrClientID)
	addresses := store.NewTable[Address](api, cfg.AddressesTable, AttrAddressID, AttrClientID)
	products := store.NewTable[Product](api, cfg.ProductsTable, AttrProductID)

	return &Catalog{
		Clients:   NewClientService(clients, addresses, logger.With("service", ResourceClient)),
		Addresses: NewAddressService(addresses, clients, logger.With("service", ResourceAddress)),
		Products:  NewProductService(products, logger.With("service", ResourceProduct)),
	}
}

func newID() string {
	return uuid.NewString()
}
