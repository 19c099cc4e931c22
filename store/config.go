package store

// Config holds the DynamoDB table names used by the catalog.
type Config struct {
	// ClientsTable holds Client items keyed by clientId.
	// Default: "Clients"
	ClientsTable string

	// AddressesTable holds Address items keyed by addressId.
	// Default: "Addresses"
	AddressesTable string

	// ProductsTable holds Product items keyed by productId.
	// Default: "Products"
	ProductsTable string
}

// DefaultConfig returns the default table names.
func DefaultConfig() Config {
	return Config{
		ClientsTable:   "Clients",
		AddressesTable: "Addresses",
		ProductsTable:  "Products",
	}
}

// Validate fills blank table names with their defaults.
func (c *Config) Validate() {
	def := DefaultConfig()
	if c.ClientsTable == "" {
		c.ClientsTable = def.ClientsTable
	}
	if c.AddressesTable == "" {
		c.AddressesTable = def.AddressesTable
	}
	if c.ProductsTable == "" {
		c.ProductsTable = def.ProductsTable
	}
}
