package catalog

// Attribute names shared by JSON bodies and DynamoDB items.
const (
	AttrClientID  = "clientId"
	AttrLegalName = "legalName"
	AttrTradeName = "tradeName"
	AttrTaxID     = "taxId"
	AttrEmail     = "email"
	AttrPhone     = "phone"

	AttrAddressID    = "addressId"
	AttrStreet       = "street"
	AttrNeighborhood = "neighborhood"
	AttrMunicipality = "municipality"
	AttrState        = "state"
	AttrAddressType  = "addressType"

	AttrProductID     = "productId"
	AttrName          = "name"
	AttrUnitOfMeasure = "unitOfMeasure"
	AttrBasePrice     = "basePrice"
)

// Resource names used in errors and logs.
const (
	ResourceClient  = "client"
	ResourceAddress = "address"
	ResourceProduct = "product"
)

// Client is a customer identified by a unique tax ID.
type Client struct {
	ID        string `json:"clientId" dynamodbav:"clientId"`
	LegalName string `json:"legalName" dynamodbav:"legalName"`
	TradeName string `json:"tradeName" dynamodbav:"tradeName"`
	TaxID     string `json:"taxId" dynamodbav:"taxId"`
	Email     string `json:"email" dynamodbav:"email"`
	Phone     string `json:"phone" dynamodbav:"phone"`
}

// Address is a billing or shipping address owned by a client.
type Address struct {
	ID           string `json:"addressId" dynamodbav:"addressId"`
	ClientID     string `json:"clientId" dynamodbav:"clientId"`
	Street       string `json:"street" dynamodbav:"street"`
	Neighborhood string `json:"neighborhood" dynamodbav:"neighborhood"`
	Municipality string `json:"municipality" dynamodbav:"municipality"`
	State        string `json:"state" dynamodbav:"state"`
	AddressType  string `json:"addressType" dynamodbav:"addressType"`
}

// Product is a sellable item with a base price.
type Product struct {
	ID            string  `json:"productId" dynamodbav:"productId"`
	Name          string  `json:"name" dynamodbav:"name"`
	UnitOfMeasure string  `json:"unitOfMeasure" dynamodbav:"unitOfMeasure"`
	BasePrice     float64 `json:"basePrice" dynamodbav:"basePrice"`
}

var (
	clientRequired  = []string{AttrLegalName, AttrTradeName, AttrTaxID, AttrEmail, AttrPhone}
	addressRequired = []string{AttrStreet, AttrNeighborhood, AttrMunicipality, AttrState, AttrAddressType}
	productRequired = []string{AttrName, AttrUnitOfMeasure, AttrBasePrice}
)

// ClientRequired returns the attributes a new client must carry.
func ClientRequired() []string { return append([]string(nil), clientRequired...) }

// AddressRequired returns the attributes a new address must carry.
func AddressRequired() []string { return append([]string(nil), addressRequired...) }

// ProductRequired returns the attributes a new product must carry.
func ProductRequired() []string { return append([]string(nil), productRequired...) }
