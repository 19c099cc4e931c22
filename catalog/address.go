package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jacentio/catalog/internal/validate"
)

// AddressService manages client addresses.
type AddressService struct {
	addresses Repository[Address]
	clients   Repository[Client]
	newID     func() string
	logger    *slog.Logger
}

// NewAddressService creates an AddressService. clients is used to check
// that an address's owner exists.
func NewAddressService(addresses Repository[Address], clients Repository[Client], logger *slog.Logger) *AddressService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AddressService{
		addresses: addresses,
		clients:   clients,
		newID:     newID,
		logger:    logger,
	}
}

// Create stores a new address for an existing client.
func (s *AddressService) Create(ctx context.Context, clientID string, in Fields) (Address, error) {
	if _, err := fetch(ctx, s.clients, ResourceClient, clientID); err != nil {
		return Address{}, err
	}
	if missing := in.missing(addressRequired...); len(missing) > 0 {
		return Address{}, missingFields(addressRequired, missing)
	}

	addressType := strings.TrimSpace(in.String(AttrAddressType))
	if !validate.AddressType(addressType) {
		return Address{}, invalidAddressType()
	}

	a := Address{
		ID:           s.newID(),
		ClientID:     clientID,
		Street:       strings.TrimSpace(in.String(AttrStreet)),
		Neighborhood: strings.TrimSpace(in.String(AttrNeighborhood)),
		Municipality: strings.TrimSpace(in.String(AttrMunicipality)),
		State:        strings.TrimSpace(in.String(AttrState)),
		AddressType:  addressType,
	}
	if err := s.addresses.Put(ctx, a); err != nil {
		return Address{}, storeFailure("create", ResourceAddress, err)
	}

	s.logger.Info("address created", "addressId", a.ID, "clientId", clientID)
	return a, nil
}

// Get returns the address with the given ID.
func (s *AddressService) Get(ctx context.Context, id string) (Address, error) {
	return fetch(ctx, s.addresses, ResourceAddress, id)
}

// List returns every address.
func (s *AddressService) List(ctx context.Context) ([]Address, error) {
	return list(ctx, s.addresses, ResourceAddress)
}

// ListByClient returns the addresses of an existing client.
func (s *AddressService) ListByClient(ctx context.Context, clientID string) ([]Address, error) {
	if _, err := fetch(ctx, s.clients, ResourceClient, clientID); err != nil {
		return nil, err
	}
	owned, err := s.addresses.ScanByFilter(ctx, AttrClientID, clientID)
	if err != nil {
		return nil, storeFailure("list", ResourceAddress, err)
	}
	return owned, nil
}

// Update applies a partial update. Any attempt to set clientId is rejected;
// addressId in the input is ignored.
func (s *AddressService) Update(ctx context.Context, id string, in Fields) (Address, error) {
	if len(in) == 0 {
		return Address{}, noFields()
	}
	current, err := fetch(ctx, s.addresses, ResourceAddress, id)
	if err != nil {
		return Address{}, err
	}
	if in.Has(AttrClientID) {
		return Address{}, &Error{
			Code:     CodeImmutableField,
			Message:  "clientId cannot be changed",
			Detail:   "an address always belongs to the client it was created for",
			Resource: ResourceAddress,
			Field:    AttrClientID,
		}
	}
	if attr, ok := in.unknown(append([]string{AttrAddressID}, addressRequired...)...); ok {
		return Address{}, unknownField(ResourceAddress, attr)
	}

	patch := make(map[string]any, len(in))
	for _, attr := range addressRequired {
		if !in.Has(attr) {
			continue
		}
		v, err := in.text(attr)
		if err != nil {
			return Address{}, err
		}
		if attr == AttrAddressType && !validate.AddressType(v) {
			return Address{}, invalidAddressType()
		}
		patch[attr] = v
	}

	updated, err := apply(ctx, s.addresses, ResourceAddress, id, current, patch)
	if err != nil {
		return Address{}, err
	}
	s.logger.Info("address updated", "addressId", id, "fields", len(patch))
	return updated, nil
}

// Delete removes an address.
func (s *AddressService) Delete(ctx context.Context, id string) error {
	if err := remove(ctx, s.addresses, ResourceAddress, id); err != nil {
		return err
	}
	s.logger.Info("address deleted", "addressId", id)
	return nil
}

func invalidAddressType() *Error {
	e := invalidFormat(AttrAddressType,
		"invalid addressType",
		"addressType must be one of "+strings.Join(validate.AddressTypes(), ", "))
	e.Allowed = validate.AddressTypes()
	return e
}
