package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jacentio/catalog/internal/validate"
)

const (
	taxIDDetail = "taxId must be 13 characters: 4 letters, 6 digits and 3 letters or digits"
	emailDetail = "email must look like local@domain.tld"
)

// ClientService manages clients.
type ClientService struct {
	clients   Repository[Client]
	addresses Repository[Address]
	newID     func() string
	logger    *slog.Logger
}

// NewClientService creates a ClientService. addresses is consulted before
// deleting a client.
func NewClientService(clients Repository[Client], addresses Repository[Address], logger *slog.Logger) *ClientService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClientService{
		clients:   clients,
		addresses: addresses,
		newID:     newID,
		logger:    logger,
	}
}

// Create validates and stores a new client.
func (s *ClientService) Create(ctx context.Context, in Fields) (Client, error) {
	if missing := in.missing(clientRequired...); len(missing) > 0 {
		return Client{}, missingFields(clientRequired, missing)
	}

	taxID := validate.NormalizeTaxID(in.String(AttrTaxID))
	if !validate.TaxID(taxID) {
		return Client{}, invalidFormat(AttrTaxID, "invalid taxId", taxIDDetail)
	}
	email := strings.TrimSpace(in.String(AttrEmail))
	if !validate.Email(email) {
		return Client{}, invalidFormat(AttrEmail, "invalid email", emailDetail)
	}

	existing, found, err := s.findByTaxID(ctx, taxID)
	if err != nil {
		return Client{}, err
	}
	if found {
		s.logger.Debug("client create rejected", "taxId", taxID, "existingClientId", existing.ID)
		return Client{}, taxIDTaken(taxID)
	}

	c := Client{
		ID:        s.newID(),
		LegalName: strings.TrimSpace(in.String(AttrLegalName)),
		TradeName: strings.TrimSpace(in.String(AttrTradeName)),
		TaxID:     taxID,
		Email:     email,
		Phone:     strings.TrimSpace(in.String(AttrPhone)),
	}
	if err := s.clients.Put(ctx, c); err != nil {
		return Client{}, storeFailure("create", ResourceClient, err)
	}

	s.logger.Info("client created", "clientId", c.ID, "taxId", c.TaxID)
	return c, nil
}

// Get returns the client with the given ID.
func (s *ClientService) Get(ctx context.Context, id string) (Client, error) {
	return fetch(ctx, s.clients, ResourceClient, id)
}

// List returns every client.
func (s *ClientService) List(ctx context.Context) ([]Client, error) {
	return list(ctx, s.clients, ResourceClient)
}

// GetByTaxID returns the client holding taxID after normalization. If the
// invariant was ever broken and several match, the first is returned.
func (s *ClientService) GetByTaxID(ctx context.Context, taxID string) (Client, error) {
	normalized := validate.NormalizeTaxID(taxID)
	if normalized == "" {
		return Client{}, missingFields([]string{AttrTaxID}, []string{AttrTaxID})
	}
	c, found, err := s.findByTaxID(ctx, normalized)
	if err != nil {
		return Client{}, err
	}
	if !found {
		return Client{}, &Error{
			Code:     CodeNotFound,
			Message:  "client not found",
			Detail:   "no client exists with taxId " + normalized,
			Resource: ResourceClient,
			Field:    AttrTaxID,
		}
	}
	return c, nil
}

// Update applies a partial update. clientId in the input is ignored.
// A changed taxId is normalized, validated and checked for uniqueness.
func (s *ClientService) Update(ctx context.Context, id string, in Fields) (Client, error) {
	if len(in) == 0 {
		return Client{}, noFields()
	}
	current, err := fetch(ctx, s.clients, ResourceClient, id)
	if err != nil {
		return Client{}, err
	}
	if attr, ok := in.unknown(AttrClientID, AttrLegalName, AttrTradeName, AttrTaxID, AttrEmail, AttrPhone); ok {
		return Client{}, unknownField(ResourceClient, attr)
	}

	patch := make(map[string]any, len(in))
	for _, attr := range []string{AttrLegalName, AttrTradeName, AttrTaxID, AttrEmail, AttrPhone} {
		if !in.Has(attr) {
			continue
		}
		v, err := in.text(attr)
		if err != nil {
			return Client{}, err
		}
		switch attr {
		case AttrTaxID:
			v = validate.NormalizeTaxID(v)
			if !validate.TaxID(v) {
				return Client{}, invalidFormat(AttrTaxID, "invalid taxId", taxIDDetail)
			}
		case AttrEmail:
			if !validate.Email(v) {
				return Client{}, invalidFormat(AttrEmail, "invalid email", emailDetail)
			}
		}
		patch[attr] = v
	}

	if taxID, ok := patch[AttrTaxID].(string); ok && taxID != current.TaxID {
		other, found, err := s.findByTaxID(ctx, taxID)
		if err != nil {
			return Client{}, err
		}
		if found && other.ID != id {
			return Client{}, taxIDTaken(taxID)
		}
	}

	updated, err := apply(ctx, s.clients, ResourceClient, id, current, patch)
	if err != nil {
		return Client{}, err
	}
	s.logger.Info("client updated", "clientId", id, "fields", len(patch))
	return updated, nil
}

// Delete removes a client that has no addresses.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	if _, err := fetch(ctx, s.clients, ResourceClient, id); err != nil {
		return err
	}

	owned, err := s.addresses.ScanByFilter(ctx, AttrClientID, id)
	if err != nil {
		return storeFailure("list addresses of", ResourceClient, err)
	}
	if n := len(owned); n > 0 {
		return conflict(ResourceClient,
			"client cannot be deleted",
			fmt.Sprintf("client has %d associated address(es); delete them first", n))
	}

	if err := s.clients.Delete(ctx, id); err != nil {
		return storeFailure("delete", ResourceClient, err)
	}
	s.logger.Info("client deleted", "clientId", id)
	return nil
}

func (s *ClientService) findByTaxID(ctx context.Context, taxID string) (Client, bool, error) {
	matches, err := s.clients.ScanByFilter(ctx, AttrTaxID, taxID)
	if err != nil {
		return Client{}, false, storeFailure("look up", ResourceClient, err)
	}
	if len(matches) == 0 {
		return Client{}, false, nil
	}
	return matches[0], true, nil
}

func taxIDTaken(taxID string) *Error {
	return &Error{
		Code:     CodeConflict,
		Message:  "taxId already registered",
		Detail:   "a client with taxId " + taxID + " already exists",
		Resource: ResourceClient,
		Field:    AttrTaxID,
	}
}
