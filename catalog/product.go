package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jacentio/catalog/internal/validate"
)

const priceDetail = "basePrice must be a number greater than or equal to 0"

// ProductService manages products. Products have no cross-entity rules.
type ProductService struct {
	products Repository[Product]
	newID    func() string
	logger   *slog.Logger
}

// NewProductService creates a ProductService.
func NewProductService(products Repository[Product], logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		products: products,
		newID:    newID,
		logger:   logger,
	}
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, in Fields) (Product, error) {
	missing := in.missing(AttrName, AttrUnitOfMeasure)
	if !in.Has(AttrBasePrice) {
		missing = append(missing, AttrBasePrice)
	}
	if len(missing) > 0 {
		return Product{}, missingFields(productRequired, missing)
	}

	price, ok := basePrice(in[AttrBasePrice])
	if !ok {
		return Product{}, invalidFormat(AttrBasePrice, "invalid basePrice", priceDetail)
	}

	p := Product{
		ID:            s.newID(),
		Name:          strings.TrimSpace(in.String(AttrName)),
		UnitOfMeasure: strings.TrimSpace(in.String(AttrUnitOfMeasure)),
		BasePrice:     price,
	}
	if err := s.products.Put(ctx, p); err != nil {
		return Product{}, storeFailure("create", ResourceProduct, err)
	}

	s.logger.Info("product created", "productId", p.ID)
	return p, nil
}

// Get returns the product with the given ID.
func (s *ProductService) Get(ctx context.Context, id string) (Product, error) {
	return fetch(ctx, s.products, ResourceProduct, id)
}

// List returns every product.
func (s *ProductService) List(ctx context.Context) ([]Product, error) {
	return list(ctx, s.products, ResourceProduct)
}

// Update applies a partial update. productId in the input is ignored.
func (s *ProductService) Update(ctx context.Context, id string, in Fields) (Product, error) {
	if len(in) == 0 {
		return Product{}, noFields()
	}
	current, err := fetch(ctx, s.products, ResourceProduct, id)
	if err != nil {
		return Product{}, err
	}
	if attr, ok := in.unknown(AttrProductID, AttrName, AttrUnitOfMeasure, AttrBasePrice); ok {
		return Product{}, unknownField(ResourceProduct, attr)
	}

	patch := make(map[string]any, len(in))
	for _, attr := range []string{AttrName, AttrUnitOfMeasure} {
		if !in.Has(attr) {
			continue
		}
		v, err := in.text(attr)
		if err != nil {
			return Product{}, err
		}
		patch[attr] = v
	}
	if in.Has(AttrBasePrice) {
		price, ok := basePrice(in[AttrBasePrice])
		if !ok {
			return Product{}, invalidFormat(AttrBasePrice, "invalid basePrice", priceDetail)
		}
		patch[AttrBasePrice] = price
	}

	updated, err := apply(ctx, s.products, ResourceProduct, id, current, patch)
	if err != nil {
		return Product{}, err
	}
	s.logger.Info("product updated", "productId", id, "fields", len(patch))
	return updated, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := remove(ctx, s.products, ResourceProduct, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", "productId", id)
	return nil
}

func basePrice(v any) (float64, bool) {
	if !validate.Price(v) {
		return 0, false
	}
	return validate.Number(v)
}
