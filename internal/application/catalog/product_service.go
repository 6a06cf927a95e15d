package catalog

import (
	"context"
	"errors"

	"github.com/souqbun/backend/internal/domain/catalog"
	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/souqbun/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReadCache is the slice of the cache the product service needs.
// Implemented by cache.JSONCache; a nil cache disables caching.
type ReadCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// ProductService handles buyer-facing catalog reads and the supplier
// back-office product mutations. Product detail reads go through a
// cache when one is configured; any cache failure falls back to the
// database.
type ProductService struct {
	productRepo     catalog.ProductRepository
	categoryRepo    catalog.CategoryRepository
	readCache       ReadCache
	defaultPageSize int
	logger          *zap.Logger
}

// NewProductService creates a new product service. readCache may be nil.
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	readCache ReadCache,
	defaultPageSize int,
	logger *zap.Logger,
) *ProductService {
	if defaultPageSize <= 0 {
		defaultPageSize = 12
	}
	return &ProductService{
		productRepo:     productRepo,
		categoryRepo:    categoryRepo,
		readCache:       readCache,
		defaultPageSize: defaultPageSize,
		logger:          logger,
	}
}

// List returns the buyer-facing product listing with the total count
func (s *ProductService) List(ctx context.Context, query ListProductsQuery) ([]ProductResponse, int64, error) {
	filter, err := s.buildFilter(query)
	if err != nil {
		return nil, 0, err
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// GetByID returns a single product, served from cache when possible
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	if s.readCache != nil {
		var cached ProductResponse
		err := s.readCache.Get(ctx, id.String(), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Product cache read failed", zap.Error(err))
		}
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)

	if s.readCache != nil {
		if err := s.readCache.Set(ctx, id.String(), response); err != nil {
			s.logger.Warn("Product cache write failed", zap.Error(err))
		}
	}
	return &response, nil
}

// ListBySupplier returns a supplier's own products, inactive included
func (s *ProductService) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]ProductResponse, error) {
	products, err := s.productRepo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Create adds a product to the supplier's catalog
func (s *ProductService) Create(ctx context.Context, supplierID uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(supplierID, toProductSpec(req))
	if err != nil {
		return nil, err
	}
	if err := applyChildren(product, req); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("supplier_id", supplierID.String()))

	response := ToProductResponse(product)
	return &response, nil
}

// Update overwrites a product the supplier owns. Attribute, zone and
// tier sets are replaced wholesale; the slug stays stable.
func (s *ProductService) Update(ctx context.Context, supplierID, productID uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := s.ownedProduct(ctx, supplierID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	if err := product.ApplySpec(toProductSpec(req)); err != nil {
		return nil, err
	}
	if err := applyChildren(product, req); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, productID)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete soft-deletes a product the supplier owns
func (s *ProductService) Delete(ctx context.Context, supplierID, productID uuid.UUID) error {
	if _, err := s.ownedProduct(ctx, supplierID, productID); err != nil {
		return err
	}
	if err := s.productRepo.SoftDelete(ctx, productID); err != nil {
		return err
	}
	s.invalidate(ctx, productID)
	return nil
}

func (s *ProductService) buildFilter(query ListProductsQuery) (catalog.ProductFilter, error) {
	filter := catalog.ProductFilter{
		Search:      query.Search,
		InStockOnly: query.InStock,
		Sort:        query.Sort,
		Page:        query.Page,
		Limit:       query.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = s.defaultPageSize
	}

	if query.CategoryID != nil && *query.CategoryID != "" {
		id, err := uuid.Parse(*query.CategoryID)
		if err != nil {
			return filter, shared.NewDomainError("INVALID_CATEGORY", "Category id is not a valid UUID")
		}
		filter.CategoryID = &id
	}

	attrs := map[catalog.AttributeKey][]string{
		catalog.AttrProcessingMethod: query.ProcessingMethod,
		catalog.AttrRoastLevel:       query.RoastLevel,
		catalog.AttrOriginCountry:    query.OriginCountry,
		catalog.AttrBrewMethod:       query.BrewMethod,
	}
	filter.Attributes = make(map[catalog.AttributeKey][]string)
	for key, values := range attrs {
		if len(values) > 0 {
			filter.Attributes[key] = values
		}
	}

	var err error
	if filter.PriceMin, err = parsePrice(query.PriceMin); err != nil {
		return filter, err
	}
	if filter.PriceMax, err = parsePrice(query.PriceMax); err != nil {
		return filter, err
	}
	return filter, nil
}

func parsePrice(raw *string) (*decimal.Decimal, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	price, err := decimal.NewFromString(*raw)
	if err != nil || price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE_FILTER", "Price filter must be a non-negative number")
	}
	return &price, nil
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return err
	}
	return nil
}

func (s *ProductService) ownedProduct(ctx context.Context, supplierID, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SupplierID != supplierID {
		return nil, shared.ErrForbidden
	}
	return product, nil
}

func (s *ProductService) invalidate(ctx context.Context, productID uuid.UUID) {
	if s.readCache == nil {
		return
	}
	if err := s.readCache.Delete(ctx, productID.String()); err != nil {
		s.logger.Warn("Product cache invalidation failed",
			zap.String("product_id", productID.String()), zap.Error(err))
	}
}

func toProductSpec(req ProductRequest) catalog.ProductSpec {
	return catalog.ProductSpec{
		CategoryID:       req.CategoryID,
		NameEn:           req.NameEn,
		NameAr:           req.NameAr,
		DescriptionEn:    req.DescriptionEn,
		DescriptionAr:    req.DescriptionAr,
		BasePrice:        req.BasePrice,
		Unit:             catalog.Unit(req.Unit),
		StockQuantity:    req.StockQuantity,
		MinOrderQuantity: req.MinOrderQuantity,
	}
}

func applyChildren(product *catalog.Product, req ProductRequest) error {
	attrs := make([]catalog.ProductAttribute, len(req.Attributes))
	for i, a := range req.Attributes {
		attrs[i] = catalog.ProductAttribute{Key: catalog.AttributeKey(a.Key), Value: a.Value}
	}
	if err := product.ReplaceAttributes(attrs); err != nil {
		return err
	}

	zones := make([]catalog.ShippingZone, len(req.ShippingZones))
	for i, z := range req.ShippingZones {
		zones[i] = catalog.ShippingZone{
			ZoneNameEn:    z.ZoneNameEn,
			ZoneNameAr:    z.ZoneNameAr,
			Cost:          z.Cost,
			EstimatedDays: z.EstimatedDays,
			CODAvailable:  z.CODAvailable,
		}
	}
	if err := product.ReplaceShippingZones(zones); err != nil {
		return err
	}

	tiers := make([]catalog.PriceTier, len(req.PriceTiers))
	for i, t := range req.PriceTiers {
		tiers[i] = catalog.PriceTier{
			MinQuantity:  t.MinQuantity,
			MaxQuantity:  t.MaxQuantity,
			PricePerUnit: t.PricePerUnit,
		}
	}
	return product.ReplacePriceTiers(tiers)
}
