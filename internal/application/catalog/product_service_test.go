package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/souqbun/backend/internal/domain/catalog"
	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/souqbun/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProductRepo struct {
	products   map[uuid.UUID]*catalog.Product
	lastFilter catalog.ProductFilter
	listResult []catalog.Product
	listTotal  int64
	created    *catalog.Product
	updated    *catalog.Product
	deletedID  uuid.UUID
	findCalls  int
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	f.findCalls++
	p, ok := f.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) List(_ context.Context, filter catalog.ProductFilter) ([]catalog.Product, int64, error) {
	f.lastFilter = filter
	return f.listResult, f.listTotal, nil
}

func (f *fakeProductRepo) ListBySupplier(context.Context, uuid.UUID) ([]catalog.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Create(_ context.Context, p *catalog.Product) error {
	f.created = p
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *catalog.Product) error {
	f.updated = p
	return nil
}

func (f *fakeProductRepo) AddImage(context.Context, *catalog.ProductImage) error { return nil }

func (f *fakeProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	f.deletedID = id
	return nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*catalog.Category
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) FindAll(context.Context) ([]catalog.Category, error) { return nil, nil }
func (f *fakeCategoryRepo) Save(context.Context, *catalog.Category) error       { return nil }

type fakeCache struct {
	entries map[string][]byte
	getErr  error
	gets    int
	sets    int
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string, dest any) error {
	f.gets++
	if f.getErr != nil {
		return f.getErr
	}
	raw, ok := f.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value any) error {
	f.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	delete(f.entries, key)
	return nil
}

func newStoredProduct(t *testing.T, supplierID uuid.UUID) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(supplierID, catalog.ProductSpec{
		NameEn:           "Ethiopian Yirgacheffe",
		BasePrice:        decimal.RequireFromString("85"),
		Unit:             catalog.UnitKilogram,
		StockQuantity:    40,
		MinOrderQuantity: 1,
	})
	require.NoError(t, err)
	return p
}

func newProductFixture() (*ProductService, *fakeProductRepo, *fakeCategoryRepo, *fakeCache) {
	productRepo := &fakeProductRepo{products: map[uuid.UUID]*catalog.Product{}}
	categoryRepo := &fakeCategoryRepo{categories: map[uuid.UUID]*catalog.Category{}}
	readCache := newFakeCache()
	svc := NewProductService(productRepo, categoryRepo, readCache, 12, zap.NewNop())
	return svc, productRepo, categoryRepo, readCache
}

func strPtr(s string) *string { return &s }

func TestListAppliesDefaults(t *testing.T) {
	svc, repo, _, _ := newProductFixture()

	_, _, err := svc.List(context.Background(), ListProductsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastFilter.Page)
	assert.Equal(t, 12, repo.lastFilter.Limit)
	assert.Empty(t, repo.lastFilter.Attributes)
}

func TestListBuildsAttributeAndPriceFilter(t *testing.T) {
	svc, repo, _, _ := newProductFixture()
	categoryID := uuid.New()

	_, _, err := svc.List(context.Background(), ListProductsQuery{
		Search:           "mocha",
		CategoryID:       strPtr(categoryID.String()),
		ProcessingMethod: []string{"washed", "natural"},
		RoastLevel:       []string{"medium"},
		PriceMin:         strPtr("20"),
		PriceMax:         strPtr("90.50"),
		InStock:          true,
		Sort:             "price_asc",
		Page:             3,
		Limit:            24,
	})
	require.NoError(t, err)

	f := repo.lastFilter
	assert.Equal(t, "mocha", f.Search)
	require.NotNil(t, f.CategoryID)
	assert.Equal(t, categoryID, *f.CategoryID)
	assert.Equal(t, []string{"washed", "natural"}, f.Attributes[catalog.AttrProcessingMethod])
	assert.Equal(t, []string{"medium"}, f.Attributes[catalog.AttrRoastLevel])
	require.NotNil(t, f.PriceMin)
	assert.Equal(t, "20", f.PriceMin.String())
	require.NotNil(t, f.PriceMax)
	assert.Equal(t, "90.5", f.PriceMax.String())
	assert.True(t, f.InStockOnly)
	assert.Equal(t, "price_asc", f.Sort)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 24, f.Limit)
}

func TestListRejectsMalformedCategoryID(t *testing.T) {
	svc, _, _, _ := newProductFixture()

	_, _, err := svc.List(context.Background(), ListProductsQuery{CategoryID: strPtr("not-a-uuid")})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
}

func TestListRejectsBadPriceFilter(t *testing.T) {
	svc, _, _, _ := newProductFixture()

	for _, raw := range []string{"abc", "-5"} {
		_, _, err := svc.List(context.Background(), ListProductsQuery{PriceMin: strPtr(raw)})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr, raw)
		assert.Equal(t, "INVALID_PRICE_FILTER", domainErr.Code)
	}
}

func TestGetByIDCachesAside(t *testing.T) {
	svc, repo, _, readCache := newProductFixture()
	product := newStoredProduct(t, uuid.New())
	repo.products[product.ID] = product

	first, err := svc.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls)
	assert.Equal(t, 1, readCache.sets)

	second, err := svc.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls, "second read must be served from cache")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Slug, second.Slug)
}

func TestGetByIDFallsBackWhenCacheFails(t *testing.T) {
	svc, repo, _, readCache := newProductFixture()
	product := newStoredProduct(t, uuid.New())
	repo.products[product.ID] = product
	readCache.getErr = errors.New("redis: connection refused")

	resp, err := svc.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, resp.ID)
	assert.Equal(t, 1, repo.findCalls)
}

func TestGetByIDWithoutCache(t *testing.T) {
	repo := &fakeProductRepo{products: map[uuid.UUID]*catalog.Product{}}
	svc := NewProductService(repo, &fakeCategoryRepo{}, nil, 12, zap.NewNop())
	product := newStoredProduct(t, uuid.New())
	repo.products[product.ID] = product

	resp, err := svc.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, resp.ID)
}

func TestCreateValidatesCategory(t *testing.T) {
	svc, _, _, _ := newProductFixture()
	missing := uuid.New()

	_, err := svc.Create(context.Background(), uuid.New(), ProductRequest{
		CategoryID:       &missing,
		NameEn:           "House Blend",
		BasePrice:        decimal.RequireFromString("55"),
		Unit:             "KG",
		MinOrderQuantity: 1,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
}

func TestCreatePersistsChildren(t *testing.T) {
	svc, repo, _, _ := newProductFixture()
	supplierID := uuid.New()

	resp, err := svc.Create(context.Background(), supplierID, ProductRequest{
		NameEn:           "Sidamo Natural",
		BasePrice:        decimal.RequireFromString("70"),
		Unit:             "KG",
		StockQuantity:    30,
		MinOrderQuantity: 2,
		Attributes: []AttributeInput{
			{Key: "processing_method", Value: "natural"},
			{Key: "origin_country", Value: "ET"},
		},
		ShippingZones: []ShippingZoneInput{
			{ZoneNameEn: "Riyadh", Cost: decimal.RequireFromString("12"), EstimatedDays: 2},
		},
		PriceTiers: []PriceTierInput{
			{MinQuantity: 5, PricePerUnit: decimal.RequireFromString("65")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.Equal(t, supplierID, resp.SupplierID)
	assert.Len(t, resp.Attributes, 2)
	assert.Len(t, resp.ShippingZones, 1)
	assert.Len(t, resp.PriceTiers, 1)
	assert.True(t, resp.IsActive)
	assert.NotEmpty(t, resp.Slug)
}

func TestCreateRejectsUnknownAttributeKey(t *testing.T) {
	svc, _, _, _ := newProductFixture()

	_, err := svc.Create(context.Background(), uuid.New(), ProductRequest{
		NameEn:           "Mystery Beans",
		BasePrice:        decimal.RequireFromString("40"),
		Unit:             "KG",
		MinOrderQuantity: 1,
		Attributes:       []AttributeInput{{Key: "bean_color", Value: "green"}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ATTRIBUTE", domainErr.Code)
}

func TestUpdateForeignProductForbidden(t *testing.T) {
	svc, repo, _, _ := newProductFixture()
	product := newStoredProduct(t, uuid.New())
	repo.products[product.ID] = product

	_, err := svc.Update(context.Background(), uuid.New(), product.ID, ProductRequest{
		NameEn:           "Hijacked",
		BasePrice:        decimal.RequireFromString("1"),
		Unit:             "KG",
		MinOrderQuantity: 1,
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.Nil(t, repo.updated)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	svc, repo, _, readCache := newProductFixture()
	supplierID := uuid.New()
	product := newStoredProduct(t, supplierID)
	repo.products[product.ID] = product

	_, err := svc.Update(context.Background(), supplierID, product.ID, ProductRequest{
		NameEn:           "Ethiopian Yirgacheffe G1",
		BasePrice:        decimal.RequireFromString("95"),
		Unit:             "KG",
		StockQuantity:    25,
		MinOrderQuantity: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.updated)
	assert.Equal(t, "Ethiopian Yirgacheffe G1", repo.updated.NameEn)
	assert.Contains(t, readCache.deletes, product.ID.String())
}

func TestDeleteSoftDeletesAndInvalidates(t *testing.T) {
	svc, repo, _, readCache := newProductFixture()
	supplierID := uuid.New()
	product := newStoredProduct(t, supplierID)
	repo.products[product.ID] = product

	require.NoError(t, svc.Delete(context.Background(), supplierID, product.ID))
	assert.Equal(t, product.ID, repo.deletedID)
	assert.Contains(t, readCache.deletes, product.ID.String())
}
