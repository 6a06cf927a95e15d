package order

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/souqbun/backend/internal/domain/catalog"
	"github.com/souqbun/backend/internal/domain/identity"
	"github.com/souqbun/backend/internal/domain/order"
	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOrderRepo struct {
	created    *order.Order
	decrements []order.StockDecrement
	commitErr  error
}

func (f *fakeOrderRepo) CreateWithItems(_ context.Context, o *order.Order, decrements []order.StockDecrement) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.created = o
	f.decrements = decrements
	return nil
}

func (f *fakeOrderRepo) FindByID(context.Context, uuid.UUID) (*order.Order, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeOrderRepo) FindByBuyer(context.Context, uuid.UUID) ([]order.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) FindAll(context.Context, shared.Filter) ([]order.Order, int64, error) {
	return nil, 0, nil
}

func (f *fakeOrderRepo) FindItemByID(context.Context, uuid.UUID) (*order.OrderItem, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeOrderRepo) FindItemsBySupplier(context.Context, uuid.UUID) ([]order.OrderItem, error) {
	return nil, nil
}

func (f *fakeOrderRepo) SaveItem(context.Context, *order.OrderItem) error { return nil }

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) List(context.Context, catalog.ProductFilter) ([]catalog.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) ListBySupplier(context.Context, uuid.UUID) ([]catalog.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Create(context.Context, *catalog.Product) error   { return nil }
func (f *fakeProductRepo) Update(context.Context, *catalog.Product) error   { return nil }
func (f *fakeProductRepo) AddImage(context.Context, *catalog.ProductImage) error { return nil }
func (f *fakeProductRepo) SoftDelete(context.Context, uuid.UUID) error      { return nil }

type fakeAddressRepo struct {
	addresses map[uuid.UUID]*identity.Address
}

func (f *fakeAddressRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Address, error) {
	a, ok := f.addresses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return a, nil
}

func (f *fakeAddressRepo) FindByUser(context.Context, uuid.UUID) ([]identity.Address, error) {
	return nil, nil
}

func (f *fakeAddressRepo) Save(context.Context, *identity.Address) error { return nil }
func (f *fakeAddressRepo) Delete(context.Context, uuid.UUID) error       { return nil }
func (f *fakeAddressRepo) SetDefault(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func newTestProduct(t *testing.T, supplierID uuid.UUID, price string, stock, minOrder int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(supplierID, catalog.ProductSpec{
		NameEn:           "Yemeni Mocha",
		BasePrice:        decimal.RequireFromString(price),
		Unit:             catalog.UnitKilogram,
		StockQuantity:    stock,
		MinOrderQuantity: minOrder,
	})
	require.NoError(t, err)
	return p
}

func newCheckoutFixture(t *testing.T) (*CheckoutService, *fakeOrderRepo, *fakeProductRepo, *fakeAddressRepo, uuid.UUID, uuid.UUID) {
	t.Helper()
	buyerID := uuid.New()

	address, err := identity.NewAddress(buyerID, "home", "Sara", "+966500000000",
		"Riyadh", "Olaya", "King Fahd Rd 1", "12211", "")
	require.NoError(t, err)

	orderRepo := &fakeOrderRepo{}
	productRepo := &fakeProductRepo{products: map[uuid.UUID]*catalog.Product{}}
	addressRepo := &fakeAddressRepo{addresses: map[uuid.UUID]*identity.Address{address.ID: address}}

	svc := NewCheckoutService(orderRepo, productRepo, addressRepo,
		decimal.RequireFromString("0.05"), zap.NewNop())
	return svc, orderRepo, productRepo, addressRepo, buyerID, address.ID
}

func TestCheckoutComputesTotals(t *testing.T) {
	svc, orderRepo, productRepo, _, buyerID, addressID := newCheckoutFixture(t)

	supplierA := uuid.New()
	productA := newTestProduct(t, supplierA, "50", 100, 1)
	require.NoError(t, productA.ReplaceShippingZones([]catalog.ShippingZone{
		{ZoneNameEn: "Central", Cost: decimal.RequireFromString("15")},
	}))
	require.NoError(t, productA.ReplacePriceTiers([]catalog.PriceTier{
		{MinQuantity: 10, PricePerUnit: decimal.RequireFromString("45")},
	}))

	supplierB := uuid.New()
	productB := newTestProduct(t, supplierB, "30", 20, 1)

	productRepo.products[productA.ID] = productA
	productRepo.products[productB.ID] = productB

	resp, err := svc.Checkout(context.Background(), buyerID, CheckoutRequest{
		AddressID:     addressID,
		PaymentMethod: "COD",
		Items: []CheckoutItemRequest{
			{ProductID: productA.ID, Quantity: 10},
			{ProductID: productB.ID, Quantity: 11},
		},
	})
	require.NoError(t, err)

	// Line A hits the 10+ tier: 10 x 45 = 450. Line B: 11 x 30 = 330.
	assert.Equal(t, "780", resp.Subtotal.String())
	assert.Equal(t, "15", resp.ShippingTotal.String())
	assert.Equal(t, "39", resp.PlatformFee.String())
	assert.Equal(t, "795", resp.TotalAmount.String())
	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.Equal(t, "PENDING", resp.PaymentStatus)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "427.5", resp.Items[0].SupplierPayout.String())
	assert.Equal(t, "313.5", resp.Items[1].SupplierPayout.String())

	require.NotNil(t, orderRepo.created)
	require.Len(t, orderRepo.decrements, 2)
	assert.Equal(t, productA.ID, orderRepo.decrements[0].ProductID)
	assert.Equal(t, 10, orderRepo.decrements[0].Quantity)
}

func TestCheckoutNonCODStartsPendingPayment(t *testing.T) {
	svc, _, productRepo, _, buyerID, addressID := newCheckoutFixture(t)
	product := newTestProduct(t, uuid.New(), "40", 10, 1)
	productRepo.products[product.ID] = product

	resp, err := svc.Checkout(context.Background(), buyerID, CheckoutRequest{
		AddressID:     addressID,
		PaymentMethod: "CARD",
		Items:         []CheckoutItemRequest{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING_PAYMENT", resp.Status)
}

func TestCheckoutForeignAddressRejected(t *testing.T) {
	svc, _, productRepo, _, _, addressID := newCheckoutFixture(t)
	product := newTestProduct(t, uuid.New(), "40", 10, 1)
	productRepo.products[product.ID] = product

	_, err := svc.Checkout(context.Background(), uuid.New(), CheckoutRequest{
		AddressID:     addressID,
		PaymentMethod: "COD",
		Items:         []CheckoutItemRequest{{ProductID: product.ID, Quantity: 1}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ADDRESS_NOT_FOUND", domainErr.Code)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	svc, _, _, _, buyerID, addressID := newCheckoutFixture(t)

	_, err := svc.Checkout(context.Background(), buyerID, CheckoutRequest{
		AddressID:     addressID,
		PaymentMethod: "COD",
		Items:         []CheckoutItemRequest{{ProductID: uuid.New(), Quantity: 1}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
}

func TestCheckoutInactiveProductHidden(t *testing.T) {
	svc, _, productRepo, _, buyerID, addressID := newCheckoutFixture(t)
	product := newTestProduct(t, uuid.New(), "40", 10, 1)
	product.IsActive = false
	productRepo.products[product.ID] = product

	_, err := svc.Checkout(context.Background(), buyerID, CheckoutRequest{
		AddressID:     addressID,
		PaymentMethod: "COD",
		Items:         []CheckoutItemRequest{{ProductID: product.ID, Quantity: 1}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
}

func TestCheckoutBelowMinimumOrder(t *testing.T) {
	svc, _, productRepo, _, buyerID, addressID := newCheckoutFixture(t)
	product := newTestProduct(t, uuid.New(), "40", 100, 5)
	productRepo.products[product.ID] = product

	_, err := svc.Checkout(context.Background(), buyerID, CheckoutRequest{
		AddressID:     addressID,
		PaymentMethod: "COD",
		Items:         []CheckoutItemRequest{{ProductID: product.ID, Quantity: 4}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BELOW_MIN_ORDER", domainErr.Code)
}

func TestCheckoutInsufficientStockFastFail(t *testing.T) {
	svc, _, productRepo, _, buyerID, addressID := newCheckoutFixture(t)
	product := newTestProduct(t, uuid.New(), "40", 3, 1)
	productRepo.products[product.ID] = product

	_, err := svc.Checkout(context.Background(), buyerID, CheckoutRequest{
		AddressID:     addressID,
		PaymentMethod: "COD",
		Items:         []CheckoutItemRequest{{ProductID: product.ID, Quantity: 4}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
}

func TestCheckoutCommitConflictSurfacesInsufficientStock(t *testing.T) {
	svc, orderRepo, productRepo, _, buyerID, addressID := newCheckoutFixture(t)
	product := newTestProduct(t, uuid.New(), "40", 10, 1)
	productRepo.products[product.ID] = product

	// Another order won the stock between the fast check and the commit.
	orderRepo.commitErr = fmt.Errorf("product %s: %w", product.ID, shared.ErrInsufficientStock)

	_, err := svc.Checkout(context.Background(), buyerID, CheckoutRequest{
		AddressID:     addressID,
		PaymentMethod: "COD",
		Items:         []CheckoutItemRequest{{ProductID: product.ID, Quantity: 2}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Contains(t, domainErr.Message, product.ID.String())
}

func TestCheckoutNoZonesShipsFree(t *testing.T) {
	svc, _, productRepo, _, buyerID, addressID := newCheckoutFixture(t)
	product := newTestProduct(t, uuid.New(), "40", 10, 1)
	productRepo.products[product.ID] = product

	resp, err := svc.Checkout(context.Background(), buyerID, CheckoutRequest{
		AddressID:     addressID,
		PaymentMethod: "COD",
		Items:         []CheckoutItemRequest{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, resp.ShippingTotal.IsZero())
	assert.Equal(t, "80", resp.TotalAmount.String())
}

func TestCheckoutRepoErrorPassesThrough(t *testing.T) {
	svc, orderRepo, productRepo, _, buyerID, addressID := newCheckoutFixture(t)
	product := newTestProduct(t, uuid.New(), "40", 10, 1)
	productRepo.products[product.ID] = product
	orderRepo.commitErr = errors.New("connection reset")

	_, err := svc.Checkout(context.Background(), buyerID, CheckoutRequest{
		AddressID:     addressID,
		PaymentMethod: "COD",
		Items:         []CheckoutItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	assert.False(t, errors.As(err, &domainErr))
}
