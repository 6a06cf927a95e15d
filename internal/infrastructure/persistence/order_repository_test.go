package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/souqbun/backend/internal/domain/catalog"
	"github.com/souqbun/backend/internal/domain/order"
	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestCreateWithItemsRollsBackOnStockConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormOrderRepository(db)

	buyerID := uuid.New()
	o, err := order.NewOrder(buyerID, order.PaymentMethodCOD, order.AddressSnapshot{
		RecipientName: "Lina", City: "Riyadh", Street: "Olaya St 10",
	}, "")
	require.NoError(t, err)

	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity - \$1 WHERE id = \$2 AND deleted_at IS NULL AND stock_quantity >= \$3`).
		WithArgs(5, productID.String(), 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = repo.CreateWithItems(context.Background(), o, []order.StockDecrement{
		{ProductID: productID, Quantity: 5},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Contains(t, err.Error(), productID.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithItemsAppliesEveryDecrement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormOrderRepository(db)

	o, err := order.NewOrder(uuid.New(), order.PaymentMethodCOD, order.AddressSnapshot{
		RecipientName: "Lina", City: "Riyadh", Street: "Olaya St 10",
	}, "")
	require.NoError(t, err)

	firstID := uuid.New()
	secondID := uuid.New()

	// The first decrement succeeds, the second hits a sold-out row and
	// the whole transaction rolls back.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products"`).
		WithArgs(2, firstID.String(), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "products"`).
		WithArgs(9, secondID.String(), 9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = repo.CreateWithItems(context.Background(), o, []order.StockDecrement{
		{ProductID: firstID, Quantity: 2},
		{ProductID: secondID, Quantity: 9},
	})

	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Contains(t, err.Error(), secondID.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithItemsPropagatesExecError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormOrderRepository(db)

	o, err := order.NewOrder(uuid.New(), order.PaymentMethodCOD, order.AddressSnapshot{
		RecipientName: "Lina", City: "Riyadh", Street: "Olaya St 10",
	}, "")
	require.NoError(t, err)

	execErr := errors.New("pq: deadlock detected")
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products"`).WillReturnError(execErr)
	mock.ExpectRollback()

	err = repo.CreateWithItems(context.Background(), o, []order.StockDecrement{
		{ProductID: uuid.New(), Quantity: 1},
	})

	assert.ErrorIs(t, err, execErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two checkouts race for the same stock. The conditional decrement
// serializes them inside the database, so exactly one commits and the
// loser leaves no rows behind.
func TestCreateWithItemsSerializesCompetingCheckouts(t *testing.T) {
	db := newTestDB(t, &catalog.Product{}, &order.Order{}, &order.OrderItem{})
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	supplierID := uuid.New()
	product, err := catalog.NewProduct(supplierID, catalog.ProductSpec{
		NameEn:           "Yemeni Mocha",
		NameAr:           "موكا يمنية",
		BasePrice:        decimal.NewFromInt(50),
		Unit:             catalog.UnitKilogram,
		StockQuantity:    10,
		MinOrderQuantity: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)

	feeRate := decimal.NewFromFloat(0.05)
	newCheckout := func() *order.Order {
		o, err := order.NewOrder(uuid.New(), order.PaymentMethodCOD, order.AddressSnapshot{
			RecipientName: "Lina", City: "Riyadh", Street: "Olaya St 10",
		}, "")
		require.NoError(t, err)
		item, err := order.NewOrderItem(product.ID, supplierID, product.NameEn, product.NameAr,
			6, decimal.NewFromInt(50), decimal.Zero, feeRate)
		require.NoError(t, err)
		o.AddItem(item)
		require.NoError(t, o.Finalize(feeRate))
		return o
	}
	decrements := []order.StockDecrement{{ProductID: product.ID, Quantity: 6}}

	require.NoError(t, repo.CreateWithItems(ctx, newCheckout(), decrements))

	err = repo.CreateWithItems(ctx, newCheckout(), decrements)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	var stored catalog.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 4, stored.StockQuantity)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&order.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&order.OrderItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 1, orderCount)
	assert.EqualValues(t, 1, itemCount)
}

func TestFindByIDMapsRecordNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormOrderRepository(db)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WithArgs(id.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
