package order

import (
	"context"
	"errors"

	"github.com/souqbun/backend/internal/domain/catalog"
	"github.com/souqbun/backend/internal/domain/identity"
	"github.com/souqbun/backend/internal/domain/order"
	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutService assembles and commits orders. Each cart line is
// priced through the product's tier schedule, charged the product's
// first shipping zone, and credited to its supplier net of the
// platform fee. The final commit re-validates stock inside one
// database transaction.
type CheckoutService struct {
	orderRepo   order.OrderRepository
	productRepo catalog.ProductRepository
	addressRepo identity.AddressRepository
	feeRate     decimal.Decimal
	logger      *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	orderRepo order.OrderRepository,
	productRepo catalog.ProductRepository,
	addressRepo identity.AddressRepository,
	feeRate decimal.Decimal,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		feeRate:     feeRate,
		logger:      logger,
	}
}

// Checkout creates an order from the buyer's cart
func (s *CheckoutService) Checkout(ctx context.Context, buyerID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, req.AddressID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ADDRESS_NOT_FOUND", "Delivery address not found")
		}
		return nil, err
	}
	if !address.IsOwnedBy(buyerID) {
		return nil, shared.NewDomainError("ADDRESS_NOT_FOUND", "Delivery address not found")
	}

	o, err := order.NewOrder(buyerID, order.PaymentMethod(req.PaymentMethod), snapshotOf(address), req.Notes)
	if err != nil {
		return nil, err
	}

	decrements := make([]order.StockDecrement, 0, len(req.Items))
	for _, line := range req.Items {
		item, err := s.buildItem(ctx, line)
		if err != nil {
			return nil, err
		}
		o.AddItem(item)
		decrements = append(decrements, order.StockDecrement{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	if err := o.Finalize(s.feeRate); err != nil {
		return nil, err
	}

	if err := s.orderRepo.CreateWithItems(ctx, o, decrements); err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", err.Error())
		}
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_number", o.OrderNumber),
		zap.String("buyer_id", buyerID.String()),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.TotalAmount.StringFixed(2)))

	response := ToOrderResponse(o)
	return &response, nil
}

// buildItem prices one cart line against the current catalog state
func (s *CheckoutService) buildItem(ctx context.Context, line CheckoutItemRequest) (*order.OrderItem, error) {
	product, err := s.productRepo.FindByID(ctx, line.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product "+line.ProductID.String()+" not found")
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product "+line.ProductID.String()+" not found")
	}
	if line.Quantity < product.MinOrderQuantity {
		return nil, shared.NewDomainError("BELOW_MIN_ORDER",
			"Product "+product.NameEn+" requires a minimum order of "+
				decimal.NewFromInt(int64(product.MinOrderQuantity)).String())
	}
	// Fast-fail check; the commit transaction is the authoritative one.
	if !product.InStock(line.Quantity) {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
			"Not enough stock for product "+product.NameEn)
	}

	unitPrice := catalog.EffectiveUnitPrice(product.BasePrice, product.PriceTiers, line.Quantity)
	shippingCost := firstZoneCost(product.ShippingZones)

	return order.NewOrderItem(product.ID, product.SupplierID, product.NameEn, product.NameAr,
		line.Quantity, unitPrice, shippingCost, s.feeRate)
}

// firstZoneCost charges the first configured zone; products with no
// zones ship free. No matching against the buyer's address happens.
func firstZoneCost(zones []catalog.ShippingZone) decimal.Decimal {
	if len(zones) == 0 {
		return decimal.Zero
	}
	return zones[0].Cost
}

func snapshotOf(a *identity.Address) order.AddressSnapshot {
	return order.AddressSnapshot{
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		City:          a.City,
		District:      a.District,
		Street:        a.Street,
		PostalCode:    a.PostalCode,
		Details:       a.Details,
	}
}
