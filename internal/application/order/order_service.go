package order

import (
	"context"

	"github.com/souqbun/backend/internal/domain/order"
	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order reads and item-level fulfillment updates
type OrderService struct {
	orderRepo order.OrderRepository
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo order.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orderRepo: orderRepo, logger: logger}
}

// ListMine returns the buyer's orders, newest first
func (s *OrderService) ListMine(ctx context.Context, buyerID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// GetByID returns one order. Only the owning buyer or an admin may
// read it; others get not-found so order ids cannot be probed.
func (s *OrderService) GetByID(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !o.IsOwnedBy(requesterID) {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListAll returns orders for the admin console, optionally filtered by
// status or payment status and searched by order number
func (s *OrderService) ListAll(ctx context.Context, status, paymentStatus, search string, page, pageSize int) ([]OrderResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.Search = search
	if status != "" {
		if !order.OrderStatus(status).IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+status)
		}
		filter.Filters["status"] = status
	}
	if paymentStatus != "" {
		filter.Filters["payment_status"] = paymentStatus
	}

	orders, total, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// ListSupplierItems returns the line items a supplier fulfills
func (s *OrderService) ListSupplierItems(ctx context.Context, supplierID uuid.UUID) ([]OrderItemResponse, error) {
	items, err := s.orderRepo.FindItemsBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return ToOrderItemResponses(items), nil
}

// UpdateItemStatus advances one line's fulfillment state. Only the
// fulfilling supplier may update it, and only one step forward.
func (s *OrderService) UpdateItemStatus(ctx context.Context, supplierID, itemID uuid.UUID, req UpdateItemStatusRequest) (*OrderItemResponse, error) {
	item, err := s.orderRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsFulfilledBy(supplierID) {
		return nil, shared.ErrNotFound
	}

	if err := item.AdvanceStatus(order.ItemStatus(req.Status), req.TrackingNumber); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Order item status updated",
		zap.String("item_id", item.ID.String()),
		zap.String("status", item.ItemStatus.String()))

	response := ToOrderItemResponse(item)
	return &response, nil
}
