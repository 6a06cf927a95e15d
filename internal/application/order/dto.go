package order

import (
	"time"

	"github.com/souqbun/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutItemRequest is one cart line submitted at checkout
type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest creates an order from the buyer's cart
type CheckoutRequest struct {
	AddressID     uuid.UUID             `json:"address_id" binding:"required"`
	PaymentMethod string                `json:"payment_method" binding:"required,oneof=COD CARD BANK_TRANSFER"`
	Notes         string                `json:"notes" binding:"max=1000"`
	Items         []CheckoutItemRequest `json:"items" binding:"required,min=1,max=50,dive"`
}

// UpdateItemStatusRequest advances one line's fulfillment state
type UpdateItemStatusRequest struct {
	Status         string `json:"status" binding:"required,oneof=PROCESSING SHIPPED DELIVERED"`
	TrackingNumber string `json:"tracking_number" binding:"max=100"`
}

// OrderItemResponse is one line item in API responses
type OrderItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	OrderID        uuid.UUID       `json:"order_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductNameEn  string          `json:"product_name_en"`
	ProductNameAr  string          `json:"product_name_ar,omitempty"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	SupplierPayout decimal.Decimal `json:"supplier_payout"`
	Status         string          `json:"status"`
	TrackingNumber *string         `json:"tracking_number,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AddressSnapshotResponse is the frozen delivery address on an order
type AddressSnapshotResponse struct {
	RecipientName string `json:"recipient_name"`
	Phone         string `json:"phone,omitempty"`
	City          string `json:"city"`
	District      string `json:"district,omitempty"`
	Street        string `json:"street"`
	PostalCode    string `json:"postal_code,omitempty"`
	Details       string `json:"details,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID               `json:"id"`
	OrderNumber   string                  `json:"order_number"`
	BuyerID       uuid.UUID               `json:"buyer_id"`
	Status        string                  `json:"status"`
	PaymentMethod string                  `json:"payment_method"`
	PaymentStatus string                  `json:"payment_status"`
	Subtotal      decimal.Decimal         `json:"subtotal"`
	ShippingTotal decimal.Decimal         `json:"shipping_total"`
	PlatformFee   decimal.Decimal         `json:"platform_fee"`
	TotalAmount   decimal.Decimal         `json:"total_amount"`
	Address       AddressSnapshotResponse `json:"address"`
	Notes         string                  `json:"notes,omitempty"`
	Items         []OrderItemResponse     `json:"items"`
	CreatedAt     time.Time               `json:"created_at"`
}

// ToOrderItemResponse converts an order item to its API representation
func ToOrderItemResponse(i *order.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:             i.ID,
		OrderID:        i.OrderID,
		ProductID:      i.ProductID,
		ProductNameEn:  i.ProductNameEn,
		ProductNameAr:  i.ProductNameAr,
		Quantity:       i.Quantity,
		UnitPrice:      i.UnitPrice,
		Subtotal:       i.Subtotal,
		ShippingCost:   i.ShippingCost,
		SupplierPayout: i.SupplierPayout,
		Status:         i.ItemStatus.String(),
		TrackingNumber: i.TrackingNumber,
		CreatedAt:      i.CreatedAt,
	}
}

// ToOrderResponse converts an order aggregate to its API representation
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToOrderItemResponse(&o.Items[i])
	}
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		BuyerID:       o.BuyerID,
		Status:        o.Status.String(),
		PaymentMethod: o.PaymentMethod.String(),
		PaymentStatus: string(o.PaymentStatus),
		Subtotal:      o.Subtotal,
		ShippingTotal: o.ShippingTotal,
		PlatformFee:   o.PlatformFee,
		TotalAmount:   o.TotalAmount,
		Address: AddressSnapshotResponse{
			RecipientName: o.AddressSnapshot.RecipientName,
			Phone:         o.AddressSnapshot.Phone,
			City:          o.AddressSnapshot.City,
			District:      o.AddressSnapshot.District,
			Street:        o.AddressSnapshot.Street,
			PostalCode:    o.AddressSnapshot.PostalCode,
			Details:       o.AddressSnapshot.Details,
		},
		Notes:     o.Notes,
		Items:     items,
		CreatedAt: o.CreatedAt,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}

// ToOrderItemResponses converts a slice of order items
func ToOrderItemResponses(items []order.OrderItem) []OrderItemResponse {
	responses := make([]OrderItemResponse, len(items))
	for i := range items {
		responses[i] = ToOrderItemResponse(&items[i])
	}
	return responses
}
