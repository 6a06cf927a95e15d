package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusRefunded       OrderStatus = "REFUNDED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPendingPayment, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Note: nothing currently drives an order past its initial status; only
// item-level statuses advance. The machine is kept complete so admin
// tooling can adopt it without a schema change.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPendingPayment:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusProcessing || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusShipped
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered:
		return target == OrderStatusRefunded
	}
	return false
}

// PaymentMethod represents how the buyer pays
type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "COD"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodCard, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus represents the capture state of the payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// AddressSnapshot is the delivery address frozen at order time. It is
// denormalized into the order row and never mutated afterwards, so
// later edits to the buyer's address book cannot rewrite history.
type AddressSnapshot struct {
	RecipientName string `json:"recipient_name"`
	Phone         string `json:"phone"`
	City          string `json:"city"`
	District      string `json:"district,omitempty"`
	Street        string `json:"street"`
	PostalCode    string `json:"postal_code,omitempty"`
	Details       string `json:"details,omitempty"`
}

// Value implements driver.Valuer, storing the snapshot as JSON
func (a AddressSnapshot) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *AddressSnapshot) Scan(value any) error {
	if value == nil {
		*a = AddressSnapshot{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("cannot scan %T into AddressSnapshot", value)
	}
}

// Order is the aggregate root created once at checkout. Totals and the
// address snapshot are immutable after creation; only status fields
// change later.
type Order struct {
	shared.BaseEntity
	BuyerID         uuid.UUID
	OrderNumber     string
	Status          OrderStatus
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	Subtotal        decimal.Decimal
	ShippingTotal   decimal.Decimal
	PlatformFee     decimal.Decimal
	TotalAmount     decimal.Decimal
	AddressSnapshot AddressSnapshot
	Notes           string

	Items []OrderItem
}

// NewOrder creates an empty order for a buyer. Cash on delivery starts
// CONFIRMED; every other payment method waits for capture.
func NewOrder(buyerID uuid.UUID, paymentMethod PaymentMethod, address AddressSnapshot, notes string) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID is required")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if address.RecipientName == "" || address.City == "" || address.Street == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Delivery address must include recipient, city and street")
	}

	status := OrderStatusPendingPayment
	if paymentMethod == PaymentMethodCOD {
		status = OrderStatusConfirmed
	}

	return &Order{
		BaseEntity:      shared.NewBaseEntity(),
		BuyerID:         buyerID,
		OrderNumber:     NewOrderNumber(),
		Status:          status,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   PaymentStatusPending,
		Subtotal:        decimal.Zero,
		ShippingTotal:   decimal.Zero,
		PlatformFee:     decimal.Zero,
		TotalAmount:     decimal.Zero,
		AddressSnapshot: address,
		Notes:           notes,
	}, nil
}

// AddItem appends a line item and links it to this order
func (o *Order) AddItem(item *OrderItem) {
	item.OrderID = o.ID
	o.Items = append(o.Items, *item)
}

// Finalize computes order totals from the line items:
// subtotal and shipping are straight sums, the platform fee is
// feeRate x subtotal rounded to 2dp, and the total excludes the fee
// (the fee is carved out of supplier payouts, not added on top).
func (o *Order) Finalize(feeRate decimal.Decimal) error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	subtotal := decimal.Zero
	shipping := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Subtotal)
		shipping = shipping.Add(item.ShippingCost)
	}

	o.Subtotal = subtotal
	o.ShippingTotal = shipping
	o.PlatformFee = subtotal.Mul(feeRate).Round(2)
	o.TotalAmount = subtotal.Add(shipping)
	return nil
}

// IsOwnedBy reports whether the order belongs to the given buyer
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.BuyerID == userID
}
