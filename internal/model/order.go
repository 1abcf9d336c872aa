package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatusPending is the status stamped on every order at checkout time.
const OrderStatusPending = "pending"

// Order represents a distributor order created from a cart checkout.
type Order struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	TotalAmount float64   `json:"totalAmount" db:"total_amount"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in a persisted order.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UnitPrice float64   `json:"unitPrice" db:"unit_price"`
}

// OrderRequest is the immutable snapshot handed to the order service at
// checkout time. It is derived from the cart and never mutated after emission.
type OrderRequest struct {
	UserID      string             `json:"userId"`
	TotalAmount float64            `json:"totalAmount"`
	Status      string             `json:"status"`
	Items       []OrderItemRequest `json:"items"`
}

// OrderItemRequest is a single item in an order request.
type OrderItemRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// OrderResponse is the API view of an order with its items.
type OrderResponse struct {
	ID          uuid.UUID   `json:"id"`
	UserID      string      `json:"userId"`
	TotalAmount float64     `json:"totalAmount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	Items       []OrderItem `json:"items"`
}
