package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. An order becomes StatusPaid only through a verified
// provider webhook, never from a client-reported outcome.
const (
	OrderStatusPending       = "pending"
	OrderStatusPaymentFailed = "payment_failed"
	OrderStatusPaid          = "paid"
	OrderStatusDispatched    = "dispatched"
	OrderStatusDelivered     = "delivered"
	OrderStatusCancelled     = "cancelled"
)

type Order struct {
	ID            uuid.UUID   `json:"id" bson:"_id"`
	UserID        uuid.UUID   `json:"user_id" bson:"user_id"`
	Items         []OrderItem `json:"items" bson:"items"`
	TotalAmount   float64     `json:"total_amount" bson:"total_amount"`
	TotalItems    int         `json:"total_items" bson:"total_items"`
	Status        string      `json:"status" bson:"status"`
	PaymentIntent string      `json:"payment_intent,omitempty" bson:"payment_intent,omitempty"`
	Address       *Address    `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt     time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" bson:"updated_at"`
	PaidAt        *time.Time  `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
}

// OrderItem snapshots the product price at checkout time.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id" bson:"product_id"`
	Title     string    `json:"title" bson:"title"`
	Price     float64   `json:"price" bson:"price"`
	Quantity  int       `json:"quantity" bson:"quantity"`
}
