package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses mirror the subset of provider intent states this service
// tracks. Succeeded and failed are terminal.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

// Payment correlates a Stripe payment intent with an order. The provider owns
// the authoritative intent state; this record only mirrors webhook-confirmed
// transitions.
type Payment struct {
	ID              uuid.UUID  `json:"id" bson:"_id"`
	OrderRef        string     `json:"order_ref" bson:"order_ref"`
	UserID          uuid.UUID  `json:"user_id" bson:"user_id"`
	Amount          int64      `json:"amount" bson:"amount"` // minor currency units
	Currency        string     `json:"currency" bson:"currency"`
	Status          string     `json:"status" bson:"status"`
	StripePaymentID string     `json:"stripe_payment_id" bson:"stripe_payment_id"`
	EventPayload    string     `json:"-" bson:"event_payload,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" bson:"updated_at"`
	SucceededAt     *time.Time `json:"succeeded_at,omitempty" bson:"succeeded_at,omitempty"`
	FailedAt        *time.Time `json:"failed_at,omitempty" bson:"failed_at,omitempty"`
}

// PaymentEvent is the message published to Kafka when a payment reaches a
// terminal status.
type PaymentEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	PaymentID string    `json:"payment_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}
