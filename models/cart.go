package models

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// Total returns the cart total in major currency units.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
