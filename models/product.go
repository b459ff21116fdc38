package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID  `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Price       float64    `json:"price" bson:"price"`
	Category    string     `json:"category" bson:"category"`
	Brand       string     `json:"brand" bson:"brand"`
	Thumbnail   string     `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Images      []string   `json:"images,omitempty" bson:"images,omitempty"`
	Stock       int        `json:"stock" bson:"stock"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt   *time.Time `json:"-" bson:"deleted_at,omitempty"`
}

type Category struct {
	ID    uuid.UUID `json:"id" bson:"_id"`
	Label string    `json:"label" bson:"label"`
	Value string    `json:"value" bson:"value"`
}

type Brand struct {
	ID    uuid.UUID `json:"id" bson:"_id"`
	Label string    `json:"label" bson:"label"`
	Value string    `json:"value" bson:"value"`
}
