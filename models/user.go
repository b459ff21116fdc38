package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles recognized on a user record.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID        uuid.UUID  `json:"id" bson:"_id"`
	Email     string     `json:"email" bson:"email"`
	Password  []byte     `json:"-" bson:"password"`
	Salt      []byte     `json:"-" bson:"salt"`
	Role      string     `json:"role" bson:"role"`
	Name      string     `json:"name,omitempty" bson:"name,omitempty"`
	Addresses []Address  `json:"addresses,omitempty" bson:"addresses,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt *time.Time `json:"-" bson:"deleted_at,omitempty"`
}

type Address struct {
	Type       string `json:"type" bson:"type"`
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
}

// SanitizedUser is the user representation with all credential material
// removed, safe to embed in tokens or send to clients.
type SanitizedUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// Sanitize strips credential material from a user record.
func (u *User) Sanitize() *SanitizedUser {
	return &SanitizedUser{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}
