package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// WalkInPhone is recorded on invoices created without a phone number.
	WalkInPhone = "+910000000000"
	// WalkInName is the placeholder display name for anonymous counter sales.
	// Resolving a customer with this name never overwrites a stored name.
	WalkInName = "Walk-in Customer"
)

// Customer identifies a buyer by phone number. Customers are created lazily on
// the first transaction that references a new phone and are never deleted
// automatically.
type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:150" json:"name"`
	Phone     string         `gorm:"size:15;uniqueIndex" json:"phone"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"-"`
	Orders   []Order   `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
