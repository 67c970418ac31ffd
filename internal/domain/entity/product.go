package entity

import (
	"time"

	"github.com/cakebro/bakery-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products and fixes which pricing shape they use
type Category struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name        string           `gorm:"size:150;not null" json:"name"`
	Image       *string          `gorm:"size:255" json:"image,omitempty"`
	PricingMode enum.PricingMode `gorm:"size:20;not null;default:'flat'" json:"pricing_mode"`
	Visible     bool             `gorm:"default:true" json:"visible"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Product is a sellable catalog item. Prices are whole rupees; only the
// fields matching the category's pricing mode are populated. Line items copy
// the price at sale time, so editing a product never rewrites history.
type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Name       string    `gorm:"size:150;not null" json:"name"`
	Image      *string   `gorm:"size:255" json:"image,omitempty"`

	// Flat pricing
	OriginalPrice *int64 `json:"original_price,omitempty"`
	SellingPrice  *int64 `json:"selling_price,omitempty"`

	// Weight pricing (cakes)
	PriceHalfKg *int64 `json:"price_half_kg,omitempty"`
	PriceOneKg  *int64 `json:"price_one_kg,omitempty"`

	// Size pricing (milkshakes, pizza)
	PriceSmall  *int64 `json:"price_small,omitempty"`
	PriceMedium *int64 `json:"price_medium,omitempty"`
	PriceLarge  *int64 `json:"price_large,omitempty"`

	Visible   bool           `gorm:"default:true" json:"visible"`
	Trending  bool           `gorm:"default:false" json:"trending"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
