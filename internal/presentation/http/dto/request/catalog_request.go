package request

import "github.com/google/uuid"

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=150"`
	Image       *string `json:"image"`
	PricingMode string  `json:"pricing_mode"`
	Visible     *bool   `json:"visible"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=150"`
	Image       *string `json:"image"`
	PricingMode *string `json:"pricing_mode"`
	Visible     *bool   `json:"visible"`
}

// ProductRequest represents a product create or update request. Prices are
// whole rupees; the fields required depend on the category's pricing mode.
type ProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	Name          string     `json:"name" binding:"omitempty,min=2,max=150"`
	Image         *string    `json:"image"`
	OriginalPrice *int64     `json:"original_price" binding:"omitempty,min=0"`
	SellingPrice  *int64     `json:"selling_price" binding:"omitempty,min=0"`
	PriceHalfKg   *int64     `json:"price_half_kg" binding:"omitempty,min=0"`
	PriceOneKg    *int64     `json:"price_one_kg" binding:"omitempty,min=0"`
	PriceSmall    *int64     `json:"price_small" binding:"omitempty,min=0"`
	PriceMedium   *int64     `json:"price_medium" binding:"omitempty,min=0"`
	PriceLarge    *int64     `json:"price_large" binding:"omitempty,min=0"`
	Visible       *bool      `json:"visible"`
	Trending      *bool      `json:"trending"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	Visible    bool   `form:"visible"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
