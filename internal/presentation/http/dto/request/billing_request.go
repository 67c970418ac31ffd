package request

import "github.com/google/uuid"

// CartLineRequest is one submitted cart line. Quantity and price arrive as
// strings straight from the billing form and are validated server-side.
type CartLineRequest struct {
	ProductID    uuid.UUID `json:"product_id" binding:"required"`
	Quantity     string    `json:"quantity" binding:"required"`
	Price        string    `json:"price" binding:"required"`
	SizeName     string    `json:"size_name"`
	CustomWeight string    `json:"custom_weight"`
}

// CreateInvoiceRequest represents an invoice creation request
type CreateInvoiceRequest struct {
	CustomerPhone string            `json:"customer_phone"`
	CustomerName  string            `json:"customer_name"`
	PaymentMethod string            `json:"payment_method" binding:"required"`
	GivenAmount   string            `json:"given_amount"`
	Items         []CartLineRequest `json:"items" binding:"required"`
}

// CreateOrderRequest represents an advance order creation request
type CreateOrderRequest struct {
	CustomerPhone       string            `json:"customer_phone" binding:"required"`
	CustomerName        string            `json:"customer_name" binding:"required"`
	Items               []CartLineRequest `json:"items" binding:"required"`
	IsCustomized        bool              `json:"is_customized"`
	ContactNumber       string            `json:"contact_number"`
	CustomizationCharge string            `json:"customization_charge"`
	Message             string            `json:"message"`
	AdvanceAmount       string            `json:"advance_amount"`
	PaymentMethod       string            `json:"payment_method"`
	DeliveryTime        string            `json:"delivery_time" binding:"required"`
}

// InvoiceFilterRequest represents invoice list filter parameters
type InvoiceFilterRequest struct {
	FromDate  string `form:"from_date"`
	ToDate    string `form:"to_date"`
	Phone     string `form:"phone"`
	MinAmount *int64 `form:"min_amount"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// OrderFilterRequest represents order list filter parameters
type OrderFilterRequest struct {
	FromDate string `form:"from_date"`
	ToDate   string `form:"to_date"`
	Phone    string `form:"phone"`
	OrderID  string `form:"order_id"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}
