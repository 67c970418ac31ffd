package entity

import (
	"time"

	"github.com/cakebro/bakery-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a scheduled, advance-paid custom sale. It starts pending
// (Status=false) and converts into an Invoice exactly once when marked
// delivered; the InvoiceID link is set at conversion and never cleared.
type Order struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID          *uuid.UUID          `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	InvoiceID           *uuid.UUID          `gorm:"type:uuid;uniqueIndex" json:"invoice_id,omitempty"`
	Date                time.Time           `gorm:"autoCreateTime;index" json:"date"`
	TotalAmount         int64               `gorm:"not null" json:"total_amount"`
	IsCustomized        bool                `gorm:"default:false" json:"is_customized"`
	ContactNumber       string              `gorm:"size:15" json:"contact_number,omitempty"`
	CustomizationCharge int64               `gorm:"default:0" json:"customization_charge"`
	Message             string              `gorm:"type:text" json:"message,omitempty"`
	DeliveryAt          time.Time           `gorm:"not null" json:"delivery_at"`
	AdvanceAmount       int64               `gorm:"default:0" json:"advance_amount"`
	PaymentMethod       *enum.PaymentMethod `gorm:"size:10" json:"payment_method,omitempty"`
	Status              bool                `gorm:"default:false" json:"status"`

	// Relationships
	Customer *Customer   `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"customer,omitempty"`
	Invoice  *Invoice    `gorm:"foreignKey:InvoiceID;constraint:OnDelete:SET NULL" json:"invoice,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// RemainingBalance is the amount still due on delivery
func (o *Order) RemainingBalance() int64 {
	return o.TotalAmount - o.AdvanceAmount
}

// MirrorInvoice builds the invoice graph recorded when the order is delivered:
// same customer, total and payment method, one invoice item per order item.
// The invoice ID is left for the persistence layer to generate.
func (o *Order) MirrorInvoice() (*Invoice, []InvoiceItem) {
	method := enum.PaymentCash
	if o.PaymentMethod != nil {
		method = *o.PaymentMethod
	}
	inv := &Invoice{
		CustomerID:    o.CustomerID,
		TotalAmount:   o.TotalAmount,
		GrandTotal:    o.TotalAmount,
		PaymentMethod: method,
	}
	items := make([]InvoiceItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, InvoiceItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Total:     it.Total,
			SizeName:  it.SizeName,
		})
	}
	return inv, items
}

// OrderItem is one priced line of an order, owned by its parent order.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"`
	Total     int64     `gorm:"not null" json:"total"`
	SizeName  string    `gorm:"size:50" json:"size_name"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order item
func (it *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
