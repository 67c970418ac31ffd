package entity

import (
	"time"

	"github.com/cakebro/bakery-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice is a finalized, fully-paid walk-in sale. Immutable once created,
// except for the back-link an order sets when it converts on delivery.
type Invoice struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Date          time.Time          `gorm:"autoCreateTime;index" json:"date"`
	TotalAmount   int64              `gorm:"not null" json:"total_amount"`
	GrandTotal    int64              `gorm:"not null" json:"grand_total"`
	PaymentMethod enum.PaymentMethod `gorm:"size:10;not null;default:'Cash'" json:"payment_method"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"customer,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// TotalQuantity returns the number of units sold across all line items
func (i *Invoice) TotalQuantity() int {
	var n int
	for _, item := range i.Items {
		n += item.Quantity
	}
	return n
}

// InvoiceItem is one priced line of an invoice. Price and Total are whole
// rupees copied from the cart at sale time.
type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"`
	Total     int64     `gorm:"not null" json:"total"`
	SizeName  string    `gorm:"size:50" json:"size_name"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// DailySale is the running per-date ledger of completed invoice sales. One row
// per calendar date; counters are only ever incremented, with a server-side
// atomic add so concurrent invoice creation stays correct.
type DailySale struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date           time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	TotalAmount    int64     `gorm:"default:0" json:"total_amount"`
	TotalOrders    int64     `gorm:"default:0" json:"total_orders"`
	TotalItemsSold int64     `gorm:"default:0" json:"total_items_sold"`
}

// BeforeCreate generates a UUID before creating a new daily sale row
func (d *DailySale) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DailySale model
func (DailySale) TableName() string {
	return "daily_sales"
}
