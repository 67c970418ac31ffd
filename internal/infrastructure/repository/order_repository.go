package repository

import (
	"context"
	"errors"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	domainRepo "github.com/cakebro/bakery-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

// CreateGraph persists the order and its line items in one transaction.
// The daily-sale ledger is untouched here: an order only counts as a sale
// once it converts to an invoice.
func (r *orderRepository) CreateGraph(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		return tx.Create(&items).Error
	})
}

func (r *orderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Invoice").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if params.FromDate != nil {
		query = query.Where("date >= ?", *params.FromDate)
	}
	if params.ToDate != nil {
		query = query.Where("date <= ?", *params.ToDate)
	}
	if params.Phone != "" {
		query = query.Joins("JOIN customers ON customers.id = orders.customer_id").
			Where("customers.phone ILIKE ?", "%"+params.Phone+"%")
	}
	if params.OrderID != nil {
		query = query.Where("orders.id = ?", *params.OrderID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("date DESC").
		Find(&orders).Error

	return orders, total, err
}

// ToggleDelivery flips the order's delivery status inside one transaction.
// On the first transition into delivered it creates the mirroring invoice,
// copies the order items and links the invoice back to the order. The row is
// locked for the duration so a double-tap cannot convert twice.
func (r *orderRepository) ToggleDelivery(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var result *entity.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order entity.Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			First(&order, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result = nil
			return nil
		}
		if err != nil {
			return err
		}

		order.Status = !order.Status
		if err := tx.Model(&entity.Order{}).Where("id = ?", order.ID).
			Update("status", order.Status).Error; err != nil {
			return err
		}

		if order.Status && order.InvoiceID == nil {
			invoice, items := order.MirrorInvoice()
			if err := tx.Create(invoice).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].InvoiceID = invoice.ID
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(&entity.Order{}).Where("id = ?", order.ID).
				Update("invoice_id", invoice.ID).Error; err != nil {
				return err
			}
			order.InvoiceID = &invoice.ID
			order.Invoice = invoice
		}

		result = &order
		return nil
	})

	return result, err
}
