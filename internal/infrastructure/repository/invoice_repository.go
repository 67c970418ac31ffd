package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	domainRepo "github.com/cakebro/bakery-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// CreateGraph persists the invoice, its line items and the daily-sale counter
// update in a single transaction. The counter increment runs as a server-side
// atomic add so concurrent invoices for the same date never lose updates.
func (r *invoiceRepository) CreateGraph(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}

		var itemsSold int64
		for i := range items {
			items[i].InvoiceID = invoice.ID
			itemsSold += int64(items[i].Quantity)
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		return recordDailySale(tx, time.Now(), invoice.GrandTotal, itemsSold)
	})
}

// recordDailySale upserts today's ledger row and applies atomic increments.
// The zero row is inserted with ON CONFLICT DO NOTHING so two invoices racing
// on a fresh date both land on the same row.
func recordDailySale(tx *gorm.DB, at time.Time, amount, itemsSold int64) error {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())

	seed := entity.DailySale{Date: day}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).Create(&seed).Error; err != nil {
		return err
	}

	return tx.Model(&entity.DailySale{}).
		Where("date = ?", day).
		Updates(map[string]interface{}{
			"total_amount":     gorm.Expr("total_amount + ?", amount),
			"total_orders":     gorm.Expr("total_orders + ?", 1),
			"total_items_sold": gorm.Expr("total_items_sold + ?", itemsSold),
		}).Error
}

func (r *invoiceRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Product").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if params.FromDate != nil {
		query = query.Where("date >= ?", *params.FromDate)
	}
	if params.ToDate != nil {
		query = query.Where("date <= ?", *params.ToDate)
	}
	if params.Phone != "" {
		query = query.Joins("JOIN customers ON customers.id = invoices.customer_id").
			Where("customers.phone ILIKE ?", "%"+params.Phone+"%")
	}
	if params.MinAmount != nil {
		query = query.Where("grand_total >= ?", *params.MinAmount)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("date DESC").
		Find(&invoices).Error

	return invoices, total, err
}

type dailySaleRepository struct {
	db *gorm.DB
}

// NewDailySaleRepository creates a new daily sale repository
func NewDailySaleRepository(db *gorm.DB) domainRepo.DailySaleRepository {
	return &dailySaleRepository{db: db}
}

func (r *dailySaleRepository) GetByDate(ctx context.Context, date time.Time) (*entity.DailySale, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	var sale entity.DailySale
	err := r.db.WithContext(ctx).First(&sale, "date = ?", day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}
