package repository

import (
	"context"
	"time"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	domainRepo "github.com/cakebro/bakery-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) TotalInWindow(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(grand_total), 0)
		FROM invoices
		WHERE date BETWEEN ? AND ?
	`, start, end).Scan(&total).Error
	return total, err
}

func (r *reportRepository) ProductBreakdown(ctx context.Context, start, end time.Time) ([]domainRepo.ProductSalesRow, error) {
	var rows []domainRepo.ProductSalesRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.name as product_name,
			COALESCE(ii.size_name, 'Standard') as size_name,
			COALESCE(SUM(ii.quantity), 0) as total_quantity,
			COALESCE(SUM(ii.total), 0) as total_value
		FROM invoice_items ii
		JOIN products p ON p.id = ii.product_id
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.date BETWEEN ? AND ?
		GROUP BY p.name, ii.size_name
		ORDER BY p.name, size_name, total_quantity DESC
	`, start, end).Scan(&rows).Error

	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) InvoicesInWindow(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Find(&invoices).Error
	return invoices, err
}
