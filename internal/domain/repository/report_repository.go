package repository

import (
	"context"
	"time"

	"github.com/cakebro/bakery-api/internal/domain/entity"
)

// ProductSalesRow is one (product, size) aggregate in a sales window
type ProductSalesRow struct {
	ProductName   string `json:"product_name"`
	SizeName      string `json:"size_name"`
	TotalQuantity int64  `json:"total_quantity"`
	TotalValue    int64  `json:"total_value"`
}

// ReportRepository computes time-windowed sales aggregates over invoices
type ReportRepository interface {
	TotalInWindow(ctx context.Context, start, end time.Time) (int64, error)
	ProductBreakdown(ctx context.Context, start, end time.Time) ([]ProductSalesRow, error)
	InvoicesInWindow(ctx context.Context, start, end time.Time) ([]entity.Invoice, error)
}
