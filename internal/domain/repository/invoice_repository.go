package repository

import (
	"context"
	"time"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	"github.com/cakebro/bakery-api/pkg/pagination"
	"github.com/google/uuid"
)

// InvoiceFilterParams represents invoice list filter parameters
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	FromDate   *time.Time
	ToDate     *time.Time
	Phone      string
	MinAmount  *int64
}

// InvoiceRepository defines the interface for invoice data access.
// CreateGraph persists the invoice, its items and the daily-sale increment in
// one transaction; either everything lands or nothing does.
type InvoiceRepository interface {
	CreateGraph(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
}

// DailySaleRepository reads the per-date sales ledger
type DailySaleRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*entity.DailySale, error)
}
