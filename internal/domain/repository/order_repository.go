package repository

import (
	"context"
	"time"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	"github.com/cakebro/bakery-api/pkg/pagination"
	"github.com/google/uuid"
)

// OrderFilterParams represents order list filter parameters
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	FromDate   *time.Time
	ToDate     *time.Time
	Phone      string
	OrderID    *uuid.UUID
}

// OrderRepository defines the interface for order data access.
// CreateGraph persists the order and its items in one transaction.
// ToggleDelivery flips the delivery status and, on the first transition to
// delivered, creates the mirroring invoice and links it, all atomically.
type OrderRepository interface {
	CreateGraph(ctx context.Context, order *entity.Order, items []entity.OrderItem) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	ToggleDelivery(ctx context.Context, id uuid.UUID) (*entity.Order, error)
}
