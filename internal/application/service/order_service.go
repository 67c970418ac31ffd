package service

import (
	"context"
	"strings"
	"time"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	"github.com/cakebro/bakery-api/internal/domain/enum"
	"github.com/cakebro/bakery-api/internal/domain/repository"
	"github.com/cakebro/bakery-api/pkg/apperror"
	"github.com/cakebro/bakery-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// deliveryTimeLayouts are the accepted delivery timestamp formats. The second
// one matches what an HTML datetime-local input submits.
var deliveryTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

// OrderService orchestrates advance-paid custom orders and their conversion
// into invoices on delivery.
type OrderService struct {
	orderRepo repository.OrderRepository
	customers *CustomerService
	pricer    *CartPricer
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	customers *CustomerService,
	pricer *CartPricer,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		customers: customers,
		pricer:    pricer,
	}
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	CustomerPhone       string
	CustomerName        string
	Lines               []CartLine
	IsCustomized        bool
	ContactNumber       string
	CustomizationCharge string
	Message             string
	AdvanceAmount       string
	PaymentMethod       enum.PaymentMethod
	DeliveryTime        string
}

// CreateOrder prices the cart, validates the delivery time and advance, and
// persists the order graph atomically. Orders do not touch the daily-sale
// ledger; the sale is counted when the order converts on delivery.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return nil, apperror.NewBadRequestError("Customer phone number is required.")
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, apperror.NewBadRequestError("Customer name is required.")
	}

	cart, err := s.pricer.PriceCart(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	deliveryAt, err := parseDeliveryTime(input.DeliveryTime)
	if err != nil {
		return nil, err
	}

	charge, err := parseOptionalAmount(input.CustomizationCharge)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid customization charge value.")
	}
	advance, err := parseOptionalAmount(input.AdvanceAmount)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid advance amount value.")
	}

	total := cart.GrandTotal + charge
	if advance > total {
		return nil, apperror.NewBusinessRuleError("Advance amount cannot be greater than the total order amount.")
	}

	customer, err := s.customers.Resolve(ctx, input.CustomerPhone, input.CustomerName)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		CustomerID:          &customer.ID,
		TotalAmount:         total,
		IsCustomized:        input.IsCustomized,
		CustomizationCharge: charge,
		Message:             strings.TrimSpace(input.Message),
		DeliveryAt:          deliveryAt,
		AdvanceAmount:       advance,
	}
	if input.IsCustomized {
		order.ContactNumber = strings.TrimSpace(input.ContactNumber)
	}
	if advance > 0 {
		if !input.PaymentMethod.IsValid() {
			return nil, apperror.NewBadRequestError("A valid payment method is required for the advance.")
		}
		method := input.PaymentMethod
		order.PaymentMethod = &method
	}

	items := make([]entity.OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, entity.OrderItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
			Total:     line.LineTotal,
			SizeName:  line.SizeName,
		})
	}

	if err := s.orderRepo.CreateGraph(ctx, order, items); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// OrderReceipt is the order plus the figures printed on the two receipt copies
type OrderReceipt struct {
	Order            *entity.Order `json:"order"`
	RemainingBalance int64         `json:"remaining_balance"`
	Copies           []string      `json:"copies"`
}

// GetOrderReceipt retrieves an order with the receipt presentation fields
func (s *OrderService) GetOrderReceipt(ctx context.Context, id uuid.UUID) (*OrderReceipt, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return &OrderReceipt{
		Order:            order,
		RemainingBalance: order.RemainingBalance(),
		Copies:           []string{"Customer Copy", "Shop Copy"},
	}, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ToggleDelivery flips an order's delivery status. The first transition into
// delivered converts the order into an invoice exactly once; toggling back and
// forth afterwards never creates a second invoice.
func (s *OrderService) ToggleDelivery(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.ToggleDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// parseDeliveryTime parses the submitted delivery timestamp string
func parseDeliveryTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, apperror.NewBadRequestError("Delivery date and time are required.")
	}
	for _, layout := range deliveryTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperror.NewBadRequestError("Invalid delivery date/time format.")
}

// parseOptionalAmount parses a blank-or-decimal form amount to whole rupees
func parseOptionalAmount(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil || d.IsNegative() {
		return 0, apperror.NewBadRequestError("Invalid amount")
	}
	return roundRupees(d), nil
}
