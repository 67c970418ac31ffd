package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	"github.com/cakebro/bakery-api/internal/domain/enum"
	"github.com/cakebro/bakery-api/internal/domain/repository"
	"github.com/cakebro/bakery-api/pkg/apperror"
	"github.com/cakebro/bakery-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceService orchestrates walk-in billing: customer resolution, cart
// pricing and the atomic invoice + ledger write.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	customers   *CustomerService
	pricer      *CartPricer
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	customers *CustomerService,
	pricer *CartPricer,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		customers:   customers,
		pricer:      pricer,
	}
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	CustomerPhone string
	CustomerName  string
	PaymentMethod enum.PaymentMethod
	GivenAmount   string
	Lines         []CartLine
}

// InvoiceReceipt is the created invoice plus the change figures shown on the
// printed receipt. Given and change are display-only; they are not persisted.
type InvoiceReceipt struct {
	Invoice       *entity.Invoice `json:"invoice"`
	GivenAmount   int64           `json:"given_amount"`
	BalanceReturn int64           `json:"balance_return"`
}

// CreateInvoice prices the cart, enforces the cash payment rule and persists
// the invoice graph atomically. The daily-sale counters for today are
// incremented in the same transaction.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*InvoiceReceipt, error) {
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown payment method %q.", input.PaymentMethod))
	}

	cart, err := s.pricer.PriceCart(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	var givenAmount int64
	if given := strings.TrimSpace(input.GivenAmount); given != "" {
		d, err := decimal.NewFromString(given)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid given amount. Please enter a valid number.")
		}
		givenAmount = roundRupees(d)
	}

	if input.PaymentMethod == enum.PaymentCash && givenAmount < cart.GrandTotal {
		return nil, apperror.NewBusinessRuleError(
			fmt.Sprintf("Given amount (₹%d) is less than total amount (₹%d).", givenAmount, cart.GrandTotal))
	}

	customer, err := s.customers.Resolve(ctx, input.CustomerPhone, input.CustomerName)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		CustomerID:    &customer.ID,
		TotalAmount:   cart.GrandTotal,
		GrandTotal:    cart.GrandTotal,
		PaymentMethod: input.PaymentMethod,
	}
	items := make([]entity.InvoiceItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, entity.InvoiceItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
			Total:     line.LineTotal,
			SizeName:  line.SizeName,
		})
	}

	if err := s.invoiceRepo.CreateGraph(ctx, invoice, items); err != nil {
		return nil, err
	}

	created, err := s.invoiceRepo.GetWithItems(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}

	receipt := &InvoiceReceipt{Invoice: created}
	if input.PaymentMethod == enum.PaymentCash {
		receipt.GivenAmount = givenAmount
		receipt.BalanceReturn = givenAmount - cart.GrandTotal
	} else {
		receipt.GivenAmount = cart.GrandTotal
	}
	return receipt, nil
}

// GetInvoice retrieves an invoice by ID with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}
