package service

import (
	"context"
	"time"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	"github.com/cakebro/bakery-api/internal/domain/repository"
	"github.com/cakebro/bakery-api/pkg/pagination"
	"github.com/google/uuid"
)

// fakeProductRepo serves products from an in-memory map
type fakeProductRepo struct {
	products map[uuid.UUID]entity.Product
}

func newFakeProductRepo(products ...entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]entity.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		if params.VisibleOnly && !p.Visible {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

// fakeCustomerRepo keeps customers keyed by phone
type fakeCustomerRepo struct {
	byPhone map[string]*entity.Customer
	updates int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byPhone: make(map[string]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	clone := *customer
	r.byPhone[customer.Phone] = &clone
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	for _, c := range r.byPhone {
		if c.ID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	if c, ok := r.byPhone[phone]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	clone := *customer
	r.byPhone[customer.Phone] = &clone
	r.updates++
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for phone, c := range r.byPhone {
		if c.ID == id {
			delete(r.byPhone, phone)
		}
	}
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.byPhone {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

// fakeInvoiceRepo records created invoice graphs. Like the production
// repository, every created invoice books its totals into the daily ledger in
// the same step.
type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
	created  int
	ledger   *fakeDailySaleRepo
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[uuid.UUID]*entity.Invoice),
		ledger:   &fakeDailySaleRepo{},
	}
}

func (r *fakeInvoiceRepo) CreateGraph(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	invoice.Date = time.Now()
	invoice.Items = items
	r.invoices[invoice.ID] = invoice
	r.created++

	var itemsSold int64
	for _, item := range items {
		itemsSold += int64(item.Quantity)
	}
	r.ledger.record(invoice.GrandTotal, itemsSold)
	return nil
}

func (r *fakeInvoiceRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	if inv, ok := r.invoices[id]; ok {
		return inv, nil
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

// fakeOrderRepo records created orders and simulates delivery toggling. Order
// writes never touch the daily ledger, not even the delivery conversion, so
// its ledger stays empty for tests to assert against.
type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
	ledger *fakeDailySaleRepo
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[uuid.UUID]*entity.Order),
		ledger: &fakeDailySaleRepo{},
	}
}

func (r *fakeOrderRepo) CreateGraph(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.Date = time.Now()
	order.Items = items
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) ToggleDelivery(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	o.Status = !o.Status
	if o.Status && o.InvoiceID == nil {
		invoiceID := uuid.New()
		o.InvoiceID = &invoiceID
	}
	return o, nil
}

// fakeDailySaleRepo holds a single in-memory ledger row
type fakeDailySaleRepo struct {
	row *entity.DailySale
}

func (r *fakeDailySaleRepo) GetByDate(ctx context.Context, date time.Time) (*entity.DailySale, error) {
	return r.row, nil
}

// record seeds the row when absent and applies the counter increments, the
// same seed-then-add contract the production upsert follows
func (r *fakeDailySaleRepo) record(amount, itemsSold int64) {
	if r.row == nil {
		r.row = &entity.DailySale{}
	}
	r.row.TotalAmount += amount
	r.row.TotalOrders++
	r.row.TotalItemsSold += itemsSold
}

// fakeReportRepo serves canned aggregates
type fakeReportRepo struct {
	total    int64
	products []repository.ProductSalesRow
	invoices []entity.Invoice
}

func (r *fakeReportRepo) TotalInWindow(ctx context.Context, start, end time.Time) (int64, error) {
	return r.total, nil
}

func (r *fakeReportRepo) ProductBreakdown(ctx context.Context, start, end time.Time) ([]repository.ProductSalesRow, error) {
	return r.products, nil
}

func (r *fakeReportRepo) InvoicesInWindow(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	return r.invoices, nil
}
