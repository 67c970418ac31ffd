package service

import (
	"context"
	"strings"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	"github.com/cakebro/bakery-api/internal/domain/repository"
	"github.com/cakebro/bakery-api/pkg/apperror"
	"github.com/cakebro/bakery-api/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Resolve finds or creates the customer for a transaction. A blank phone maps
// to the walk-in placeholder. When the phone is known and the submitted name
// differs, the stored name is updated in place, unless the submitted name is
// the walk-in placeholder, which never overwrites a real name.
func (s *CustomerService) Resolve(ctx context.Context, phone, name string) (*entity.Customer, error) {
	phone = strings.TrimSpace(phone)
	name = strings.TrimSpace(name)
	if phone == "" {
		phone = entity.WalkInPhone
	}
	if name == "" {
		name = entity.WalkInName
	}

	customer, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &entity.Customer{Name: name, Phone: phone}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	if customer.Name != name && !strings.EqualFold(name, entity.WalkInName) {
		customer.Name = name
		if err := s.customerRepo.Update(ctx, customer); err != nil {
			return nil, err
		}
	}
	return customer, nil
}

// SearchResult is the phone-lookup payload used to pre-fill billing forms
type SearchResult struct {
	Exists bool   `json:"exists"`
	Name   string `json:"name,omitempty"`
}

// SearchByPhone reports whether a customer with this phone exists
func (s *CustomerService) SearchByPhone(ctx context.Context, phone string) (*SearchResult, error) {
	customer, err := s.customerRepo.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return &SearchResult{Exists: false}, nil
	}
	return &SearchResult{Exists: true, Name: customer.Name}, nil
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Address *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	existing, err := s.customerRepo.GetByPhone(ctx, input.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewAppError(409, "A customer with this phone number already exists")
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers lists customers with optional search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// DeleteCustomer deletes a customer. Their invoices keep a nulled reference.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}
