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
)

// CatalogService handles category and product management plus the public menu
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name        string
	Image       *string
	PricingMode enum.PricingMode
	Visible     *bool
}

// CreateCategory creates a new category
func (s *CatalogService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required.")
	}
	mode := input.PricingMode
	if mode == "" {
		mode = enum.PricingFlat
	}
	if !mode.IsValid() {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown pricing mode %q.", mode))
	}

	category := &entity.Category{
		Name:        name,
		Image:       input.Image,
		PricingMode: mode,
		Visible:     true,
	}
	if input.Visible != nil {
		category.Visible = *input.Visible
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// UpdateCategoryInput represents the update category input
type UpdateCategoryInput struct {
	Name        *string
	Image       *string
	PricingMode *enum.PricingMode
	Visible     *bool
}

// UpdateCategory updates a category. Changing the pricing mode does not touch
// existing products; their stale price fields are simply ignored by the menu.
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, input *UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewBadRequestError("Category name cannot be empty.")
		}
		category.Name = name
	}
	if input.Image != nil {
		category.Image = input.Image
	}
	if input.PricingMode != nil {
		if !input.PricingMode.IsValid() {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown pricing mode %q.", *input.PricingMode))
		}
		category.PricingMode = *input.PricingMode
	}
	if input.Visible != nil {
		category.Visible = *input.Visible
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory soft deletes a category
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}

// ListCategories lists all categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// ProductInput represents the create/update product input. Price fields are
// whole rupees; which ones are required depends on the category's pricing mode.
type ProductInput struct {
	CategoryID    uuid.UUID
	Name          string
	Image         *string
	OriginalPrice *int64
	SellingPrice  *int64
	PriceHalfKg   *int64
	PriceOneKg    *int64
	PriceSmall    *int64
	PriceMedium   *int64
	PriceLarge    *int64
	Visible       *bool
	Trending      *bool
}

// CreateProduct creates a new product under a category
func (s *CatalogService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Product name is required.")
	}

	category, err := s.GetCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		CategoryID: category.ID,
		Name:       name,
		Image:      input.Image,
		Visible:    true,
	}
	applyProductPrices(product, input)
	if input.Visible != nil {
		product.Visible = *input.Visible
	}
	if input.Trending != nil {
		product.Trending = *input.Trending
	}

	if err := validateProductPrices(product, category.PricingMode); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID with its category
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates a product
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != uuid.Nil && input.CategoryID != product.CategoryID {
		if _, err := s.GetCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	if input.Image != nil {
		product.Image = input.Image
	}
	applyProductPrices(product, input)
	if input.Visible != nil {
		product.Visible = *input.Visible
	}
	if input.Trending != nil {
		product.Trending = *input.Trending
	}

	category, err := s.GetCategory(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := validateProductPrices(product, category.PricingMode); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct soft deletes a product. Past invoice lines keep their copied
// prices, so history is unaffected.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering
func (s *CatalogService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// MenuCategory is one visible category with its visible products
type MenuCategory struct {
	Category entity.Category  `json:"category"`
	Products []entity.Product `json:"products"`
}

// GetMenu returns the billing menu: visible categories in listing order, each
// with only its visible products.
func (s *CatalogService) GetMenu(ctx context.Context) ([]MenuCategory, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	params := &repository.ProductFilterParams{
		Pagination:  &pagination.PaginationParams{Page: 1, PerPage: 1000},
		VisibleOnly: true,
	}
	products, _, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uuid.UUID][]entity.Product, len(categories))
	for _, p := range products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}

	menu := make([]MenuCategory, 0, len(categories))
	for _, c := range categories {
		if !c.Visible {
			continue
		}
		menu = append(menu, MenuCategory{
			Category: c,
			Products: byCategory[c.ID],
		})
	}
	return menu, nil
}

// applyProductPrices copies any submitted price fields onto the product
func applyProductPrices(product *entity.Product, input *ProductInput) {
	if input.OriginalPrice != nil {
		product.OriginalPrice = input.OriginalPrice
	}
	if input.SellingPrice != nil {
		product.SellingPrice = input.SellingPrice
	}
	if input.PriceHalfKg != nil {
		product.PriceHalfKg = input.PriceHalfKg
	}
	if input.PriceOneKg != nil {
		product.PriceOneKg = input.PriceOneKg
	}
	if input.PriceSmall != nil {
		product.PriceSmall = input.PriceSmall
	}
	if input.PriceMedium != nil {
		product.PriceMedium = input.PriceMedium
	}
	if input.PriceLarge != nil {
		product.PriceLarge = input.PriceLarge
	}
}

// validateProductPrices checks that the price fields required by the
// category's pricing mode are present and non-negative.
func validateProductPrices(product *entity.Product, mode enum.PricingMode) error {
	required := map[string]*int64{}
	switch mode {
	case enum.PricingFlat:
		required["selling_price"] = product.SellingPrice
	case enum.PricingWeight:
		required["price_half_kg"] = product.PriceHalfKg
		required["price_one_kg"] = product.PriceOneKg
	case enum.PricingSize:
		required["price_small"] = product.PriceSmall
		required["price_medium"] = product.PriceMedium
		required["price_large"] = product.PriceLarge
	}

	for field, value := range required {
		if value == nil {
			return apperror.NewBadRequestError(
				fmt.Sprintf("Field %s is required for %s pricing.", field, mode))
		}
		if *value < 0 {
			return apperror.NewBadRequestError(
				fmt.Sprintf("Field %s cannot be negative.", field))
		}
	}

	optional := []*int64{product.OriginalPrice, product.PriceHalfKg, product.PriceOneKg,
		product.PriceSmall, product.PriceMedium, product.PriceLarge, product.SellingPrice}
	for _, value := range optional {
		if value != nil && *value < 0 {
			return apperror.NewBadRequestError("Price fields cannot be negative.")
		}
	}
	return nil
}
