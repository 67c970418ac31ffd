package service

import (
	"context"
	"testing"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	"github.com/cakebro/bakery-api/internal/domain/enum"
	"github.com/cakebro/bakery-api/internal/domain/repository"
	"github.com/cakebro/bakery-api/pkg/apperror"
	"github.com/cakebro/bakery-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCategoryRepo serves categories from an in-memory map
type fakeCategoryRepo struct {
	categories map[uuid.UUID]entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]entity.Category)}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	if c, ok := r.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func newCatalogService() (*CatalogService, *fakeCategoryRepo, *fakeProductRepo) {
	categoryRepo := newFakeCategoryRepo()
	productRepo := newFakeProductRepo()
	return NewCatalogService(categoryRepo, productRepo), categoryRepo, productRepo
}

func TestCreateCategory_DefaultsToFlatPricing(t *testing.T) {
	svc, _, _ := newCatalogService()

	category, err := svc.CreateCategory(context.Background(), &CreateCategoryInput{Name: "Snacks"})
	require.NoError(t, err)

	assert.Equal(t, enum.PricingFlat, category.PricingMode)
	assert.True(t, category.Visible)
}

func TestCreateCategory_RejectsUnknownPricingMode(t *testing.T) {
	svc, _, _ := newCatalogService()

	_, err := svc.CreateCategory(context.Background(), &CreateCategoryInput{
		Name:        "Snacks",
		PricingMode: "volume",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateProduct_RequiresModePrices(t *testing.T) {
	svc, categoryRepo, _ := newCatalogService()
	cakes := &entity.Category{Name: "Cakes", PricingMode: enum.PricingWeight, Visible: true}
	require.NoError(t, categoryRepo.Create(context.Background(), cakes))

	halfKg := int64(250)

	// Missing the one-kg price for a weight-priced category
	_, err := svc.CreateProduct(context.Background(), &ProductInput{
		CategoryID:  cakes.ID,
		Name:        "Chocolate Cake",
		PriceHalfKg: &halfKg,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price_one_kg")

	oneKg := int64(450)
	product, err := svc.CreateProduct(context.Background(), &ProductInput{
		CategoryID:  cakes.ID,
		Name:        "Chocolate Cake",
		PriceHalfKg: &halfKg,
		PriceOneKg:  &oneKg,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(450), *product.PriceOneKg)
}

func TestCreateProduct_SizePricingRequiresAllThree(t *testing.T) {
	svc, categoryRepo, _ := newCatalogService()
	shakes := &entity.Category{Name: "Milkshakes", PricingMode: enum.PricingSize, Visible: true}
	require.NoError(t, categoryRepo.Create(context.Background(), shakes))

	small, medium := int64(80), int64(110)
	_, err := svc.CreateProduct(context.Background(), &ProductInput{
		CategoryID:  shakes.ID,
		Name:        "Oreo Shake",
		PriceSmall:  &small,
		PriceMedium: &medium,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price_large")
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	svc, _, _ := newCatalogService()

	selling := int64(30)
	_, err := svc.CreateProduct(context.Background(), &ProductInput{
		CategoryID:   uuid.New(),
		Name:         "Veg Puff",
		SellingPrice: &selling,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestGetMenu_FiltersHiddenEntries(t *testing.T) {
	svc, categoryRepo, productRepo := newCatalogService()

	snacks := &entity.Category{Name: "Snacks", PricingMode: enum.PricingFlat, Visible: true}
	hidden := &entity.Category{Name: "Seasonal", PricingMode: enum.PricingFlat, Visible: false}
	require.NoError(t, categoryRepo.Create(context.Background(), snacks))
	require.NoError(t, categoryRepo.Create(context.Background(), hidden))

	selling := int64(30)
	visible := entity.Product{ID: uuid.New(), CategoryID: snacks.ID, Name: "Veg Puff", SellingPrice: &selling, Visible: true}
	invisible := entity.Product{ID: uuid.New(), CategoryID: snacks.ID, Name: "Old Puff", SellingPrice: &selling, Visible: false}
	require.NoError(t, productRepo.Create(context.Background(), &visible))
	require.NoError(t, productRepo.Create(context.Background(), &invisible))

	menu, err := svc.GetMenu(context.Background())
	require.NoError(t, err)

	require.Len(t, menu, 1)
	assert.Equal(t, "Snacks", menu[0].Category.Name)
	require.Len(t, menu[0].Products, 1)
	assert.Equal(t, "Veg Puff", menu[0].Products[0].Name)
}

func TestListProducts_Pagination(t *testing.T) {
	svc, categoryRepo, productRepo := newCatalogService()
	snacks := &entity.Category{Name: "Snacks", PricingMode: enum.PricingFlat, Visible: true}
	require.NoError(t, categoryRepo.Create(context.Background(), snacks))

	selling := int64(30)
	p := entity.Product{ID: uuid.New(), CategoryID: snacks.ID, Name: "Veg Puff", SellingPrice: &selling, Visible: true}
	require.NoError(t, productRepo.Create(context.Background(), &p))

	result, err := svc.ListProducts(context.Background(), &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 15},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Pagination.Total)
	assert.Len(t, result.Items, 1)
}
