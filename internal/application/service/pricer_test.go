package service

import (
	"context"
	"testing"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	"github.com/cakebro/bakery-api/internal/domain/enum"
	"github.com/cakebro/bakery-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatProduct(name string) entity.Product {
	return entity.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: &entity.Category{ID: uuid.New(), Name: "Snacks", PricingMode: enum.PricingFlat},
	}
}

func weightProduct(name string) entity.Product {
	return entity.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: &entity.Category{ID: uuid.New(), Name: "Cakes", PricingMode: enum.PricingWeight},
	}
}

func TestPriceCart_EmptyCart(t *testing.T) {
	pricer := NewCartPricer(newFakeProductRepo())

	_, err := pricer.PriceCart(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestPriceCart_UnknownProduct(t *testing.T) {
	pricer := NewCartPricer(newFakeProductRepo())

	_, err := pricer.PriceCart(context.Background(), []CartLine{
		{ProductID: uuid.New(), Quantity: "1", UnitPrice: "100"},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestPriceCart_InvalidQuantity(t *testing.T) {
	product := flatProduct("Samosa")
	pricer := NewCartPricer(newFakeProductRepo(product))

	for _, quantity := range []string{"abc", "", "1.5"} {
		_, err := pricer.PriceCart(context.Background(), []CartLine{
			{ProductID: product.ID, Quantity: quantity, UnitPrice: "20"},
		})
		require.Error(t, err, "quantity %q", quantity)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	}
}

func TestPriceCart_NonPositiveQuantity(t *testing.T) {
	product := flatProduct("Samosa")
	pricer := NewCartPricer(newFakeProductRepo(product))

	for _, quantity := range []string{"0", "-2"} {
		_, err := pricer.PriceCart(context.Background(), []CartLine{
			{ProductID: product.ID, Quantity: quantity, UnitPrice: "20"},
		})
		require.Error(t, err, "quantity %q", quantity)
		assert.Contains(t, err.Error(), "must be positive")
	}
}

func TestPriceCart_NegativePrice(t *testing.T) {
	product := flatProduct("Samosa")
	pricer := NewCartPricer(newFakeProductRepo(product))

	_, err := pricer.PriceCart(context.Background(), []CartLine{
		{ProductID: product.ID, Quantity: "1", UnitPrice: "-20"},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestPriceCart_Totals(t *testing.T) {
	cake := weightProduct("Chocolate Cake")
	puff := flatProduct("Veg Puff")
	pricer := NewCartPricer(newFakeProductRepo(cake, puff))

	cart, err := pricer.PriceCart(context.Background(), []CartLine{
		{ProductID: cake.ID, Quantity: "1", UnitPrice: "500", SizeName: "1kg"},
		{ProductID: puff.ID, Quantity: "4", UnitPrice: "30"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(620), cart.GrandTotal)
	assert.Equal(t, 5, cart.TotalQuantity)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, int64(500), cart.Lines[0].LineTotal)
	assert.Equal(t, int64(120), cart.Lines[1].LineTotal)
}

func TestPriceCart_LineRoundedFromExactProduct(t *testing.T) {
	product := flatProduct("Jam Roll")
	pricer := NewCartPricer(newFakeProductRepo(product))

	// 102.50 * 3 = 307.50 rounds to 308, not 103*3=309
	cart, err := pricer.PriceCart(context.Background(), []CartLine{
		{ProductID: product.ID, Quantity: "3", UnitPrice: "102.50"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(103), cart.Lines[0].UnitPrice)
	assert.Equal(t, int64(308), cart.Lines[0].LineTotal)
	assert.Equal(t, int64(308), cart.GrandTotal)
}

func TestPriceCart_GrandTotalRoundedOnce(t *testing.T) {
	a := flatProduct("Cookie A")
	b := flatProduct("Cookie B")
	pricer := NewCartPricer(newFakeProductRepo(a, b))

	// Each line rounds 10.50 up to 11, but the grand total rounds the exact
	// sum 21.00 and may differ from the sum of rounded lines.
	cart, err := pricer.PriceCart(context.Background(), []CartLine{
		{ProductID: a.ID, Quantity: "1", UnitPrice: "10.50"},
		{ProductID: b.ID, Quantity: "1", UnitPrice: "10.50"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11), cart.Lines[0].LineTotal)
	assert.Equal(t, int64(11), cart.Lines[1].LineTotal)
	assert.Equal(t, int64(21), cart.GrandTotal)
}

func TestPriceCart_CustomWeightFromStructuredField(t *testing.T) {
	cake := weightProduct("Truffle Cake")
	pricer := NewCartPricer(newFakeProductRepo(cake))

	cart, err := pricer.PriceCart(context.Background(), []CartLine{
		{ProductID: cake.ID, Quantity: "1", UnitPrice: "750", SizeName: "1.5kg", CustomWeight: "1.5"},
	})
	require.NoError(t, err)

	require.NotNil(t, cart.Lines[0].CustomWeight)
	assert.Equal(t, 1.5, *cart.Lines[0].CustomWeight)
}

func TestPriceCart_CustomWeightParsedFromLabel(t *testing.T) {
	cake := weightProduct("Truffle Cake")
	pricer := NewCartPricer(newFakeProductRepo(cake))

	cart, err := pricer.PriceCart(context.Background(), []CartLine{
		{ProductID: cake.ID, Quantity: "1", UnitPrice: "1000", SizeName: "2kg"},
	})
	require.NoError(t, err)

	require.NotNil(t, cart.Lines[0].CustomWeight)
	assert.Equal(t, 2.0, *cart.Lines[0].CustomWeight)
}

func TestPriceCart_NoCustomWeightForFlatProducts(t *testing.T) {
	puff := flatProduct("Veg Puff")
	pricer := NewCartPricer(newFakeProductRepo(puff))

	cart, err := pricer.PriceCart(context.Background(), []CartLine{
		{ProductID: puff.ID, Quantity: "1", UnitPrice: "30", SizeName: "1kg"},
	})
	require.NoError(t, err)
	assert.Nil(t, cart.Lines[0].CustomWeight)
}

func TestRoundRupees_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"0", 0},
		{"10.4", 10},
		{"10.5", 11},
		{"10.6", 11},
		{"-10.5", -11},
		{"307.50", 308},
	}

	for _, tc := range tests {
		d, err := decimal.NewFromString(tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, roundRupees(d), "input %s", tc.input)
	}
}
