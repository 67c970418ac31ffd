package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	"github.com/cakebro/bakery-api/internal/domain/enum"
	"github.com/cakebro/bakery-api/internal/domain/repository"
	"github.com/cakebro/bakery-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one raw line of a submitted cart. Quantity and price arrive as
// strings straight from the form and are parsed strictly here.
type CartLine struct {
	ProductID    uuid.UUID
	Quantity     string
	UnitPrice    string
	SizeName     string
	CustomWeight string
}

// PricedLine is a validated cart line with rounded rupee amounts.
// LineTotal is rounded from the exact price*quantity product, not derived
// from the already-rounded unit price, so per-line drift stays within the
// rounding contract.
type PricedLine struct {
	Product      *entity.Product
	Quantity     int
	UnitPrice    int64
	LineTotal    int64
	SizeName     string
	CustomWeight *float64
}

// PricedCart is the result of pricing a cart. GrandTotal is the exact
// (un-rounded) sum of all line amounts rounded once at the end; it may differ
// by a rupee from the sum of the individually rounded line totals.
type PricedCart struct {
	Lines         []PricedLine
	GrandTotal    int64
	TotalQuantity int
}

// CartPricer validates a raw cart against the catalog and computes totals.
// Pure computation: it reads products but writes nothing.
type CartPricer struct {
	productRepo repository.ProductRepository
}

// NewCartPricer creates a new cart pricer
func NewCartPricer(productRepo repository.ProductRepository) *CartPricer {
	return &CartPricer{productRepo: productRepo}
}

// PriceCart validates every line and computes per-line and cart totals.
func (p *CartPricer) PriceCart(ctx context.Context, lines []CartLine) (*PricedCart, error) {
	if len(lines) == 0 {
		return nil, apperror.NewBadRequestError("No products were selected. Please add items to the bill.")
	}

	productIDs := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		productIDs[i] = line.ProductID
	}

	products, err := p.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	cart := &PricedCart{Lines: make([]PricedLine, 0, len(lines))}
	exactTotal := decimal.Zero

	for _, line := range lines {
		product, exists := productMap[line.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", line.ProductID))
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(line.Quantity))
		if err != nil {
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("Invalid quantity %q for %s.", line.Quantity, product.Name))
		}
		if quantity <= 0 {
			return nil, apperror.NewBusinessRuleError(
				fmt.Sprintf("Quantity for %s (%s) must be positive.", product.Name, line.SizeName))
		}

		unitPrice, err := decimal.NewFromString(strings.TrimSpace(line.UnitPrice))
		if err != nil || unitPrice.IsNegative() {
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("Invalid price %q for %s.", line.UnitPrice, product.Name))
		}

		weight := p.resolveCustomWeight(product, line)

		exactLine := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		exactTotal = exactTotal.Add(exactLine)

		cart.Lines = append(cart.Lines, PricedLine{
			Product:      product,
			Quantity:     quantity,
			UnitPrice:    roundRupees(unitPrice),
			LineTotal:    roundRupees(exactLine),
			SizeName:     line.SizeName,
			CustomWeight: weight,
		})
		cart.TotalQuantity += quantity
	}

	cart.GrandTotal = roundRupees(exactTotal)
	return cart, nil
}

// resolveCustomWeight extracts the cake weight for weight-priced products sold
// by a custom weight ("1.5kg"). The structured field wins; the legacy fallback
// parses the weight out of the size label for old form submissions.
func (p *CartPricer) resolveCustomWeight(product *entity.Product, line CartLine) *float64 {
	if product.Category == nil || product.Category.PricingMode != enum.PricingWeight {
		return nil
	}
	label := strings.ToLower(line.SizeName)
	if !strings.Contains(label, "kg") || !strings.ContainsFunc(label, unicode.IsDigit) {
		return nil
	}

	if w := strings.TrimSpace(line.CustomWeight); w != "" {
		if parsed, err := strconv.ParseFloat(w, 64); err == nil {
			return &parsed
		}
	}

	trimmed := strings.TrimSpace(strings.ReplaceAll(label, "kg", ""))
	if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return &parsed
	}

	log.Printf("Warning: could not determine custom weight for cake item %s, size %q", product.Name, line.SizeName)
	return nil
}

// roundRupees rounds a decimal amount to whole rupees, half away from zero.
// This is the single rounding policy for all money in the system.
func roundRupees(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
