package service

import (
	"context"
	"testing"
	"time"

	"github.com/cakebro/bakery-api/internal/domain/enum"
	"github.com/cakebro/bakery-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T) (*OrderService, *fakeOrderRepo, *fakeProductRepo) {
	t.Helper()
	productRepo := newFakeProductRepo()
	orderRepo := newFakeOrderRepo()
	svc := NewOrderService(
		orderRepo,
		NewCustomerService(newFakeCustomerRepo()),
		NewCartPricer(productRepo),
	)
	return svc, orderRepo, productRepo
}

func validOrderInput(productID uuid.UUID) *CreateOrderInput {
	return &CreateOrderInput{
		CustomerPhone: "+919876543210",
		CustomerName:  "Priya",
		Lines:         []CartLine{{ProductID: productID, Quantity: "1", UnitPrice: "500", SizeName: "1kg"}},
		DeliveryTime:  time.Now().AddDate(0, 0, 2).Format("2006-01-02T15:04"),
	}
}

func TestCreateOrder_RequiresPhoneAndName(t *testing.T) {
	svc, _, productRepo := newOrderService(t)
	product := weightProduct("Chocolate Cake")
	productRepo.Create(context.Background(), &product)

	input := validOrderInput(product.ID)
	input.CustomerPhone = ""
	_, err := svc.CreateOrder(context.Background(), input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone")

	input = validOrderInput(product.ID)
	input.CustomerName = "  "
	_, err = svc.CreateOrder(context.Background(), input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestCreateOrder_InvalidDeliveryTime(t *testing.T) {
	svc, _, productRepo := newOrderService(t)
	product := weightProduct("Chocolate Cake")
	productRepo.Create(context.Background(), &product)

	for _, value := range []string{"", "tomorrow", "2026-13-40T99:99"} {
		input := validOrderInput(product.ID)
		input.DeliveryTime = value
		_, err := svc.CreateOrder(context.Background(), input)
		require.Error(t, err, "delivery time %q", value)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	}
}

func TestCreateOrder_AcceptsRFC3339DeliveryTime(t *testing.T) {
	svc, _, productRepo := newOrderService(t)
	product := weightProduct("Chocolate Cake")
	productRepo.Create(context.Background(), &product)

	input := validOrderInput(product.ID)
	input.DeliveryTime = time.Now().AddDate(0, 0, 2).Format(time.RFC3339)

	order, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, order.DeliveryAt.IsZero())
}

func TestCreateOrder_TotalIncludesCustomizationCharge(t *testing.T) {
	svc, _, productRepo := newOrderService(t)
	product := weightProduct("Photo Cake")
	productRepo.Create(context.Background(), &product)

	input := validOrderInput(product.ID)
	input.IsCustomized = true
	input.ContactNumber = "+918888877777"
	input.CustomizationCharge = "150.4"

	order, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, int64(650), order.TotalAmount)
	assert.Equal(t, int64(150), order.CustomizationCharge)
	assert.Equal(t, "+918888877777", order.ContactNumber)
}

func TestCreateOrder_ContactNumberOnlyWhenCustomized(t *testing.T) {
	svc, _, productRepo := newOrderService(t)
	product := weightProduct("Chocolate Cake")
	productRepo.Create(context.Background(), &product)

	input := validOrderInput(product.ID)
	input.IsCustomized = false
	input.ContactNumber = "+918888877777"

	order, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	assert.Empty(t, order.ContactNumber)
}

func TestCreateOrder_AdvanceCannotExceedTotal(t *testing.T) {
	svc, _, productRepo := newOrderService(t)
	product := weightProduct("Chocolate Cake")
	productRepo.Create(context.Background(), &product)

	input := validOrderInput(product.ID)
	input.AdvanceAmount = "501"
	input.PaymentMethod = enum.PaymentGPay

	_, err := svc.CreateOrder(context.Background(), input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Advance amount cannot be greater")
}

func TestCreateOrder_AdvanceRequiresPaymentMethod(t *testing.T) {
	svc, _, productRepo := newOrderService(t)
	product := weightProduct("Chocolate Cake")
	productRepo.Create(context.Background(), &product)

	input := validOrderInput(product.ID)
	input.AdvanceAmount = "200"

	_, err := svc.CreateOrder(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateOrder_NoAdvanceLeavesPaymentMethodUnset(t *testing.T) {
	svc, _, productRepo := newOrderService(t)
	product := weightProduct("Chocolate Cake")
	productRepo.Create(context.Background(), &product)

	order, err := svc.CreateOrder(context.Background(), validOrderInput(product.ID))
	require.NoError(t, err)
	assert.Nil(t, order.PaymentMethod)
	assert.False(t, order.Status)
}

func TestGetOrderReceipt(t *testing.T) {
	svc, _, productRepo := newOrderService(t)
	product := weightProduct("Chocolate Cake")
	productRepo.Create(context.Background(), &product)

	input := validOrderInput(product.ID)
	input.AdvanceAmount = "200"
	input.PaymentMethod = enum.PaymentGPay

	order, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	receipt, err := svc.GetOrderReceipt(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(300), receipt.RemainingBalance)
	assert.Equal(t, []string{"Customer Copy", "Shop Copy"}, receipt.Copies)
}

func TestGetOrderReceipt_NotFound(t *testing.T) {
	svc, _, _ := newOrderService(t)

	_, err := svc.GetOrderReceipt(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestToggleDelivery_ConvertsOnce(t *testing.T) {
	svc, _, productRepo := newOrderService(t)
	product := weightProduct("Chocolate Cake")
	productRepo.Create(context.Background(), &product)

	order, err := svc.CreateOrder(context.Background(), validOrderInput(product.ID))
	require.NoError(t, err)
	require.Nil(t, order.InvoiceID)

	delivered, err := svc.ToggleDelivery(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, delivered.Status)
	require.NotNil(t, delivered.InvoiceID)
	firstInvoiceID := *delivered.InvoiceID

	// Toggling back and forth keeps the original invoice link
	pending, err := svc.ToggleDelivery(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, pending.Status)
	require.NotNil(t, pending.InvoiceID)

	again, err := svc.ToggleDelivery(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, again.Status)
	assert.Equal(t, firstInvoiceID, *again.InvoiceID)
}

func TestOrderLifecycle_NeverTouchesDailyLedger(t *testing.T) {
	svc, orderRepo, productRepo := newOrderService(t)
	product := weightProduct("Chocolate Cake")
	productRepo.Create(context.Background(), &product)

	input := validOrderInput(product.ID)
	input.AdvanceAmount = "200"
	input.PaymentMethod = enum.PaymentGPay

	order, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	// The delivery conversion creates the mirror invoice but books nothing
	_, err = svc.ToggleDelivery(context.Background(), order.ID)
	require.NoError(t, err)
	_, err = svc.ToggleDelivery(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Nil(t, orderRepo.ledger.row)
}

func TestToggleDelivery_NotFound(t *testing.T) {
	svc, _, _ := newOrderService(t)

	_, err := svc.ToggleDelivery(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
