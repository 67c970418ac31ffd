package handler

import (
	"github.com/cakebro/bakery-api/internal/application/service"
	"github.com/cakebro/bakery-api/internal/domain/enum"
	"github.com/cakebro/bakery-api/internal/domain/repository"
	"github.com/cakebro/bakery-api/internal/presentation/http/dto/request"
	"github.com/cakebro/bakery-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles creating an advance order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		CustomerPhone:       req.CustomerPhone,
		CustomerName:        req.CustomerName,
		Lines:               cartLines(req.Items),
		IsCustomized:        req.IsCustomized,
		ContactNumber:       req.ContactNumber,
		CustomizationCharge: req.CustomizationCharge,
		Message:             req.Message,
		AdvanceAmount:       req.AdvanceAmount,
		PaymentMethod:       enum.PaymentMethod(req.PaymentMethod),
		DeliveryTime:        req.DeliveryTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	receipt, err := h.orderService.GetOrderReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", receipt.Order)
}

// Receipt handles the printable order receipt with balance figures
func (h *OrderHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	receipt, err := h.orderService.GetOrderReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order receipt retrieved successfully", receipt)
}

// List handles listing orders with date, phone and ID filters
func (h *OrderHandler) List(c *gin.Context) {
	var req request.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	fromDate, err := parseDateParam(req.FromDate, false)
	if err != nil {
		response.BadRequest(c, "Invalid from_date. Use the YYYY-MM-DD format.")
		return
	}
	toDate, err := parseDateParam(req.ToDate, true)
	if err != nil {
		response.BadRequest(c, "Invalid to_date. Use the YYYY-MM-DD format.")
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: pageParams(req.Page, req.PerPage),
		FromDate:   fromDate,
		ToDate:     toDate,
		Phone:      req.Phone,
	}
	if req.OrderID != "" {
		orderID, err := uuid.Parse(req.OrderID)
		if err != nil {
			response.BadRequest(c, "Invalid order ID filter")
			return
		}
		params.OrderID = &orderID
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// ToggleDelivery handles flipping an order's delivery status
func (h *OrderHandler) ToggleDelivery(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.ToggleDelivery(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Order marked as pending"
	if order.Status {
		message = "Order marked as delivered"
	}
	response.OK(c, message, order)
}
