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

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles creating an invoice from the billing screen
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		CustomerPhone: req.CustomerPhone,
		CustomerName:  req.CustomerName,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		GivenAmount:   req.GivenAmount,
		Lines:         cartLines(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", receipt)
}

// Get handles getting a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// List handles listing invoices with date, phone and amount filters
func (h *InvoiceHandler) List(c *gin.Context) {
	var req request.InvoiceFilterRequest
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

	params := &repository.InvoiceFilterParams{
		Pagination: pageParams(req.Page, req.PerPage),
		FromDate:   fromDate,
		ToDate:     toDate,
		Phone:      req.Phone,
		MinAmount:  req.MinAmount,
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// cartLines maps submitted cart lines onto the pricer input
func cartLines(items []request.CartLineRequest) []service.CartLine {
	lines := make([]service.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, service.CartLine{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    item.Price,
			SizeName:     item.SizeName,
			CustomWeight: item.CustomWeight,
		})
	}
	return lines
}
