package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kallospos/billing-api/internal/application/service"
	"github.com/kallospos/billing-api/internal/presentation/http/dto/request"
	"github.com/kallospos/billing-api/internal/presentation/http/dto/response"
	"github.com/kallospos/billing-api/pkg/pagination"
)

// BillingHandler handles checkout, reprint and history HTTP requests
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// Checkout handles settling a table into a printed bill
func (h *BillingHandler) Checkout(c *gin.Context) {
	tableNo, ok := parseTableNo(c)
	if !ok {
		response.BadRequest(c, "Invalid table number")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.billingService.Checkout(c.Request.Context(), tableNo, req.PaymentMode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill printed successfully", result)
}

// SendKOT handles printing a kitchen order ticket for the table
func (h *BillingHandler) SendKOT(c *gin.Context) {
	tableNo, ok := parseTableNo(c)
	if !ok {
		response.BadRequest(c, "Invalid table number")
		return
	}

	result, err := h.billingService.SendKOT(c.Request.Context(), tableNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "KOT printed successfully", result)
}

// PreviewBillNumber handles showing the number the table would settle under
func (h *BillingHandler) PreviewBillNumber(c *gin.Context) {
	tableNo, ok := parseTableNo(c)
	if !ok {
		response.BadRequest(c, "Invalid table number")
		return
	}

	billNo, err := h.billingService.PreviewBillNumber(c.Request.Context(), tableNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill number retrieved successfully", gin.H{"bill_no": billNo})
}

// Reprint handles re-printing a stored bill as a duplicate
func (h *BillingHandler) Reprint(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	result, err := h.billingService.Reprint(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill reprinted successfully", result)
}

// ResetSequence handles restarting bill numbering from 01
func (h *BillingHandler) ResetSequence(c *gin.Context) {
	if err := h.billingService.ResetSequence(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill sequence reset", nil)
}

// ListBills handles paging through the fiscal history
func (h *BillingHandler) ListBills(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "25"))

	result, err := h.billingService.ListBills(c.Request.Context(), pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// GetBillItems handles listing one stored bill's line rows
func (h *BillingHandler) GetBillItems(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	items, err := h.billingService.GetBillItems(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill items retrieved successfully", items)
}
