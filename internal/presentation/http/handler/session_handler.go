package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kallospos/billing-api/internal/application/service"
	"github.com/kallospos/billing-api/internal/presentation/http/dto/request"
	"github.com/kallospos/billing-api/internal/presentation/http/dto/response"
)

// SessionHandler handles table session HTTP requests
type SessionHandler struct {
	sessionService  *service.SessionService
	customerService *service.CustomerService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService, customerService *service.CustomerService) *SessionHandler {
	return &SessionHandler{
		sessionService:  sessionService,
		customerService: customerService,
	}
}

// Overview handles listing all tables with their running totals
func (h *SessionHandler) Overview(c *gin.Context) {
	response.OK(c, "Tables retrieved successfully", h.sessionService.Overview())
}

// Get handles getting one table's session snapshot
func (h *SessionHandler) Get(c *gin.Context) {
	tableNo, ok := parseTableNo(c)
	if !ok {
		response.BadRequest(c, "Invalid table number")
		return
	}

	snap, err := h.sessionService.Snapshot(tableNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Session retrieved successfully", snap)
}

// AddLine handles adding one unit of an article to the table's cart
func (h *SessionHandler) AddLine(c *gin.Context) {
	tableNo, ok := parseTableNo(c)
	if !ok {
		response.BadRequest(c, "Invalid table number")
		return
	}

	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.sessionService.AddLine(tableNo, req.Name, req.Price, req.QtyType, req.Emoji); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSnapshot(c, tableNo, "Line added")
}

// UpdateQuantity handles nudging a cart line's quantity
func (h *SessionHandler) UpdateQuantity(c *gin.Context) {
	tableNo, ok := parseTableNo(c)
	if !ok {
		response.BadRequest(c, "Invalid table number")
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.sessionService.UpdateQuantity(tableNo, req.Index, req.Delta); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSnapshot(c, tableNo, "Quantity updated")
}

// RemoveLine handles dropping a cart line
func (h *SessionHandler) RemoveLine(c *gin.Context) {
	tableNo, ok := parseTableNo(c)
	if !ok {
		response.BadRequest(c, "Invalid table number")
		return
	}

	var req request.RemoveLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.sessionService.RemoveLine(tableNo, req.Index); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSnapshot(c, tableNo, "Line removed")
}

// Lock handles sealing a table manually (checkout seals automatically)
func (h *SessionHandler) Lock(c *gin.Context) {
	tableNo, ok := parseTableNo(c)
	if !ok {
		response.BadRequest(c, "Invalid table number")
		return
	}

	if err := h.sessionService.Lock(tableNo); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSnapshot(c, tableNo, "Table sealed")
}

// Reset handles clearing a table after settlement
func (h *SessionHandler) Reset(c *gin.Context) {
	tableNo, ok := parseTableNo(c)
	if !ok {
		response.BadRequest(c, "Invalid table number")
		return
	}

	if err := h.sessionService.Reset(tableNo); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table cleared", nil)
}

// LinkCustomer handles attaching a directory customer to the session
func (h *SessionHandler) LinkCustomer(c *gin.Context) {
	tableNo, ok := parseTableNo(c)
	if !ok {
		response.BadRequest(c, "Invalid table number")
		return
	}

	var req request.LinkCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), req.CustomerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.sessionService.LinkCustomer(tableNo, customer.ID, customer.Name); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSnapshot(c, tableNo, "Customer linked")
}

// UnlinkCustomer handles detaching the customer from the session
func (h *SessionHandler) UnlinkCustomer(c *gin.Context) {
	tableNo, ok := parseTableNo(c)
	if !ok {
		response.BadRequest(c, "Invalid table number")
		return
	}

	if err := h.sessionService.UnlinkCustomer(tableNo); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSnapshot(c, tableNo, "Customer unlinked")
}

func (h *SessionHandler) respondWithSnapshot(c *gin.Context, tableNo int, message string) {
	snap, err := h.sessionService.Snapshot(tableNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, snap)
}
