package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/rxreturns/backend/internal/application/inventory"
	"github.com/rxreturns/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles inventory line endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.Service) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// ListLines returns one page of the pharmacy's inventory.
// GET /api/v1/inventory/lines
func (h *InventoryHandler) ListLines(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}

	var filter inventoryapp.InventoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	page, err := h.inventoryService.ListLines(c.Request.Context(), pharmacyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, dto.Meta{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

// GetLine returns a single inventory line.
// GET /api/v1/inventory/lines/:id
func (h *InventoryHandler) GetLine(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}
	lineID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	line, err := h.inventoryService.GetLine(c.Request.Context(), pharmacyID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}

// CreateLine adds a product to the pharmacy's inventory.
// POST /api/v1/inventory/lines
func (h *InventoryHandler) CreateLine(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}

	var request inventoryapp.CreateInventoryLineRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	line, err := h.inventoryService.CreateLine(c.Request.Context(), pharmacyID, request)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, line)
}

// UpdateLine updates a line's name and quantities.
// PUT /api/v1/inventory/lines/:id
func (h *InventoryHandler) UpdateLine(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}
	lineID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	var request inventoryapp.UpdateInventoryLineRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	line, err := h.inventoryService.UpdateLine(c.Request.Context(), pharmacyID, lineID, request)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}

// DeleteLine removes a line from the pharmacy's inventory.
// DELETE /api/v1/inventory/lines/:id
func (h *InventoryHandler) DeleteLine(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}
	lineID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteLine(c.Request.Context(), pharmacyID, lineID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
