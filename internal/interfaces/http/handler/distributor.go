package handler

import (
	"github.com/gin-gonic/gin"

	pricingapp "github.com/rxreturns/backend/internal/application/pricing"
)

// DistributorHandler handles distributor directory endpoints
type DistributorHandler struct {
	BaseHandler
	directoryService *pricingapp.DirectoryService
}

// NewDistributorHandler creates a new DistributorHandler
func NewDistributorHandler(directoryService *pricingapp.DirectoryService) *DistributorHandler {
	return &DistributorHandler{directoryService: directoryService}
}

// ListDistributors returns directory entries.
// GET /api/v1/distributors
func (h *DistributorHandler) ListDistributors(c *gin.Context) {
	var filter pricingapp.DistributorListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	distributors, err := h.directoryService.ListDistributors(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, distributors)
}

// GetDistributor returns a directory entry by name. Names are used as
// the key because price observations reference distributors by name.
// GET /api/v1/distributors/:name
func (h *DistributorHandler) GetDistributor(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		h.BadRequest(c, "Distributor name is required")
		return
	}

	distributor, err := h.directoryService.GetDistributor(c.Request.Context(), name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, distributor)
}

// UpsertDistributor creates or updates a directory entry.
// PUT /api/v1/distributors
func (h *DistributorHandler) UpsertDistributor(c *gin.Context) {
	var request pricingapp.UpsertDistributorRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	distributor, err := h.directoryService.UpsertDistributor(c.Request.Context(), request)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, distributor)
}
