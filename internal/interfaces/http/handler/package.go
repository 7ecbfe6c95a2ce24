package handler

import (
	"github.com/gin-gonic/gin"

	shippingapp "github.com/rxreturns/backend/internal/application/shipping"
	"github.com/rxreturns/backend/internal/interfaces/http/dto"
)

// PackageHandler handles return package endpoints
type PackageHandler struct {
	BaseHandler
	shippingService *shippingapp.Service
	metrics         EngineRecorder
}

// NewPackageHandler creates a new PackageHandler
func NewPackageHandler(shippingService *shippingapp.Service) *PackageHandler {
	return &PackageHandler{shippingService: shippingService}
}

// WithMetrics attaches an engine activity recorder
func (h *PackageHandler) WithMetrics(recorder EngineRecorder) *PackageHandler {
	h.metrics = recorder
	return h
}

// CommitPackage persists a proposed package as an open shipment. Open
// packages reduce the quantities available to later proposals.
// POST /api/v1/packages
func (h *PackageHandler) CommitPackage(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}

	var request shippingapp.CommitPackageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	pkg, err := h.shippingService.CommitPackage(c.Request.Context(), pharmacyID, request)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordPackageCommitted(c.Request.Context(), pkg.DistributorName)
	}
	h.Created(c, pkg)
}

// ListPackages returns one page of the pharmacy's return packages.
// GET /api/v1/packages
func (h *PackageHandler) ListPackages(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}

	var filter shippingapp.PackageListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	page, err := h.shippingService.ListPackages(c.Request.Context(), pharmacyID, filter)
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

// GetPackage returns a single return package with its lines.
// GET /api/v1/packages/:id
func (h *PackageHandler) GetPackage(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}
	packageID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	pkg, err := h.shippingService.GetPackage(c.Request.Context(), pharmacyID, packageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// MarkShipped transitions an open package to shipped.
// POST /api/v1/packages/:id/ship
func (h *PackageHandler) MarkShipped(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}
	packageID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	pkg, err := h.shippingService.MarkShipped(c.Request.Context(), pharmacyID, packageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// MarkDelivered transitions a shipped package to delivered.
// POST /api/v1/packages/:id/deliver
func (h *PackageHandler) MarkDelivered(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}
	packageID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	pkg, err := h.shippingService.MarkDelivered(c.Request.Context(), pharmacyID, packageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// DeletePackage removes a package and its lines.
// DELETE /api/v1/packages/:id
func (h *PackageHandler) DeletePackage(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}
	packageID, ok := h.PathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.shippingService.DeletePackage(c.Request.Context(), pharmacyID, packageID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
