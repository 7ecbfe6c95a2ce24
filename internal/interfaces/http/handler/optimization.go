package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	optimizationapp "github.com/rxreturns/backend/internal/application/optimization"
)

// EngineRecorder records optimization engine activity. Satisfied by
// telemetry.EngineMetrics; handlers treat a nil recorder as disabled.
type EngineRecorder interface {
	RecordRecommendationRequest(ctx context.Context, mode string, duration time.Duration)
	RecordPackageProposal(ctx context.Context, duration time.Duration)
	RecordPackageCommitted(ctx context.Context, distributorName string)
}

// OptimizationHandler handles the return optimization engine endpoints
type OptimizationHandler struct {
	BaseHandler
	optimizationService *optimizationapp.Service
	metrics             EngineRecorder
}

// NewOptimizationHandler creates a new OptimizationHandler
func NewOptimizationHandler(optimizationService *optimizationapp.Service) *OptimizationHandler {
	return &OptimizationHandler{optimizationService: optimizationService}
}

// WithMetrics attaches an engine activity recorder
func (h *OptimizationHandler) WithMetrics(recorder EngineRecorder) *OptimizationHandler {
	h.metrics = recorder
	return h
}

// GetRecommendations returns per-line distributor recommendations. With
// no query parameters it prices the pharmacy's stored inventory; with
// repeated `identifiers` parameters it runs in search mode against the
// supplied codes instead.
// GET /api/v1/optimization/recommendations
func (h *OptimizationHandler) GetRecommendations(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}

	var filter optimizationapp.RecommendationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	start := time.Now()
	report, err := h.optimizationService.GetRecommendations(c.Request.Context(), pharmacyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if h.metrics != nil {
		mode := "inventory"
		if len(filter.Identifiers) > 0 {
			mode = "search"
		}
		h.metrics.RecordRecommendationRequest(c.Request.Context(), mode, time.Since(start))
	}
	h.Success(c, report)
}

// GetPackages returns the proposed shipment packages for the pharmacy's
// stored inventory, net of quantities already committed to open packages.
// GET /api/v1/optimization/packages
func (h *OptimizationHandler) GetPackages(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}

	start := time.Now()
	proposal, err := h.optimizationService.GetPackages(c.Request.Context(), pharmacyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordPackageProposal(c.Request.Context(), time.Since(start))
	}
	h.Success(c, proposal)
}

// GetPackagesForItems prices caller-supplied items instead of the
// stored inventory and groups them into proposed packages.
// POST /api/v1/optimization/packages/preview
func (h *OptimizationHandler) GetPackagesForItems(c *gin.Context) {
	pharmacyID, ok := h.PharmacyID(c)
	if !ok {
		return
	}

	var request optimizationapp.PackageItemsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	start := time.Now()
	proposal, err := h.optimizationService.GetPackagesForItems(c.Request.Context(), pharmacyID, request)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordPackageProposal(c.Request.Context(), time.Since(start))
	}
	h.Success(c, proposal)
}
