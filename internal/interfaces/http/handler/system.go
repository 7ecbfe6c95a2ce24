package handler

import (
	"context"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rxreturns/backend/internal/interfaces/http/dto"
)

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	db        *gorm.DB
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. The db is optional;
// without it the readiness check reports only process liveness.
func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// HealthResponse represents the liveness response
type HealthResponse struct {
	Status    string `json:"status"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// ReadyResponse represents the readiness response
type ReadyResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health reports process liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Status:    "ok",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Ready reports whether the backing store is reachable
func (h *SystemHandler) Ready(c *gin.Context) {
	response := ReadyResponse{Status: "ready", Database: "ok"}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			response.Status = "not_ready"
			response.Database = "unreachable"
			h.ErrorWithCode(c, dto.ErrCodeUnavailable, "Backing store is unreachable")
			return
		}
	} else {
		response.Database = "not_configured"
	}

	h.Success(c, response)
}
