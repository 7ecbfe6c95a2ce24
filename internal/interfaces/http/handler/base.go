// Package handler implements the HTTP API endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rxreturns/backend/internal/domain/shared"
	"github.com/rxreturns/backend/internal/interfaces/http/dto"
	"github.com/rxreturns/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides shared response helpers for all handlers
type BaseHandler struct{}

// Success writes a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 response with data and pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, meta))
}

// Created writes a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ErrorWithCode writes an error response for the given API error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	status := dto.GetHTTPStatus(code)
	requestID := c.GetString(middleware.RequestIDKey)
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BadRequest writes a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.ErrorWithCode(c, dto.ErrCodeBadRequest, message)
}

// NotFound writes a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.ErrorWithCode(c, dto.ErrCodeNotFound, message)
}

// Unauthorized writes a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.ErrorWithCode(c, dto.ErrCodeUnauthorized, message)
}

// InternalError writes a 500 response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.ErrorWithCode(c, dto.ErrCodeInternal, message)
}

// HandleError maps an error to the API error model. Domain errors carry
// their own codes; anything else becomes a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.ErrorWithCode(c, code, domainErr.Message)
		return
	}
	h.InternalError(c, "An unexpected error occurred")
}

// HandleBindingError maps a request binding failure to a 400 response
// with per-field details where available.
func (h *BaseHandler) HandleBindingError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// PharmacyID extracts the authenticated pharmacy's ID from the request
// context. A missing or malformed claim aborts with 401; routes using
// this helper must sit behind the JWT middleware.
func (h *BaseHandler) PharmacyID(c *gin.Context) (uuid.UUID, bool) {
	raw := middleware.GetJWTPharmacyID(c)
	if raw == "" {
		h.Unauthorized(c, "Missing pharmacy claim")
		return uuid.Nil, false
	}
	pharmacyID, err := uuid.Parse(raw)
	if err != nil {
		h.Unauthorized(c, "Malformed pharmacy claim")
		return uuid.Nil, false
	}
	return pharmacyID, true
}

// PathUUID extracts and parses a UUID path parameter, writing a 400
// response when it is malformed.
func (h *BaseHandler) PathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Path parameter '"+name+"' must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
