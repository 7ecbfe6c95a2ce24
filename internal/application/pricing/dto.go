package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/pricing"
)

// DistributorResponse represents a distributor directory entry in API responses
type DistributorResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	AddressLine  string    `json:"address_line,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DistributorListFilter represents filter options for the distributor list
type DistributorListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UpsertDistributorRequest represents a request to create or update a
// directory entry. Entries are keyed by name, matching how observations
// reference distributors.
type UpsertDistributorRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	Phone        string `json:"phone"`
	AddressLine  string `json:"address_line"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
}

func toDistributorResponse(distributor *pricing.Distributor) DistributorResponse {
	return DistributorResponse{
		ID:           distributor.ID,
		Name:         distributor.Name,
		ContactEmail: distributor.ContactEmail,
		Phone:        distributor.Phone,
		AddressLine:  distributor.AddressLine,
		City:         distributor.City,
		State:        distributor.State,
		PostalCode:   distributor.PostalCode,
		CreatedAt:    distributor.CreatedAt,
		UpdatedAt:    distributor.UpdatedAt,
	}
}
