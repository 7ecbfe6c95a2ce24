package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/inventory"
)

// InventoryLineResponse represents an inventory line in API responses
type InventoryLineResponse struct {
	ID           uuid.UUID `json:"id"`
	Identifier   string    `json:"identifier"`
	ProductName  string    `json:"product_name"`
	FullUnits    int       `json:"full_units"`
	PartialUnits int       `json:"partial_units"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int       `json:"version"`
}

// InventoryListFilter represents filter options for the inventory list
type InventoryListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateInventoryLineRequest represents a request to add a line
type CreateInventoryLineRequest struct {
	Identifier   string `json:"identifier" binding:"required,ndc"`
	ProductName  string `json:"product_name" binding:"required"`
	FullUnits    int    `json:"full_units" binding:"min=0"`
	PartialUnits int    `json:"partial_units" binding:"min=0"`
}

// UpdateInventoryLineRequest represents a request to update a line
type UpdateInventoryLineRequest struct {
	ProductName  string `json:"product_name" binding:"required"`
	FullUnits    int    `json:"full_units" binding:"min=0"`
	PartialUnits int    `json:"partial_units" binding:"min=0"`
}

func toInventoryLineResponse(line *inventory.InventoryLine) InventoryLineResponse {
	return InventoryLineResponse{
		ID:           line.ID,
		Identifier:   line.Identifier,
		ProductName:  line.ProductName,
		FullUnits:    line.FullUnits,
		PartialUnits: line.PartialUnits,
		CreatedAt:    line.CreatedAt,
		UpdatedAt:    line.UpdatedAt,
		Version:      line.Version,
	}
}
