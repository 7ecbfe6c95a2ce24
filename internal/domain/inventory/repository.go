package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/shared"
)

// InventoryLineRepository defines the interface for inventory line persistence
type InventoryLineRepository interface {
	// FindByID finds an inventory line by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryLine, error)

	// FindByIDForPharmacy finds an inventory line by ID within a pharmacy
	FindByIDForPharmacy(ctx context.Context, pharmacyID, id uuid.UUID) (*InventoryLine, error)

	// FindAllForPharmacy finds all inventory lines for a pharmacy
	FindAllForPharmacy(ctx context.Context, pharmacyID uuid.UUID, filter shared.Filter) ([]InventoryLine, error)

	// FindSnapshot returns the full inventory snapshot for a pharmacy
	// without pagination, for the optimization engine's request-scoped read
	FindSnapshot(ctx context.Context, pharmacyID uuid.UUID) ([]InventoryLine, error)

	// Save creates or updates an inventory line
	Save(ctx context.Context, line *InventoryLine) error

	// DeleteForPharmacy deletes an inventory line within a pharmacy
	DeleteForPharmacy(ctx context.Context, pharmacyID, id uuid.UUID) error

	// CountForPharmacy counts inventory lines for a pharmacy
	CountForPharmacy(ctx context.Context, pharmacyID uuid.UUID, filter shared.Filter) (int64, error)
}
