package shipping

import (
	"context"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/shared"
)

// ReturnPackageRepository defines the interface for return package persistence
type ReturnPackageRepository interface {
	// FindByIDForPharmacy finds a package by ID within a pharmacy
	FindByIDForPharmacy(ctx context.Context, pharmacyID, id uuid.UUID) (*ReturnPackage, error)

	// FindAllForPharmacy finds all packages for a pharmacy
	FindAllForPharmacy(ctx context.Context, pharmacyID uuid.UUID, filter shared.Filter) ([]ReturnPackage, error)

	// FindOpenForPharmacy finds the pharmacy's open (not yet shipped) packages
	// with their lines loaded
	FindOpenForPharmacy(ctx context.Context, pharmacyID uuid.UUID) ([]ReturnPackage, error)

	// CommittedQuantities sums unit counts in the pharmacy's open packages,
	// keyed by normalized identifier
	CommittedQuantities(ctx context.Context, pharmacyID uuid.UUID) (map[string]int, error)

	// Save creates or updates a package with its lines
	Save(ctx context.Context, pkg *ReturnPackage) error

	// DeleteForPharmacy deletes a package within a pharmacy
	DeleteForPharmacy(ctx context.Context, pharmacyID, id uuid.UUID) error

	// CountForPharmacy counts packages for a pharmacy
	CountForPharmacy(ctx context.Context, pharmacyID uuid.UUID, filter shared.Filter) (int64, error)
}
