package shipping

import (
	"time"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
)

// PackageLineResponse represents a package line in API responses
type PackageLineResponse struct {
	ID             uuid.UUID       `json:"id"`
	Identifier     string          `json:"identifier"`
	ProductName    string          `json:"product_name"`
	FullUnits      int             `json:"full_units"`
	PartialUnits   int             `json:"partial_units"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
}

// PackageResponse represents a return package in API responses
type PackageResponse struct {
	ID                  uuid.UUID             `json:"id"`
	DistributorName     string                `json:"distributor_name"`
	Status              string                `json:"status"`
	Lines               []PackageLineResponse `json:"lines"`
	TotalItems          int                   `json:"total_items"`
	TotalEstimatedValue decimal.Decimal       `json:"total_estimated_value"`
	ShippedAt           *time.Time            `json:"shipped_at,omitempty"`
	DeliveredAt         *time.Time            `json:"delivered_at,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
	Version             int                   `json:"version"`
}

// PackageListFilter represents filter options for the package list
type PackageListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=OPEN SHIPPED DELIVERED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CommitLineRequest represents one line of a package commit
type CommitLineRequest struct {
	Identifier   string          `json:"identifier" binding:"required,ndc"`
	ProductName  string          `json:"product_name" binding:"required"`
	FullUnits    int             `json:"full_units" binding:"min=0"`
	PartialUnits int             `json:"partial_units" binding:"min=0"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

// CommitPackageRequest represents a request to persist a proposed
// package as an open shipment.
type CommitPackageRequest struct {
	DistributorName string              `json:"distributor_name" binding:"required"`
	Lines           []CommitLineRequest `json:"lines" binding:"required,min=1,dive"`
}

func toPackageLineResponse(line *shipping.ReturnPackageLine) PackageLineResponse {
	return PackageLineResponse{
		ID:             line.ID,
		Identifier:     line.Identifier,
		ProductName:    line.ProductName,
		FullUnits:      line.FullUnits,
		PartialUnits:   line.PartialUnits,
		PricePerUnit:   line.PricePerUnit,
		EstimatedValue: line.EstimatedValue().Amount(),
	}
}

func toPackageResponse(pkg *shipping.ReturnPackage) PackageResponse {
	lines := make([]PackageLineResponse, 0, len(pkg.Lines))
	for i := range pkg.Lines {
		lines = append(lines, toPackageLineResponse(&pkg.Lines[i]))
	}
	return PackageResponse{
		ID:                  pkg.ID,
		DistributorName:     pkg.DistributorName,
		Status:              string(pkg.Status),
		Lines:               lines,
		TotalItems:          pkg.TotalItems(),
		TotalEstimatedValue: pkg.TotalEstimatedValue().Amount(),
		ShippedAt:           pkg.ShippedAt,
		DeliveredAt:         pkg.DeliveredAt,
		CreatedAt:           pkg.CreatedAt,
		UpdatedAt:           pkg.UpdatedAt,
		Version:             pkg.Version,
	}
}
