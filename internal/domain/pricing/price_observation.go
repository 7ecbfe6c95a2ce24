package pricing

import (
	"time"

	"github.com/rxreturns/backend/internal/domain/inventory"
	"github.com/rxreturns/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriceObservation is one historical per-unit credit price paid by a
// reverse distributor for an identifier, extracted from an ingested
// return report. Observations form a global pricing pool across all
// pharmacies: the engine uses them as candidate future pricing, never
// as a pharmacy's own prior earnings. Immutable once created; the
// record only disappears when its source report is deleted.
type PriceObservation struct {
	shared.BaseEntity
	Identifier      string          `gorm:"not null;index"`
	DistributorName string          `gorm:"not null;index"`
	FullUnits       int             `gorm:"not null;default:0"`
	PartialUnits    int             `gorm:"not null;default:0"`
	PricePerUnit    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReportDate      *time.Time      `gorm:"index"`
	UploadedAt      *time.Time
}

// TableName returns the table name for GORM
func (PriceObservation) TableName() string {
	return "price_observations"
}

// NewPriceObservation creates an observation from an ingested report line.
// Ingestion payloads arrive with inconsistent field names; callers must
// normalize into this one shape before the record reaches the engine.
func NewPriceObservation(identifier, distributorName string, fullUnits, partialUnits int, pricePerUnit decimal.Decimal, reportDate *time.Time) (*PriceObservation, error) {
	if identifier == "" {
		return nil, shared.NewDomainError("INVALID_IDENTIFIER", "Identifier cannot be empty")
	}
	if distributorName == "" {
		return nil, shared.NewDomainError("INVALID_DISTRIBUTOR", "Distributor name cannot be empty")
	}
	if pricePerUnit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per unit cannot be negative")
	}

	return &PriceObservation{
		BaseEntity:      shared.NewBaseEntity(),
		Identifier:      identifier,
		DistributorName: distributorName,
		FullUnits:       fullUnits,
		PartialUnits:    partialUnits,
		PricePerUnit:    pricePerUnit,
		ReportDate:      reportDate,
	}, nil
}

// ObservedAt returns the observation date used for latest-wins ordering.
// Fallback order: report date, upload date, record creation date.
func (o *PriceObservation) ObservedAt() time.Time {
	if o.ReportDate != nil {
		return *o.ReportDate
	}
	if o.UploadedAt != nil {
		return *o.UploadedAt
	}
	return o.CreatedAt
}

// UnitType classifies the observation's own full/partial split using
// the same mutual-exclusivity pattern as inventory lines.
func (o *PriceObservation) UnitType() inventory.UnitType {
	switch {
	case o.FullUnits > 0 && o.PartialUnits == 0:
		return inventory.UnitTypeFull
	case o.PartialUnits > 0 && o.FullUnits == 0:
		return inventory.UnitTypePartial
	default:
		return inventory.UnitTypeAny
	}
}

// SatisfiesUnitType reports whether this observation may price a line
// with the given unit-type requirement. Full-case lines only accept
// full-case pricing and partial-case lines only partial-case pricing;
// the degraded UnitTypeAny requirement accepts everything.
func (o *PriceObservation) SatisfiesUnitType(requirement inventory.UnitType) bool {
	if requirement == inventory.UnitTypeAny {
		return true
	}
	return o.UnitType() == requirement
}
