package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/shared"
	"github.com/rxreturns/backend/internal/domain/shared/valueobject"
)

// UnitType describes which unit-accounting mode an inventory line uses.
// Full and partial units are mutually exclusive on a well-formed line;
// UnitTypeAny marks the degraded mode where no requirement can be
// derived and unit-type filtering is skipped.
type UnitType string

const (
	UnitTypeFull    UnitType = "FULL"
	UnitTypePartial UnitType = "PARTIAL"
	UnitTypeAny     UnitType = "ANY"
)

// InventoryLine represents one product a pharmacy currently holds for
// return. It is owned by the pharmacy and read-only to the optimization
// engine. The identifier is stored as entered; normalization happens
// only at comparison time.
type InventoryLine struct {
	shared.PharmacyAggregateRoot
	Identifier   string `gorm:"not null;index"`
	ProductName  string `gorm:"not null"`
	FullUnits    int    `gorm:"not null;default:0"`
	PartialUnits int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryLine) TableName() string {
	return "inventory_lines"
}

// NewInventoryLine creates a new inventory line for a pharmacy
func NewInventoryLine(pharmacyID uuid.UUID, identifier, productName string, fullUnits, partialUnits int) (*InventoryLine, error) {
	if pharmacyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PHARMACY", "Pharmacy ID cannot be empty")
	}
	if _, err := valueobject.NewNDC(identifier); err != nil {
		return nil, shared.NewDomainError("INVALID_IDENTIFIER", "Identifier is not a valid drug code: "+err.Error())
	}
	if fullUnits < 0 || partialUnits < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Unit counts cannot be negative")
	}

	return &InventoryLine{
		PharmacyAggregateRoot: shared.NewPharmacyAggregateRoot(pharmacyID),
		Identifier:            identifier,
		ProductName:           productName,
		FullUnits:             fullUnits,
		PartialUnits:          partialUnits,
	}, nil
}

// UnitTypeRequirement derives the unit-type this line's pricing must
// come from. A line with only full units prices against full-case
// observations, a line with only partial units against partial-case
// observations. Lines with both or neither fall back to UnitTypeAny.
func (l *InventoryLine) UnitTypeRequirement() UnitType {
	switch {
	case l.FullUnits > 0 && l.PartialUnits == 0:
		return UnitTypeFull
	case l.PartialUnits > 0 && l.FullUnits == 0:
		return UnitTypePartial
	default:
		return UnitTypeAny
	}
}

// Quantity returns the total unit count on the line
func (l *InventoryLine) Quantity() int {
	return l.FullUnits + l.PartialUnits
}

// UpdateQuantities replaces the unit counts on the line
func (l *InventoryLine) UpdateQuantities(fullUnits, partialUnits int) error {
	if fullUnits < 0 || partialUnits < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Unit counts cannot be negative")
	}
	l.FullUnits = fullUnits
	l.PartialUnits = partialUnits
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// Rename updates the display name of the product
func (l *InventoryLine) Rename(productName string) error {
	if productName == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	l.ProductName = productName
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}
