package shipping

import (
	"time"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/shared"
	"github.com/rxreturns/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PackageStatus represents the lifecycle state of a return package
type PackageStatus string

const (
	StatusOpen      PackageStatus = "OPEN"
	StatusShipped   PackageStatus = "SHIPPED"
	StatusDelivered PackageStatus = "DELIVERED"
)

// ReturnPackage is a shipment of inventory lines a pharmacy has
// committed to one reverse distributor. Quantities in open packages
// are already spoken for and reduce what the package builder proposes.
type ReturnPackage struct {
	shared.PharmacyAggregateRoot
	DistributorName string        `gorm:"not null;index"`
	Status          PackageStatus `gorm:"not null;default:'OPEN';index"`
	ShippedAt       *time.Time
	DeliveredAt     *time.Time

	Lines []ReturnPackageLine `gorm:"foreignKey:PackageID;references:ID"`
}

// TableName returns the table name for GORM
func (ReturnPackage) TableName() string {
	return "return_packages"
}

// ReturnPackageLine is one product entry inside a return package
type ReturnPackageLine struct {
	shared.BaseEntity
	PackageID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Identifier   string          `gorm:"not null;index"`
	ProductName  string          `gorm:"not null"`
	FullUnits    int             `gorm:"not null;default:0"`
	PartialUnits int             `gorm:"not null;default:0"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ReturnPackageLine) TableName() string {
	return "return_package_lines"
}

// Quantity returns the total unit count on the line
func (l *ReturnPackageLine) Quantity() int {
	return l.FullUnits + l.PartialUnits
}

// EstimatedValue returns price per unit times quantity as a USD credit
func (l *ReturnPackageLine) EstimatedValue() valueobject.Money {
	return valueobject.NewMoneyUSD(l.PricePerUnit).MultiplyByInt(int64(l.Quantity()))
}

// NewReturnPackage creates an open package for a pharmacy-distributor pair
func NewReturnPackage(pharmacyID uuid.UUID, distributorName string) (*ReturnPackage, error) {
	if pharmacyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PHARMACY", "Pharmacy ID cannot be empty")
	}
	if distributorName == "" {
		return nil, shared.NewDomainError("INVALID_DISTRIBUTOR", "Distributor name cannot be empty")
	}
	return &ReturnPackage{
		PharmacyAggregateRoot: shared.NewPharmacyAggregateRoot(pharmacyID),
		DistributorName:       distributorName,
		Status:                StatusOpen,
		Lines:                 make([]ReturnPackageLine, 0),
	}, nil
}

// AddLine appends a product entry to an open package
func (p *ReturnPackage) AddLine(identifier, productName string, fullUnits, partialUnits int, pricePerUnit decimal.Decimal) error {
	if p.Status != StatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to open packages")
	}
	if identifier == "" {
		return shared.NewDomainError("INVALID_IDENTIFIER", "Identifier cannot be empty")
	}
	if fullUnits <= 0 && partialUnits <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Line must carry at least one unit")
	}
	p.Lines = append(p.Lines, ReturnPackageLine{
		BaseEntity:   shared.NewBaseEntity(),
		PackageID:    p.ID,
		Identifier:   identifier,
		ProductName:  productName,
		FullUnits:    fullUnits,
		PartialUnits: partialUnits,
		PricePerUnit: pricePerUnit,
	})
	p.UpdatedAt = time.Now()
	return nil
}

// MarkShipped transitions an open package to shipped
func (p *ReturnPackage) MarkShipped() error {
	if p.Status != StatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Only open packages can be shipped")
	}
	now := time.Now()
	p.Status = StatusShipped
	p.ShippedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}

// MarkDelivered transitions a shipped package to delivered
func (p *ReturnPackage) MarkDelivered() error {
	if p.Status != StatusShipped {
		return shared.NewDomainError("INVALID_STATE", "Only shipped packages can be delivered")
	}
	now := time.Now()
	p.Status = StatusDelivered
	p.DeliveredAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}

// IsOpen reports whether the package still counts against proposals
func (p *ReturnPackage) IsOpen() bool {
	return p.Status == StatusOpen
}

// TotalItems returns the total unit count across lines
func (p *ReturnPackage) TotalItems() int {
	total := 0
	for i := range p.Lines {
		total += p.Lines[i].Quantity()
	}
	return total
}

// TotalEstimatedValue returns the summed estimated value across lines
func (p *ReturnPackage) TotalEstimatedValue() valueobject.Money {
	total := valueobject.ZeroUSD()
	for i := range p.Lines {
		total = total.MustAdd(p.Lines[i].EstimatedValue())
	}
	return total
}
