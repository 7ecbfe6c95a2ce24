package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// PharmacyAggregateRoot extends BaseAggregateRoot with pharmacy scoping.
// Every pharmacy-owned record carries the owning pharmacy's ID; queries
// must always filter by it.
type PharmacyAggregateRoot struct {
	BaseAggregateRoot
	PharmacyID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewPharmacyAggregateRoot creates a new pharmacy-scoped aggregate root
func NewPharmacyAggregateRoot(pharmacyID uuid.UUID) PharmacyAggregateRoot {
	return PharmacyAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		PharmacyID:        pharmacyID,
	}
}
