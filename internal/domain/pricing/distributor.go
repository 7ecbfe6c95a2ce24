package pricing

import (
	"github.com/rxreturns/backend/internal/domain/shared"
)

// Distributor holds directory metadata about a reverse distributor.
// Used only for display enrichment on packages and recommendations,
// never for matching.
type Distributor struct {
	shared.BaseAggregateRoot
	Name         string `gorm:"not null;uniqueIndex"`
	ContactEmail string
	Phone        string
	AddressLine  string
	City         string
	State        string
	PostalCode   string
}

// TableName returns the table name for GORM
func (Distributor) TableName() string {
	return "distributors"
}

// NewDistributor creates a new distributor directory entry
func NewDistributor(name string) (*Distributor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_DISTRIBUTOR", "Distributor name cannot be empty")
	}
	return &Distributor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}
