package persistence

import (
	"context"
	"errors"

	"github.com/rxreturns/backend/internal/domain/pricing"
	"github.com/rxreturns/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDistributorRepository implements DistributorRepository using GORM
type GormDistributorRepository struct {
	db *gorm.DB
}

// NewGormDistributorRepository creates a new GormDistributorRepository
func NewGormDistributorRepository(db *gorm.DB) *GormDistributorRepository {
	return &GormDistributorRepository{db: db}
}

// FindByName finds a distributor by its exact name
func (r *GormDistributorRepository) FindByName(ctx context.Context, name string) (*pricing.Distributor, error) {
	var distributor pricing.Distributor
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&distributor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &distributor, nil
}

// FindAll lists distributors matching the filter
func (r *GormDistributorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pricing.Distributor, error) {
	var distributors []pricing.Distributor
	query := r.db.WithContext(ctx).Model(&pricing.Distributor{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR city ILIKE ? OR state ILIKE ?", pattern, pattern, pattern)
	}

	orderBy := ValidateSortField(filter.OrderBy, DistributorSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if filter.OrderBy == "" {
		orderDir = "ASC"
	}

	if err := query.
		Order(orderBy + " " + orderDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&distributors).Error; err != nil {
		return nil, err
	}
	return distributors, nil
}

// Save creates or updates a distributor
func (r *GormDistributorRepository) Save(ctx context.Context, distributor *pricing.Distributor) error {
	return r.db.WithContext(ctx).Save(distributor).Error
}

// Ensure GormDistributorRepository implements DistributorRepository
var _ pricing.DistributorRepository = (*GormDistributorRepository)(nil)
