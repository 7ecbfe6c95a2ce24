package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/shared"
	"github.com/rxreturns/backend/internal/domain/shared/valueobject"
	"github.com/rxreturns/backend/internal/domain/shipping"
	"gorm.io/gorm"
)

// GormReturnPackageRepository implements ReturnPackageRepository using GORM
type GormReturnPackageRepository struct {
	db *gorm.DB
}

// NewGormReturnPackageRepository creates a new GormReturnPackageRepository
func NewGormReturnPackageRepository(db *gorm.DB) *GormReturnPackageRepository {
	return &GormReturnPackageRepository{db: db}
}

// FindByIDForPharmacy finds a package with its lines within a pharmacy
func (r *GormReturnPackageRepository) FindByIDForPharmacy(ctx context.Context, pharmacyID, id uuid.UUID) (*shipping.ReturnPackage, error) {
	var pkg shipping.ReturnPackage
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("pharmacy_id = ? AND id = ?", pharmacyID, id).
		First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &pkg, nil
}

// FindAllForPharmacy finds all packages for a pharmacy. The filter's
// Search field, when set, restricts to a single status.
func (r *GormReturnPackageRepository) FindAllForPharmacy(ctx context.Context, pharmacyID uuid.UUID, filter shared.Filter) ([]shipping.ReturnPackage, error) {
	var packages []shipping.ReturnPackage
	query := r.db.WithContext(ctx).Model(&shipping.ReturnPackage{}).
		Preload("Lines").
		Where("pharmacy_id = ?", pharmacyID)
	if filter.Search != "" {
		query = query.Where("status = ?", filter.Search)
	}

	orderBy := ValidateSortField(filter.OrderBy, ReturnPackageSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	if err := query.
		Order(orderBy + " " + orderDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

// FindOpenForPharmacy finds the pharmacy's open packages with lines loaded
func (r *GormReturnPackageRepository) FindOpenForPharmacy(ctx context.Context, pharmacyID uuid.UUID) ([]shipping.ReturnPackage, error) {
	var packages []shipping.ReturnPackage
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("pharmacy_id = ? AND status = ?", pharmacyID, shipping.StatusOpen).
		Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

// CommittedQuantities sums unit counts across the pharmacy's open
// packages, keyed by normalized identifier. Normalization happens here
// rather than in SQL so the keys match however the lines were entered.
func (r *GormReturnPackageRepository) CommittedQuantities(ctx context.Context, pharmacyID uuid.UUID) (map[string]int, error) {
	packages, err := r.FindOpenForPharmacy(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	committed := make(map[string]int)
	for i := range packages {
		for j := range packages[i].Lines {
			line := &packages[i].Lines[j]
			committed[valueobject.NormalizeNDC(line.Identifier)] += line.Quantity()
		}
	}
	return committed, nil
}

// Save creates or updates a package together with its lines
func (r *GormReturnPackageRepository) Save(ctx context.Context, pkg *shipping.ReturnPackage) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(pkg).Error
}

// DeleteForPharmacy deletes a package and its lines within a pharmacy
func (r *GormReturnPackageRepository) DeleteForPharmacy(ctx context.Context, pharmacyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&shipping.ReturnPackage{}, "pharmacy_id = ? AND id = ?", pharmacyID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&shipping.ReturnPackageLine{}, "package_id = ?", id).Error
	})
}

// CountForPharmacy counts packages for a pharmacy
func (r *GormReturnPackageRepository) CountForPharmacy(ctx context.Context, pharmacyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&shipping.ReturnPackage{}).Where("pharmacy_id = ?", pharmacyID)
	if filter.Search != "" {
		query = query.Where("status = ?", filter.Search)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormReturnPackageRepository implements ReturnPackageRepository
var _ shipping.ReturnPackageRepository = (*GormReturnPackageRepository)(nil)
