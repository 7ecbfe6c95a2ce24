package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/inventory"
	"github.com/rxreturns/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryLineRepository implements InventoryLineRepository using GORM
type GormInventoryLineRepository struct {
	db *gorm.DB
}

// NewGormInventoryLineRepository creates a new GormInventoryLineRepository
func NewGormInventoryLineRepository(db *gorm.DB) *GormInventoryLineRepository {
	return &GormInventoryLineRepository{db: db}
}

// FindByID finds an inventory line by its ID
func (r *GormInventoryLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryLine, error) {
	var line inventory.InventoryLine
	if err := r.db.WithContext(ctx).First(&line, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// FindByIDForPharmacy finds an inventory line by ID within a pharmacy
func (r *GormInventoryLineRepository) FindByIDForPharmacy(ctx context.Context, pharmacyID, id uuid.UUID) (*inventory.InventoryLine, error) {
	var line inventory.InventoryLine
	if err := r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND id = ?", pharmacyID, id).
		First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// FindAllForPharmacy finds all inventory lines for a pharmacy
func (r *GormInventoryLineRepository) FindAllForPharmacy(ctx context.Context, pharmacyID uuid.UUID, filter shared.Filter) ([]inventory.InventoryLine, error) {
	var lines []inventory.InventoryLine
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.InventoryLine{}).Where("pharmacy_id = ?", pharmacyID),
		filter,
	)
	if err := query.Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindSnapshot returns the pharmacy's full inventory without pagination.
// The engine prices the whole inventory in one request-scoped read.
func (r *GormInventoryLineRepository) FindSnapshot(ctx context.Context, pharmacyID uuid.UUID) ([]inventory.InventoryLine, error) {
	var lines []inventory.InventoryLine
	if err := r.db.WithContext(ctx).
		Where("pharmacy_id = ?", pharmacyID).
		Order("product_name ASC, id ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// Save creates or updates an inventory line
func (r *GormInventoryLineRepository) Save(ctx context.Context, line *inventory.InventoryLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

// DeleteForPharmacy deletes an inventory line within a pharmacy
func (r *GormInventoryLineRepository) DeleteForPharmacy(ctx context.Context, pharmacyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.InventoryLine{}, "pharmacy_id = ? AND id = ?", pharmacyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForPharmacy counts inventory lines for a pharmacy
func (r *GormInventoryLineRepository) CountForPharmacy(ctx context.Context, pharmacyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(
		r.db.WithContext(ctx).Model(&inventory.InventoryLine{}).Where("pharmacy_id = ?", pharmacyID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies search, ordering and pagination to the query
func (r *GormInventoryLineRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, InventoryLineSortFields, "product_name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if filter.OrderBy == "" {
		orderDir = "ASC"
	}
	query = query.Order(orderBy + " " + orderDir)

	return query.Offset(filter.Offset()).Limit(filter.Limit())
}

// applySearch applies the free-text search to the query
func (r *GormInventoryLineRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("identifier ILIKE ? OR product_name ILIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormInventoryLineRepository implements InventoryLineRepository
var _ inventory.InventoryLineRepository = (*GormInventoryLineRepository)(nil)
