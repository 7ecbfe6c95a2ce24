package persistence

import (
	"context"
	"strings"

	"github.com/rxreturns/backend/internal/domain/pricing"
	"github.com/rxreturns/backend/internal/domain/shared/valueobject"
	"gorm.io/gorm"
)

// MaxObservationPageSize caps a single observation read. Callers page
// through larger result sets and concatenate.
const MaxObservationPageSize = 1000

// GormPriceObservationRepository implements PriceObservationRepository using GORM
type GormPriceObservationRepository struct {
	db *gorm.DB
}

// NewGormPriceObservationRepository creates a new GormPriceObservationRepository
func NewGormPriceObservationRepository(db *gorm.DB) *GormPriceObservationRepository {
	return &GormPriceObservationRepository{db: db}
}

// FindPage returns one batch of observations ordered by observation date
// descending (report date, then upload date, then creation date).
func (r *GormPriceObservationRepository) FindPage(ctx context.Context, query pricing.ObservationQuery) ([]pricing.PriceObservation, error) {
	limit := query.Limit
	if limit <= 0 || limit > MaxObservationPageSize {
		limit = MaxObservationPageSize
	}

	var observations []pricing.PriceObservation
	q := r.applyIdentifiers(r.db.WithContext(ctx).Model(&pricing.PriceObservation{}), query.Identifiers).
		Order("COALESCE(report_date, uploaded_at, created_at) DESC, id ASC").
		Offset(query.Offset).
		Limit(limit)

	if err := q.Find(&observations).Error; err != nil {
		return nil, err
	}
	return observations, nil
}

// Count returns the total number of observations matching the query
func (r *GormPriceObservationRepository) Count(ctx context.Context, query pricing.ObservationQuery) (int64, error) {
	var count int64
	q := r.applyIdentifiers(r.db.WithContext(ctx).Model(&pricing.PriceObservation{}), query.Identifiers)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyIdentifiers narrows the read to candidate identifiers. The SQL
// match is deliberately wide: it checks containment against both the
// stored and the delimiter-stripped form, and the engine does the
// precise comparison afterwards.
func (r *GormPriceObservationRepository) applyIdentifiers(query *gorm.DB, identifiers []string) *gorm.DB {
	if len(identifiers) == 0 {
		return query
	}

	conditions := make([]string, 0, len(identifiers))
	args := make([]interface{}, 0, len(identifiers)*2)
	for _, identifier := range identifiers {
		conditions = append(conditions, "(identifier LIKE ? OR REPLACE(REPLACE(identifier, '-', ''), ' ', '') LIKE ?)")
		args = append(args, "%"+identifier+"%", "%"+valueobject.NormalizeNDC(identifier)+"%")
	}
	return query.Where(strings.Join(conditions, " OR "), args...)
}

// Ensure GormPriceObservationRepository implements PriceObservationRepository
var _ pricing.PriceObservationRepository = (*GormPriceObservationRepository)(nil)
