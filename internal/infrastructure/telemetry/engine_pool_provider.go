// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormEnginePoolProvider implements EnginePoolProvider using GORM.
// It queries aggregate counts directly rather than going through the
// domain repositories.
type GormEnginePoolProvider struct {
	db *gorm.DB
}

// NewGormEnginePoolProvider creates a new GormEnginePoolProvider.
func NewGormEnginePoolProvider(db *gorm.DB) *GormEnginePoolProvider {
	return &GormEnginePoolProvider{db: db}
}

// CountOpenPackages returns the number of OPEN packages across all pharmacies.
func (p *GormEnginePoolProvider) CountOpenPackages(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("return_packages").
		Where("status = ?", "OPEN").
		Count(&count).Error
	return count, err
}

// CountObservations returns the size of the global pricing pool.
func (p *GormEnginePoolProvider) CountObservations(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("price_observations").
		Count(&count).Error
	return count, err
}

// Ensure GormEnginePoolProvider implements EnginePoolProvider
var _ EnginePoolProvider = (*GormEnginePoolProvider)(nil)
