package pricing

import (
	"testing"
	"time"

	"github.com/rxreturns/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriceObservation(t *testing.T) {
	reportDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid observation", func(t *testing.T) {
		obs, err := NewPriceObservation("00456-0460-01", "Pharma Returns Inc", 5, 0, decimal.NewFromFloat(2.00), &reportDate)
		require.NoError(t, err)
		assert.Equal(t, "Pharma Returns Inc", obs.DistributorName)
		assert.Equal(t, reportDate, obs.ObservedAt())
	})

	t.Run("empty identifier rejected", func(t *testing.T) {
		_, err := NewPriceObservation("", "Pharma Returns Inc", 5, 0, decimal.NewFromInt(2), nil)
		assert.Error(t, err)
	})

	t.Run("empty distributor rejected", func(t *testing.T) {
		_, err := NewPriceObservation("00456-0460-01", "", 5, 0, decimal.NewFromInt(2), nil)
		assert.Error(t, err)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := NewPriceObservation("00456-0460-01", "Pharma Returns Inc", 5, 0, decimal.NewFromInt(-1), nil)
		assert.Error(t, err)
	})
}

func TestObservedAtFallback(t *testing.T) {
	reportDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	uploadDate := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	obs, err := NewPriceObservation("00456-0460-01", "Pharma Returns Inc", 5, 0, decimal.NewFromInt(2), nil)
	require.NoError(t, err)

	// No report or upload date: creation date
	assert.Equal(t, obs.CreatedAt, obs.ObservedAt())

	// Upload date beats creation date
	obs.UploadedAt = &uploadDate
	assert.Equal(t, uploadDate, obs.ObservedAt())

	// Report date beats both
	obs.ReportDate = &reportDate
	assert.Equal(t, reportDate, obs.ObservedAt())
}

func TestObservationUnitType(t *testing.T) {
	tests := []struct {
		name         string
		fullUnits    int
		partialUnits int
		expected     inventory.UnitType
	}{
		{"full case", 5, 0, inventory.UnitTypeFull},
		{"partial case", 0, 3, inventory.UnitTypePartial},
		{"mixed degrades", 5, 3, inventory.UnitTypeAny},
		{"zero degrades", 0, 0, inventory.UnitTypeAny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &PriceObservation{FullUnits: tt.fullUnits, PartialUnits: tt.partialUnits}
			assert.Equal(t, tt.expected, obs.UnitType())
		})
	}
}

func TestSatisfiesUnitType(t *testing.T) {
	fullObs := &PriceObservation{FullUnits: 5}
	partialObs := &PriceObservation{PartialUnits: 2}
	mixedObs := &PriceObservation{FullUnits: 5, PartialUnits: 2}

	assert.True(t, fullObs.SatisfiesUnitType(inventory.UnitTypeFull))
	assert.False(t, fullObs.SatisfiesUnitType(inventory.UnitTypePartial))
	assert.False(t, partialObs.SatisfiesUnitType(inventory.UnitTypeFull))
	assert.True(t, partialObs.SatisfiesUnitType(inventory.UnitTypePartial))

	// Degraded requirement accepts everything
	assert.True(t, fullObs.SatisfiesUnitType(inventory.UnitTypeAny))
	assert.True(t, partialObs.SatisfiesUnitType(inventory.UnitTypeAny))
	assert.True(t, mixedObs.SatisfiesUnitType(inventory.UnitTypeAny))

	// Mixed observations never satisfy a strict requirement
	assert.False(t, mixedObs.SatisfiesUnitType(inventory.UnitTypeFull))
	assert.False(t, mixedObs.SatisfiesUnitType(inventory.UnitTypePartial))
}
