package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventoryLine(t *testing.T) {
	pharmacyID := uuid.New()

	t.Run("valid line", func(t *testing.T) {
		line, err := NewInventoryLine(pharmacyID, "00456-0460-01", "Amoxicillin 500mg", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, pharmacyID, line.PharmacyID)
		assert.Equal(t, 10, line.Quantity())
		assert.Equal(t, 1, line.GetVersion())
	})

	t.Run("empty pharmacy rejected", func(t *testing.T) {
		_, err := NewInventoryLine(uuid.Nil, "00456-0460-01", "Amoxicillin", 10, 0)
		assert.Error(t, err)
	})

	t.Run("malformed identifier rejected", func(t *testing.T) {
		_, err := NewInventoryLine(pharmacyID, "not-an-ndc", "Amoxicillin", 10, 0)
		assert.Error(t, err)
	})

	t.Run("negative units rejected", func(t *testing.T) {
		_, err := NewInventoryLine(pharmacyID, "00456-0460-01", "Amoxicillin", -1, 0)
		assert.Error(t, err)
	})
}

func TestUnitTypeRequirement(t *testing.T) {
	pharmacyID := uuid.New()

	tests := []struct {
		name         string
		fullUnits    int
		partialUnits int
		expected     UnitType
	}{
		{"full units only", 10, 0, UnitTypeFull},
		{"partial units only", 0, 3, UnitTypePartial},
		{"both set degrades", 10, 3, UnitTypeAny},
		{"both zero degrades", 0, 0, UnitTypeAny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := NewInventoryLine(pharmacyID, "00456-0460-01", "Amoxicillin", tt.fullUnits, tt.partialUnits)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, line.UnitTypeRequirement())
		})
	}
}

func TestUpdateQuantities(t *testing.T) {
	line, err := NewInventoryLine(uuid.New(), "00456-0460-01", "Amoxicillin", 10, 0)
	require.NoError(t, err)

	require.NoError(t, line.UpdateQuantities(0, 4))
	assert.Equal(t, UnitTypePartial, line.UnitTypeRequirement())
	assert.Equal(t, 2, line.GetVersion())

	assert.Error(t, line.UpdateQuantities(-5, 0))
}

func TestRename(t *testing.T) {
	line, err := NewInventoryLine(uuid.New(), "00456-0460-01", "Amoxicillin", 10, 0)
	require.NoError(t, err)

	require.NoError(t, line.Rename("Amoxicillin 500mg Capsule"))
	assert.Equal(t, "Amoxicillin 500mg Capsule", line.ProductName)
	assert.Error(t, line.Rename(""))
}
