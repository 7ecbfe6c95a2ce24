package shipping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxreturns/backend/internal/domain/shared/valueobject"
)

func newTestPackage(t *testing.T) *ReturnPackage {
	t.Helper()
	pkg, err := NewReturnPackage(uuid.New(), "Pharma Returns Inc")
	require.NoError(t, err)
	return pkg
}

func TestNewReturnPackage(t *testing.T) {
	t.Run("valid package", func(t *testing.T) {
		pkg := newTestPackage(t)
		assert.Equal(t, StatusOpen, pkg.Status)
		assert.True(t, pkg.IsOpen())
		assert.Empty(t, pkg.Lines)
	})

	t.Run("empty pharmacy rejected", func(t *testing.T) {
		_, err := NewReturnPackage(uuid.Nil, "Pharma Returns Inc")
		assert.Error(t, err)
	})

	t.Run("empty distributor rejected", func(t *testing.T) {
		_, err := NewReturnPackage(uuid.New(), "")
		assert.Error(t, err)
	})
}

func TestAddLine(t *testing.T) {
	pkg := newTestPackage(t)

	require.NoError(t, pkg.AddLine("00456-0460-01", "Amoxicillin", 10, 0, decimal.NewFromFloat(3.00)))
	require.NoError(t, pkg.AddLine("00456-0461-01", "Lisinopril", 0, 2, decimal.NewFromFloat(1.50)))

	assert.Equal(t, 12, pkg.TotalItems())
	assert.True(t, pkg.TotalEstimatedValue().Equals(valueobject.NewMoneyUSD(decimal.NewFromFloat(33.00))))
	assert.True(t, pkg.Lines[0].EstimatedValue().Equals(valueobject.NewMoneyUSD(decimal.NewFromFloat(30.00))))

	t.Run("zero quantity rejected", func(t *testing.T) {
		assert.Error(t, pkg.AddLine("00456-0462-01", "Metformin", 0, 0, decimal.NewFromInt(1)))
	})

	t.Run("closed package rejects lines", func(t *testing.T) {
		require.NoError(t, pkg.MarkShipped())
		assert.Error(t, pkg.AddLine("00456-0462-01", "Metformin", 1, 0, decimal.NewFromInt(1)))
	})
}

func TestPackageLifecycle(t *testing.T) {
	pkg := newTestPackage(t)

	require.NoError(t, pkg.MarkShipped())
	assert.Equal(t, StatusShipped, pkg.Status)
	assert.NotNil(t, pkg.ShippedAt)
	assert.False(t, pkg.IsOpen())

	require.NoError(t, pkg.MarkDelivered())
	assert.Equal(t, StatusDelivered, pkg.Status)
	assert.NotNil(t, pkg.DeliveredAt)

	t.Run("cannot ship twice", func(t *testing.T) {
		assert.Error(t, pkg.MarkShipped())
	})

	t.Run("cannot deliver unshipped", func(t *testing.T) {
		fresh := newTestPackage(t)
		assert.Error(t, fresh.MarkDelivered())
	})
}
