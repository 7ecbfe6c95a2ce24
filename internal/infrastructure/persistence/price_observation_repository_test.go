package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPriceObservationRepository creates a GormPriceObservationRepository with a mocked SQL connection
func newMockPriceObservationRepository(t *testing.T) (*GormPriceObservationRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPriceObservationRepository(gormDB), mock, mockDB
}

func TestGormPriceObservationRepository_FindPage(t *testing.T) {
	t.Run("reads a page ordered by observation date", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceObservationRepository(t)
		defer mockDB.Close()

		reportDate := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "identifier", "distributor_name", "full_units", "partial_units", "price_per_unit", "report_date"}).
			AddRow(uuid.New(), "00456-0460-01", "Alpha Returns", 5, 0, "3.0000", reportDate).
			AddRow(uuid.New(), "00456046001", "Beta Pharma Credit", 2, 0, "2.0000", reportDate)

		mock.ExpectQuery(`SELECT \* FROM "price_observations" ORDER BY COALESCE\(report_date, uploaded_at, created_at\) DESC, id ASC LIMIT .*`).
			WithArgs(500).
			WillReturnRows(rows)

		observations, err := repo.FindPage(context.Background(), pricing.ObservationQuery{Limit: 500})

		assert.NoError(t, err)
		assert.Len(t, observations, 2)
		assert.Equal(t, "Alpha Returns", observations[0].DistributorName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("narrows by identifier against raw and stripped forms", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceObservationRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "identifier", "distributor_name", "full_units", "partial_units", "price_per_unit", "report_date"}).
			AddRow(uuid.New(), "00456-0460-01", "Alpha Returns", 5, 0, "3.0000", nil)

		mock.ExpectQuery(`SELECT \* FROM "price_observations" WHERE \(identifier LIKE \$1 OR REPLACE\(REPLACE\(identifier, '-', ''\), ' ', ''\) LIKE \$2\) ORDER BY COALESCE\(report_date, uploaded_at, created_at\) DESC, id ASC LIMIT .*`).
			WithArgs("%00456-0460-01%", "%00456046001%", 100).
			WillReturnRows(rows)

		query := pricing.ObservationQuery{Identifiers: []string{"00456-0460-01"}, Limit: 100}
		observations, err := repo.FindPage(context.Background(), query)

		assert.NoError(t, err)
		require.Len(t, observations, 1)
		assert.Equal(t, "00456-0460-01", observations[0].Identifier)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("caps oversized page requests", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceObservationRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "identifier", "distributor_name", "full_units", "partial_units", "price_per_unit", "report_date"})

		mock.ExpectQuery(`SELECT \* FROM "price_observations" ORDER BY COALESCE\(report_date, uploaded_at, created_at\) DESC, id ASC LIMIT .*`).
			WithArgs(MaxObservationPageSize).
			WillReturnRows(rows)

		_, err := repo.FindPage(context.Background(), pricing.ObservationQuery{Limit: 100000})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPriceObservationRepository_Count(t *testing.T) {
	t.Run("counts all observations", func(t *testing.T) {
		repo, mock, mockDB := newMockPriceObservationRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "price_observations"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

		count, err := repo.Count(context.Background(), pricing.ObservationQuery{})

		assert.NoError(t, err)
		assert.Equal(t, int64(42), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
