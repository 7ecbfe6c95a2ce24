package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	optimizationapp "github.com/rxreturns/backend/internal/application/optimization"
	"github.com/rxreturns/backend/internal/domain/inventory"
	"github.com/rxreturns/backend/internal/domain/pricing"
	"github.com/rxreturns/backend/internal/domain/shared"
)

type optimizationMocks struct {
	lines        *mockLineRepo
	observations *mockObservationRepo
	packages     *mockPackageRepo
	distributors *mockDistributorRepo
}

func setupOptimizationRouter(t *testing.T, pharmacyID uuid.UUID) (*gin.Engine, optimizationMocks) {
	t.Helper()
	mocks := optimizationMocks{
		lines:        new(mockLineRepo),
		observations: new(mockObservationRepo),
		packages:     new(mockPackageRepo),
		distributors: new(mockDistributorRepo),
	}
	service := optimizationapp.NewService(mocks.lines, mocks.observations, mocks.packages, mocks.distributors)
	h := NewOptimizationHandler(service)

	r := setupTestRouter(t, pharmacyID, func(api *gin.RouterGroup) {
		engine := api.Group("/optimization")
		engine.GET("/recommendations", h.GetRecommendations)
		engine.GET("/packages", h.GetPackages)
		engine.POST("/packages/preview", h.GetPackagesForItems)
	})
	return r, mocks
}

func newObservation(t *testing.T, identifier, distributor string, price string) pricing.PriceObservation {
	t.Helper()
	obs, err := pricing.NewPriceObservation(identifier, distributor, 1, 0, decimal.RequireFromString(price), nil)
	require.NoError(t, err)
	return *obs
}

func TestGetRecommendationsInventoryMode(t *testing.T) {
	pharmacyID := uuid.New()
	r, mocks := setupOptimizationRouter(t, pharmacyID)

	line, err := inventory.NewInventoryLine(pharmacyID, "00456-0460-01", "Amoxicillin 500mg", 3, 0)
	require.NoError(t, err)
	mocks.lines.On("FindSnapshot", mock.Anything, pharmacyID).Return([]inventory.InventoryLine{*line}, nil)
	mocks.observations.On("FindPage", mock.Anything, mock.Anything).Return([]pricing.PriceObservation{
		newObservation(t, "0045604601", "McKesson", "4.50"),
		newObservation(t, "00456046001", "Cardinal Health", "3.00"),
	}, nil)

	w := doRequest(t, r, http.MethodGet, "/api/v1/optimization/recommendations", "")

	requireJSONSuccess(t, w, http.StatusOK)
	body := w.Body.String()
	assert.Contains(t, body, `"recommended_distributor":"McKesson"`)
	// spread 1.50 over three units
	assert.Contains(t, body, `"savings":"4.5`)
}

func TestGetRecommendationsSearchMode(t *testing.T) {
	pharmacyID := uuid.New()
	r, mocks := setupOptimizationRouter(t, pharmacyID)

	mocks.observations.On("FindPage", mock.Anything, mock.MatchedBy(func(q pricing.ObservationQuery) bool {
		return len(q.Identifiers) == 1 && q.Identifiers[0] == "00456"
	})).Return([]pricing.PriceObservation{
		newObservation(t, "0045604601", "McKesson", "4.50"),
		newObservation(t, "0045604601", "Cardinal Health", "3.00"),
	}, nil)

	w := doRequest(t, r, http.MethodGet, "/api/v1/optimization/recommendations?identifiers=00456", "")

	requireJSONSuccess(t, w, http.StatusOK)
	// search mode prices a single unit: savings equal the spread
	assert.Contains(t, w.Body.String(), `"savings":"1.5`)
	mocks.lines.AssertNotCalled(t, "FindSnapshot", mock.Anything, mock.Anything)
}

func TestGetRecommendationsEmptyPoolIsNotAnError(t *testing.T) {
	pharmacyID := uuid.New()
	r, mocks := setupOptimizationRouter(t, pharmacyID)

	line, err := inventory.NewInventoryLine(pharmacyID, "0045604601", "Amoxicillin 500mg", 1, 0)
	require.NoError(t, err)
	mocks.lines.On("FindSnapshot", mock.Anything, pharmacyID).Return([]inventory.InventoryLine{*line}, nil)
	mocks.observations.On("FindPage", mock.Anything, mock.Anything).Return([]pricing.PriceObservation{}, nil)

	w := doRequest(t, r, http.MethodGet, "/api/v1/optimization/recommendations", "")

	requireJSONSuccess(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), `"has_pricing":false`)
}

func TestGetRecommendationsStoreFailure(t *testing.T) {
	pharmacyID := uuid.New()
	r, mocks := setupOptimizationRouter(t, pharmacyID)

	mocks.lines.On("FindSnapshot", mock.Anything, pharmacyID).Return(nil, shared.ErrConfiguration)

	w := doRequest(t, r, http.MethodGet, "/api/v1/optimization/recommendations", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UNAVAILABLE")
}

func TestGetPackages(t *testing.T) {
	pharmacyID := uuid.New()
	r, mocks := setupOptimizationRouter(t, pharmacyID)

	line, err := inventory.NewInventoryLine(pharmacyID, "0045604601", "Amoxicillin 500mg", 4, 0)
	require.NoError(t, err)
	mocks.lines.On("FindSnapshot", mock.Anything, pharmacyID).Return([]inventory.InventoryLine{*line}, nil)
	mocks.observations.On("FindPage", mock.Anything, mock.Anything).Return([]pricing.PriceObservation{
		newObservation(t, "0045604601", "McKesson", "4.50"),
	}, nil)
	// one unit already committed to an open package
	mocks.packages.On("CommittedQuantities", mock.Anything, pharmacyID).Return(map[string]int{"00456046001": 1}, nil)
	mocks.distributors.On("FindByName", mock.Anything, "McKesson").Return(nil, shared.ErrNotFound)

	w := doRequest(t, r, http.MethodGet, "/api/v1/optimization/packages", "")

	requireJSONSuccess(t, w, http.StatusOK)
	body := w.Body.String()
	assert.Contains(t, body, `"distributor_name":"McKesson"`)
	assert.Contains(t, body, `"full_units":3`)
}

func TestGetPackagesForItems(t *testing.T) {
	pharmacyID := uuid.New()

	t.Run("valid items", func(t *testing.T) {
		r, mocks := setupOptimizationRouter(t, pharmacyID)
		mocks.observations.On("FindPage", mock.Anything, mock.Anything).Return([]pricing.PriceObservation{
			newObservation(t, "0045604601", "McKesson", "4.50"),
		}, nil)
		mocks.packages.On("CommittedQuantities", mock.Anything, pharmacyID).Return(map[string]int{}, nil)
		mocks.distributors.On("FindByName", mock.Anything, "McKesson").Return(nil, shared.ErrNotFound)

		w := doRequest(t, r, http.MethodPost, "/api/v1/optimization/packages/preview",
			`{"items":[{"identifier":"00456-0460-01","full_units":2}]}`)

		requireJSONSuccess(t, w, http.StatusOK)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		r, mocks := setupOptimizationRouter(t, pharmacyID)
		mocks.observations.On("FindPage", mock.Anything, mock.Anything).Return([]pricing.PriceObservation{}, nil)

		w := doRequest(t, r, http.MethodPost, "/api/v1/optimization/packages/preview",
			`{"items":[{"identifier":"00456-0460-01"}]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty items rejected by binding", func(t *testing.T) {
		r, _ := setupOptimizationRouter(t, pharmacyID)

		w := doRequest(t, r, http.MethodPost, "/api/v1/optimization/packages/preview", `{"items":[]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
