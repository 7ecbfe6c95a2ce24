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

	shippingapp "github.com/rxreturns/backend/internal/application/shipping"
	"github.com/rxreturns/backend/internal/domain/shared"
	"github.com/rxreturns/backend/internal/domain/shipping"
)

func setupPackageRouter(t *testing.T, pharmacyID uuid.UUID, repo *mockPackageRepo) *gin.Engine {
	t.Helper()
	h := NewPackageHandler(shippingapp.NewService(repo))
	return setupTestRouter(t, pharmacyID, func(api *gin.RouterGroup) {
		packages := api.Group("/packages")
		packages.POST("", h.CommitPackage)
		packages.GET("", h.ListPackages)
		packages.GET("/:id", h.GetPackage)
		packages.POST("/:id/ship", h.MarkShipped)
		packages.POST("/:id/deliver", h.MarkDelivered)
		packages.DELETE("/:id", h.DeletePackage)
	})
}

func newTestPackage(t *testing.T, pharmacyID uuid.UUID) *shipping.ReturnPackage {
	t.Helper()
	pkg, err := shipping.NewReturnPackage(pharmacyID, "McKesson")
	require.NoError(t, err)
	require.NoError(t, pkg.AddLine("00456-0460-01", "Amoxicillin 500mg", 3, 0, decimal.RequireFromString("4.50")))
	return pkg
}

func TestPackageHandlerCommit(t *testing.T) {
	pharmacyID := uuid.New()

	t.Run("valid commit", func(t *testing.T) {
		repo := new(mockPackageRepo)
		r := setupPackageRouter(t, pharmacyID, repo)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(pkg *shipping.ReturnPackage) bool {
			return pkg.PharmacyID == pharmacyID &&
				pkg.DistributorName == "McKesson" &&
				pkg.Status == shipping.StatusOpen &&
				len(pkg.Lines) == 1
		})).Return(nil)

		w := doRequest(t, r, http.MethodPost, "/api/v1/packages",
			`{"distributor_name":"McKesson","lines":[{"identifier":"00456-0460-01","product_name":"Amoxicillin 500mg","full_units":3,"price_per_unit":"4.50"}]}`)

		requireJSONSuccess(t, w, http.StatusCreated)
		repo.AssertExpectations(t)
	})

	t.Run("empty lines rejected", func(t *testing.T) {
		repo := new(mockPackageRepo)
		r := setupPackageRouter(t, pharmacyID, repo)

		w := doRequest(t, r, http.MethodPost, "/api/v1/packages",
			`{"distributor_name":"McKesson","lines":[]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPackageHandlerList(t *testing.T) {
	pharmacyID := uuid.New()
	repo := new(mockPackageRepo)
	r := setupPackageRouter(t, pharmacyID, repo)

	packages := []shipping.ReturnPackage{*newTestPackage(t, pharmacyID)}
	repo.On("FindAllForPharmacy", mock.Anything, pharmacyID, mock.Anything).Return(packages, nil)
	repo.On("CountForPharmacy", mock.Anything, pharmacyID, mock.Anything).Return(int64(1), nil)

	w := doRequest(t, r, http.MethodGet, "/api/v1/packages?status=OPEN", "")

	requireJSONSuccess(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), `"status":"OPEN"`)
}

func TestPackageHandlerTransitions(t *testing.T) {
	pharmacyID := uuid.New()

	t.Run("ship open package", func(t *testing.T) {
		repo := new(mockPackageRepo)
		r := setupPackageRouter(t, pharmacyID, repo)
		pkg := newTestPackage(t, pharmacyID)
		repo.On("FindByIDForPharmacy", mock.Anything, pharmacyID, pkg.ID).Return(pkg, nil)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(p *shipping.ReturnPackage) bool {
			return p.Status == shipping.StatusShipped && p.ShippedAt != nil
		})).Return(nil)

		w := doRequest(t, r, http.MethodPost, "/api/v1/packages/"+pkg.ID.String()+"/ship", "")

		requireJSONSuccess(t, w, http.StatusOK)
		assert.Contains(t, w.Body.String(), `"status":"SHIPPED"`)
	})

	t.Run("deliver before shipping maps to 422", func(t *testing.T) {
		repo := new(mockPackageRepo)
		r := setupPackageRouter(t, pharmacyID, repo)
		pkg := newTestPackage(t, pharmacyID)
		repo.On("FindByIDForPharmacy", mock.Anything, pharmacyID, pkg.ID).Return(pkg, nil)

		w := doRequest(t, r, http.MethodPost, "/api/v1/packages/"+pkg.ID.String()+"/deliver", "")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_STATE")
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing package maps to 404", func(t *testing.T) {
		repo := new(mockPackageRepo)
		r := setupPackageRouter(t, pharmacyID, repo)
		packageID := uuid.New()
		repo.On("FindByIDForPharmacy", mock.Anything, pharmacyID, packageID).Return(nil, shared.ErrNotFound)

		w := doRequest(t, r, http.MethodPost, "/api/v1/packages/"+packageID.String()+"/ship", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPackageHandlerDelete(t *testing.T) {
	pharmacyID := uuid.New()
	repo := new(mockPackageRepo)
	r := setupPackageRouter(t, pharmacyID, repo)
	packageID := uuid.New()
	repo.On("DeleteForPharmacy", mock.Anything, pharmacyID, packageID).Return(nil)

	w := doRequest(t, r, http.MethodDelete, "/api/v1/packages/"+packageID.String(), "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}
