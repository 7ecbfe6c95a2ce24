package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/rxreturns/backend/internal/domain/inventory"
	"github.com/rxreturns/backend/internal/domain/pricing"
	"github.com/rxreturns/backend/internal/domain/shared"
	"github.com/rxreturns/backend/internal/domain/shipping"
)

type mockLineRepo struct {
	mock.Mock
}

func (m *mockLineRepo) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryLine), args.Error(1)
}

func (m *mockLineRepo) FindByIDForPharmacy(ctx context.Context, pharmacyID, id uuid.UUID) (*inventory.InventoryLine, error) {
	args := m.Called(ctx, pharmacyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryLine), args.Error(1)
}

func (m *mockLineRepo) FindAllForPharmacy(ctx context.Context, pharmacyID uuid.UUID, filter shared.Filter) ([]inventory.InventoryLine, error) {
	args := m.Called(ctx, pharmacyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryLine), args.Error(1)
}

func (m *mockLineRepo) FindSnapshot(ctx context.Context, pharmacyID uuid.UUID) ([]inventory.InventoryLine, error) {
	args := m.Called(ctx, pharmacyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryLine), args.Error(1)
}

func (m *mockLineRepo) Save(ctx context.Context, line *inventory.InventoryLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *mockLineRepo) DeleteForPharmacy(ctx context.Context, pharmacyID, id uuid.UUID) error {
	args := m.Called(ctx, pharmacyID, id)
	return args.Error(0)
}

func (m *mockLineRepo) CountForPharmacy(ctx context.Context, pharmacyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, pharmacyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockObservationRepo struct {
	mock.Mock
}

func (m *mockObservationRepo) FindPage(ctx context.Context, query pricing.ObservationQuery) ([]pricing.PriceObservation, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.PriceObservation), args.Error(1)
}

func (m *mockObservationRepo) Count(ctx context.Context, query pricing.ObservationQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

type mockPackageRepo struct {
	mock.Mock
}

func (m *mockPackageRepo) FindByIDForPharmacy(ctx context.Context, pharmacyID, id uuid.UUID) (*shipping.ReturnPackage, error) {
	args := m.Called(ctx, pharmacyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ReturnPackage), args.Error(1)
}

func (m *mockPackageRepo) FindAllForPharmacy(ctx context.Context, pharmacyID uuid.UUID, filter shared.Filter) ([]shipping.ReturnPackage, error) {
	args := m.Called(ctx, pharmacyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.ReturnPackage), args.Error(1)
}

func (m *mockPackageRepo) FindOpenForPharmacy(ctx context.Context, pharmacyID uuid.UUID) ([]shipping.ReturnPackage, error) {
	args := m.Called(ctx, pharmacyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.ReturnPackage), args.Error(1)
}

func (m *mockPackageRepo) CommittedQuantities(ctx context.Context, pharmacyID uuid.UUID) (map[string]int, error) {
	args := m.Called(ctx, pharmacyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *mockPackageRepo) Save(ctx context.Context, pkg *shipping.ReturnPackage) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *mockPackageRepo) DeleteForPharmacy(ctx context.Context, pharmacyID, id uuid.UUID) error {
	args := m.Called(ctx, pharmacyID, id)
	return args.Error(0)
}

func (m *mockPackageRepo) CountForPharmacy(ctx context.Context, pharmacyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, pharmacyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockDistributorRepo struct {
	mock.Mock
}

func (m *mockDistributorRepo) FindByName(ctx context.Context, name string) (*pricing.Distributor, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Distributor), args.Error(1)
}

func (m *mockDistributorRepo) FindAll(ctx context.Context, filter shared.Filter) ([]pricing.Distributor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.Distributor), args.Error(1)
}

func (m *mockDistributorRepo) Save(ctx context.Context, distributor *pricing.Distributor) error {
	args := m.Called(ctx, distributor)
	return args.Error(0)
}
