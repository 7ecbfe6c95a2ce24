package shipping

import (
	"context"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/shared"
	"github.com/rxreturns/backend/internal/domain/shipping"
)

// Service manages the lifecycle of a pharmacy's return packages:
// committing a proposed package into an open shipment and walking it
// through shipped and delivered.
type Service struct {
	packageRepo shipping.ReturnPackageRepository
}

// NewService creates a new shipping Service
func NewService(packageRepo shipping.ReturnPackageRepository) *Service {
	return &Service{packageRepo: packageRepo}
}

// CommitPackage persists a proposed package as an open shipment. Once
// committed, its quantities count against future package proposals.
func (s *Service) CommitPackage(ctx context.Context, pharmacyID uuid.UUID, request CommitPackageRequest) (*PackageResponse, error) {
	pkg, err := shipping.NewReturnPackage(pharmacyID, request.DistributorName)
	if err != nil {
		return nil, err
	}
	for _, line := range request.Lines {
		if err := pkg.AddLine(line.Identifier, line.ProductName, line.FullUnits, line.PartialUnits, line.PricePerUnit); err != nil {
			return nil, err
		}
	}
	if err := s.packageRepo.Save(ctx, pkg); err != nil {
		return nil, err
	}

	response := toPackageResponse(pkg)
	return &response, nil
}

// ListPackages returns one page of the pharmacy's packages
func (s *Service) ListPackages(ctx context.Context, pharmacyID uuid.UUID, filter PackageListFilter) (*shared.Paginated[PackageResponse], error) {
	if pharmacyID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Status,
	}

	packages, err := s.packageRepo.FindAllForPharmacy(ctx, pharmacyID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.packageRepo.CountForPharmacy(ctx, pharmacyID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]PackageResponse, 0, len(packages))
	for i := range packages {
		responses = append(responses, toPackageResponse(&packages[i]))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	result := shared.NewPaginated(responses, total, page, domainFilter.Limit())
	return &result, nil
}

// GetPackage returns a single package with its lines
func (s *Service) GetPackage(ctx context.Context, pharmacyID, packageID uuid.UUID) (*PackageResponse, error) {
	pkg, err := s.packageRepo.FindByIDForPharmacy(ctx, pharmacyID, packageID)
	if err != nil {
		return nil, err
	}
	response := toPackageResponse(pkg)
	return &response, nil
}

// MarkShipped transitions an open package to shipped. Shipped packages
// no longer count against package proposals.
func (s *Service) MarkShipped(ctx context.Context, pharmacyID, packageID uuid.UUID) (*PackageResponse, error) {
	return s.transition(ctx, pharmacyID, packageID, (*shipping.ReturnPackage).MarkShipped)
}

// MarkDelivered transitions a shipped package to delivered
func (s *Service) MarkDelivered(ctx context.Context, pharmacyID, packageID uuid.UUID) (*PackageResponse, error) {
	return s.transition(ctx, pharmacyID, packageID, (*shipping.ReturnPackage).MarkDelivered)
}

// DeletePackage removes an open package, releasing its quantities back
// to future proposals. Shipped and delivered packages are history and
// cannot be deleted.
func (s *Service) DeletePackage(ctx context.Context, pharmacyID, packageID uuid.UUID) error {
	pkg, err := s.packageRepo.FindByIDForPharmacy(ctx, pharmacyID, packageID)
	if err != nil {
		return err
	}
	if !pkg.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", "Only open packages can be deleted")
	}
	return s.packageRepo.DeleteForPharmacy(ctx, pharmacyID, packageID)
}

func (s *Service) transition(ctx context.Context, pharmacyID, packageID uuid.UUID, apply func(*shipping.ReturnPackage) error) (*PackageResponse, error) {
	pkg, err := s.packageRepo.FindByIDForPharmacy(ctx, pharmacyID, packageID)
	if err != nil {
		return nil, err
	}
	if err := apply(pkg); err != nil {
		return nil, err
	}
	if err := s.packageRepo.Save(ctx, pkg); err != nil {
		return nil, err
	}
	response := toPackageResponse(pkg)
	return &response, nil
}
