package pricing

import (
	"context"
	"errors"

	"github.com/rxreturns/backend/internal/domain/pricing"
	"github.com/rxreturns/backend/internal/domain/shared"
)

// DirectoryService maintains the distributor directory used for display
// enrichment on recommendations and packages.
type DirectoryService struct {
	distributorRepo pricing.DistributorRepository
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(distributorRepo pricing.DistributorRepository) *DirectoryService {
	return &DirectoryService{distributorRepo: distributorRepo}
}

// ListDistributors returns directory entries matching the filter
func (s *DirectoryService) ListDistributors(ctx context.Context, filter DistributorListFilter) ([]DistributorResponse, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	distributors, err := s.distributorRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]DistributorResponse, 0, len(distributors))
	for i := range distributors {
		responses = append(responses, toDistributorResponse(&distributors[i]))
	}
	return responses, nil
}

// GetDistributor returns the directory entry with the given name
func (s *DirectoryService) GetDistributor(ctx context.Context, name string) (*DistributorResponse, error) {
	if name == "" {
		return nil, shared.ErrInvalidInput
	}
	distributor, err := s.distributorRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	response := toDistributorResponse(distributor)
	return &response, nil
}

// UpsertDistributor creates a directory entry or updates the existing
// one with the same name.
func (s *DirectoryService) UpsertDistributor(ctx context.Context, request UpsertDistributorRequest) (*DistributorResponse, error) {
	distributor, err := s.distributorRepo.FindByName(ctx, request.Name)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		distributor, err = pricing.NewDistributor(request.Name)
		if err != nil {
			return nil, err
		}
	}

	distributor.ContactEmail = request.ContactEmail
	distributor.Phone = request.Phone
	distributor.AddressLine = request.AddressLine
	distributor.City = request.City
	distributor.State = request.State
	distributor.PostalCode = request.PostalCode

	if err := s.distributorRepo.Save(ctx, distributor); err != nil {
		return nil, err
	}

	response := toDistributorResponse(distributor)
	return &response, nil
}
