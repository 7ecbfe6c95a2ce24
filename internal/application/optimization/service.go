package optimization

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/inventory"
	"github.com/rxreturns/backend/internal/domain/optimization"
	"github.com/rxreturns/backend/internal/domain/pricing"
	"github.com/rxreturns/backend/internal/domain/shared"
	"github.com/rxreturns/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
)

// DefaultObservationBatchSize is how many observations one store read
// returns. The pool is read in fixed-size pages and concatenated before
// aggregation because the store caps single reads.
const DefaultObservationBatchSize = 500

// Service runs the return optimization engine over request-scoped
// snapshots. It holds no mutable state between requests; every call
// reads inventory and observations fresh and computes from those inputs.
type Service struct {
	lineRepo        inventory.InventoryLineRepository
	observationRepo pricing.PriceObservationRepository
	packageRepo     shipping.ReturnPackageRepository
	distributorRepo pricing.DistributorRepository
	policy          optimization.AvailabilityPolicy
	batchSize       int
	now             func() time.Time
}

// NewService creates a new optimization Service
func NewService(
	lineRepo inventory.InventoryLineRepository,
	observationRepo pricing.PriceObservationRepository,
	packageRepo shipping.ReturnPackageRepository,
	distributorRepo pricing.DistributorRepository,
) *Service {
	return &Service{
		lineRepo:        lineRepo,
		observationRepo: observationRepo,
		packageRepo:     packageRepo,
		distributorRepo: distributorRepo,
		policy:          optimization.AlwaysAvailablePolicy{},
		batchSize:       DefaultObservationBatchSize,
		now:             time.Now,
	}
}

// SetAvailabilityPolicy overrides the distributor activity policy
func (s *Service) SetAvailabilityPolicy(policy optimization.AvailabilityPolicy) {
	if policy != nil {
		s.policy = policy
	}
}

// SetObservationBatchSize overrides the observation read page size
func (s *Service) SetObservationBatchSize(size int) {
	if size > 0 {
		s.batchSize = size
	}
}

// GetRecommendations prices a pharmacy's inventory against the
// observation pool and reports the best-paying distributor per line.
// When the filter carries identifiers the engine runs in search mode:
// the identifiers are priced directly (quantity one each, substring
// matching allowed) and the stored inventory is not read.
func (s *Service) GetRecommendations(ctx context.Context, pharmacyID uuid.UUID, filter RecommendationFilter) (*RecommendationReportResponse, error) {
	if pharmacyID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}

	var (
		lines []inventory.InventoryLine
		mode  optimization.MatchMode
		err   error
	)
	if len(filter.Identifiers) > 0 {
		mode = optimization.MatchSearch
		lines, err = s.searchLines(pharmacyID, filter.Identifiers)
	} else {
		mode = optimization.MatchExact
		lines, err = s.lineRepo.FindSnapshot(ctx, pharmacyID)
	}
	if err != nil {
		return nil, err
	}

	observations, err := s.fetchObservations(ctx, filter.Identifiers)
	if err != nil {
		return nil, err
	}

	builder := optimization.NewRecommendationBuilder(mode, s.policy)
	recommendations := builder.Build(lines, observations)
	comparison := optimization.CompareStrategies(recommendations)

	responses := make([]RecommendationResponse, 0, len(recommendations))
	totalSavings := decimal.Zero
	for i := range recommendations {
		responses = append(responses, toRecommendationResponse(&recommendations[i]))
		totalSavings = totalSavings.Add(recommendations[i].Savings)
	}

	return &RecommendationReportResponse{
		Recommendations:    responses,
		TotalSavings:       totalSavings,
		StrategyComparison: toStrategyComparisonResponse(comparison),
		GeneratedAt:        s.now(),
	}, nil
}

// GetPackages proposes shipment packages for the pharmacy's current
// inventory, net of quantities already committed to its open packages.
func (s *Service) GetPackages(ctx context.Context, pharmacyID uuid.UUID) (*PackageProposalResponse, error) {
	if pharmacyID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}

	lines, err := s.lineRepo.FindSnapshot(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}
	return s.buildProposal(ctx, pharmacyID, lines)
}

// GetPackagesForItems proposes shipment packages for caller-supplied
// items instead of the stored inventory. Identifiers must be well
// formed and every item must carry at least one unit.
func (s *Service) GetPackagesForItems(ctx context.Context, pharmacyID uuid.UUID, request PackageItemsRequest) (*PackageProposalResponse, error) {
	if pharmacyID == uuid.Nil || len(request.Items) == 0 {
		return nil, shared.ErrInvalidInput
	}

	lines := make([]inventory.InventoryLine, 0, len(request.Items))
	for _, item := range request.Items {
		if item.FullUnits+item.PartialUnits <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Item must carry at least one unit")
		}
		line, err := inventory.NewInventoryLine(pharmacyID, item.Identifier, item.Identifier, item.FullUnits, item.PartialUnits)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return s.buildProposal(ctx, pharmacyID, lines)
}

func (s *Service) buildProposal(ctx context.Context, pharmacyID uuid.UUID, lines []inventory.InventoryLine) (*PackageProposalResponse, error) {
	observations, err := s.fetchObservations(ctx, nil)
	if err != nil {
		return nil, err
	}

	committed, err := s.packageRepo.CommittedQuantities(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	builder := optimization.NewRecommendationBuilder(optimization.MatchExact, s.policy)
	recommendations := builder.Build(lines, observations)
	packages, summary := optimization.NewPackageBuilder().Build(recommendations, committed)
	comparison := optimization.CompareStrategies(recommendations)

	responses := make([]PackageResponse, 0, len(packages))
	for i := range packages {
		response := toPackageResponse(&packages[i])
		s.enrichDistributor(ctx, &response)
		responses = append(responses, response)
	}

	return &PackageProposalResponse{
		Packages:               responses,
		ProductsWithPricing:    summary.ProductsWithPricing,
		ProductsWithoutPricing: summary.ProductsWithoutPricing,
		DistributorsUsed:       summary.DistributorsUsed,
		StrategyComparison:     toStrategyComparisonResponse(comparison),
		GeneratedAt:            s.now(),
	}, nil
}

// searchLines turns caller-supplied identifiers into pseudo inventory
// lines. Search lines carry no quantities so unit-type filtering is
// skipped and savings are computed per single unit.
func (s *Service) searchLines(pharmacyID uuid.UUID, identifiers []string) ([]inventory.InventoryLine, error) {
	lines := make([]inventory.InventoryLine, 0, len(identifiers))
	for _, identifier := range identifiers {
		line, err := inventory.NewInventoryLine(pharmacyID, identifier, identifier, 0, 0)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, nil
}

// fetchObservations pages through the observation pool and concatenates
// the batches. Identifiers narrow the read in search mode; the store
// over-fetches on substring candidates and the engine does the precise
// matching.
func (s *Service) fetchObservations(ctx context.Context, identifiers []string) ([]pricing.PriceObservation, error) {
	observations := make([]pricing.PriceObservation, 0, s.batchSize)
	offset := 0
	for {
		page, err := s.observationRepo.FindPage(ctx, pricing.ObservationQuery{
			Identifiers: identifiers,
			Offset:      offset,
			Limit:       s.batchSize,
		})
		if err != nil {
			return nil, err
		}
		observations = append(observations, page...)
		if len(page) < s.batchSize {
			return observations, nil
		}
		offset += s.batchSize
	}
}

// enrichDistributor attaches directory contact details when the
// recommended distributor is known to the directory. A missing entry is
// not an error; the package ships with the name alone.
func (s *Service) enrichDistributor(ctx context.Context, response *PackageResponse) {
	distributor, err := s.distributorRepo.FindByName(ctx, response.DistributorName)
	if err != nil || distributor == nil {
		return
	}
	response.DistributorPhone = distributor.Phone
	response.DistributorEmail = distributor.ContactEmail
}
