package optimization

import (
	"time"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/optimization"
	"github.com/shopspring/decimal"
)

// RecommendationFilter represents filter options for the recommendation report
type RecommendationFilter struct {
	// Identifiers switches the engine into search mode: instead of the
	// pharmacy's stored inventory, price these (possibly partial) codes
	Identifiers []string `form:"identifiers"`
}

// AlternativeResponse represents a non-recommended distributor's offer
type AlternativeResponse struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Difference decimal.Decimal `json:"difference"`
	Active     bool            `json:"active"`
}

// RecommendationResponse represents one priced inventory line in API responses
type RecommendationResponse struct {
	LineID                 uuid.UUID             `json:"line_id"`
	Identifier             string                `json:"identifier"`
	ProductName            string                `json:"product_name"`
	FullUnits              int                   `json:"full_units"`
	PartialUnits           int                   `json:"partial_units"`
	HasPricing             bool                  `json:"has_pricing"`
	RecommendedDistributor string                `json:"recommended_distributor,omitempty"`
	RecommendedActive      bool                  `json:"recommended_active"`
	ExpectedPrice          decimal.Decimal       `json:"expected_price"`
	WorstPrice             decimal.Decimal       `json:"worst_price"`
	Alternatives           []AlternativeResponse `json:"alternatives"`
	Savings                decimal.Decimal       `json:"savings"`
}

// StrategyComparisonResponse represents the earnings strategy comparison
type StrategyComparisonResponse struct {
	BestSingleDistributor  string          `json:"best_single_distributor,omitempty"`
	SingleDistributorTotal decimal.Decimal `json:"single_distributor_total"`
	MultiDistributorTotal  decimal.Decimal `json:"multi_distributor_total"`
	AdditionalEarnings     decimal.Decimal `json:"additional_earnings"`
}

// RecommendationReportResponse represents the full recommendation report
type RecommendationReportResponse struct {
	Recommendations    []RecommendationResponse   `json:"recommendations"`
	TotalSavings       decimal.Decimal            `json:"total_savings"`
	StrategyComparison StrategyComparisonResponse `json:"strategy_comparison"`
	GeneratedAt        time.Time                  `json:"generated_at"`
}

// PackageLineResponse represents one product in a proposed package
type PackageLineResponse struct {
	Identifier     string          `json:"identifier"`
	ProductName    string          `json:"product_name"`
	FullUnits      int             `json:"full_units"`
	PartialUnits   int             `json:"partial_units"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
}

// PackageResponse represents one proposed shipment package
type PackageResponse struct {
	DistributorName     string                `json:"distributor_name"`
	DistributorPhone    string                `json:"distributor_phone,omitempty"`
	DistributorEmail    string                `json:"distributor_email,omitempty"`
	Lines               []PackageLineResponse `json:"lines"`
	TotalItems          int                   `json:"total_items"`
	TotalEstimatedValue decimal.Decimal       `json:"total_estimated_value"`
}

// PackageProposalResponse represents the full package proposal
type PackageProposalResponse struct {
	Packages               []PackageResponse          `json:"packages"`
	ProductsWithPricing    int                        `json:"products_with_pricing"`
	ProductsWithoutPricing int                        `json:"products_without_pricing"`
	DistributorsUsed       int                        `json:"distributors_used"`
	StrategyComparison     StrategyComparisonResponse `json:"strategy_comparison"`
	GeneratedAt            time.Time                  `json:"generated_at"`
}

// PackageItemRequest represents one ad-hoc line in a package proposal
// request that prices caller-supplied quantities instead of the stored
// inventory.
type PackageItemRequest struct {
	Identifier   string `json:"identifier" binding:"required"`
	FullUnits    int    `json:"full_units" binding:"min=0"`
	PartialUnits int    `json:"partial_units" binding:"min=0"`
}

// PackageItemsRequest represents an ad-hoc package proposal request
type PackageItemsRequest struct {
	Items []PackageItemRequest `json:"items" binding:"required,min=1,dive"`
}

func toRecommendationResponse(rec *optimization.Recommendation) RecommendationResponse {
	alternatives := make([]AlternativeResponse, 0, len(rec.Alternatives))
	for _, alt := range rec.Alternatives {
		alternatives = append(alternatives, AlternativeResponse{
			Name:       alt.Name,
			Price:      alt.Price,
			Difference: alt.Difference,
			Active:     alt.Active,
		})
	}
	return RecommendationResponse{
		LineID:                 rec.LineID,
		Identifier:             rec.Identifier,
		ProductName:            rec.ProductName,
		FullUnits:              rec.FullUnits,
		PartialUnits:           rec.PartialUnits,
		HasPricing:             rec.HasPricing(),
		RecommendedDistributor: rec.RecommendedDistributor,
		RecommendedActive:      rec.RecommendedActive,
		ExpectedPrice:          rec.ExpectedPrice,
		WorstPrice:             rec.WorstPrice,
		Alternatives:           alternatives,
		Savings:                rec.Savings,
	}
}

func toStrategyComparisonResponse(comparison optimization.StrategyComparison) StrategyComparisonResponse {
	return StrategyComparisonResponse{
		BestSingleDistributor:  comparison.BestSingleDistributor,
		SingleDistributorTotal: comparison.SingleDistributorTotal.Amount(),
		MultiDistributorTotal:  comparison.MultiDistributorTotal.Amount(),
		AdditionalEarnings:     comparison.AdditionalEarnings.Amount(),
	}
}

func toPackageResponse(pkg *optimization.Package) PackageResponse {
	lines := make([]PackageLineResponse, 0, len(pkg.Lines))
	for _, line := range pkg.Lines {
		lines = append(lines, PackageLineResponse{
			Identifier:     line.Identifier,
			ProductName:    line.ProductName,
			FullUnits:      line.FullUnits,
			PartialUnits:   line.PartialUnits,
			PricePerUnit:   line.PricePerUnit,
			EstimatedValue: line.EstimatedValue,
		})
	}
	return PackageResponse{
		DistributorName:     pkg.DistributorName,
		Lines:               lines,
		TotalItems:          pkg.TotalItems,
		TotalEstimatedValue: pkg.TotalEstimatedValue,
	}
}
