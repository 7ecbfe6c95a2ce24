package optimization

import (
	"sort"

	"github.com/rxreturns/backend/internal/domain/shared/valueobject"
)

// StrategyComparison quantifies the benefit of spreading returns over
// multiple distributors instead of consolidating with a single one.
// Totals are settled in USD, like all reverse distributor credits.
type StrategyComparison struct {
	// BestSingleDistributor is the distributor that maximizes earnings
	// when every line ships to the same buyer
	BestSingleDistributor string

	// SingleDistributorTotal is the earnings under that consolidation
	SingleDistributorTotal valueobject.Money

	// MultiDistributorTotal is the earnings when each line ships to its
	// own best payer
	MultiDistributorTotal valueobject.Money

	// AdditionalEarnings is the advantage of the multi-distributor
	// strategy, never negative
	AdditionalEarnings valueobject.Money
}

// CompareStrategies computes aggregate earnings under the
// single-distributor and best-per-product policies.
//
// Single-distributor: every candidate appearing anywhere in the
// recommendations (recommended or alternative) is costed as if it
// received the entire return; lines the candidate has no data for fall
// back to the line's worst observed price. The best candidate's total
// is kept. Multi-distributor: each line independently earns its highest
// available price. Lines without pricing contribute to neither total.
func CompareStrategies(recommendations []Recommendation) StrategyComparison {
	comparison := StrategyComparison{
		SingleDistributorTotal: valueobject.ZeroUSD(),
		MultiDistributorTotal:  valueobject.ZeroUSD(),
		AdditionalEarnings:     valueobject.ZeroUSD(),
	}

	priced := make([]*Recommendation, 0, len(recommendations))
	candidateSet := make(map[string]struct{})
	for i := range recommendations {
		rec := &recommendations[i]
		if !rec.HasPricing() {
			continue
		}
		priced = append(priced, rec)
		candidateSet[rec.RecommendedDistributor] = struct{}{}
		for j := range rec.Alternatives {
			candidateSet[rec.Alternatives[j].Name] = struct{}{}
		}
	}
	if len(priced) == 0 {
		return comparison
	}

	// Deterministic iteration so ties resolve to the same candidate
	candidates := make([]string, 0, len(candidateSet))
	for name := range candidateSet {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)

	for _, candidate := range candidates {
		total := valueobject.ZeroUSD()
		for _, rec := range priced {
			lineTotal := valueobject.NewMoneyUSD(rec.PriceFor(candidate)).MultiplyByInt(int64(rec.Quantity()))
			total = total.MustAdd(lineTotal)
		}
		if total.Amount().GreaterThan(comparison.SingleDistributorTotal.Amount()) || comparison.BestSingleDistributor == "" {
			comparison.BestSingleDistributor = candidate
			comparison.SingleDistributorTotal = total
		}
	}

	for _, rec := range priced {
		lineTotal := valueobject.NewMoneyUSD(rec.BestPrice()).MultiplyByInt(int64(rec.Quantity()))
		comparison.MultiDistributorTotal = comparison.MultiDistributorTotal.MustAdd(lineTotal)
	}

	additional := comparison.MultiDistributorTotal.MustSubtract(comparison.SingleDistributorTotal)
	if additional.IsPositive() {
		comparison.AdditionalEarnings = additional
	}

	return comparison
}
