package optimization

import (
	"time"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/inventory"
	"github.com/rxreturns/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// Alternative is a distributor other than the recommended one that has
// pricing for a line. Difference is its price minus the recommended
// price and is never positive.
type Alternative struct {
	Name       string
	Price      decimal.Decimal
	Difference decimal.Decimal
	Active     bool
}

// Recommendation is the engine's suggested best-paying distributor for
// one inventory line. Derived per request, never persisted. A line
// without any matching observation still gets a Recommendation with an
// empty distributor and zero prices: "no data" is a valid business
// outcome, not an error.
type Recommendation struct {
	LineID                 uuid.UUID
	Identifier             string
	ProductName            string
	FullUnits              int
	PartialUnits           int
	RecommendedDistributor string
	RecommendedActive      bool
	ExpectedPrice          decimal.Decimal
	WorstPrice             decimal.Decimal
	Alternatives           []Alternative
	Savings                decimal.Decimal
}

// HasPricing reports whether at least one observation matched the line
func (r *Recommendation) HasPricing() bool {
	return r.RecommendedDistributor != ""
}

// Quantity returns the total unit count on the underlying line
func (r *Recommendation) Quantity() int {
	return r.FullUnits + r.PartialUnits
}

// BestPrice returns the highest price across the recommended
// distributor and all alternatives.
func (r *Recommendation) BestPrice() decimal.Decimal {
	best := r.ExpectedPrice
	for i := range r.Alternatives {
		if r.Alternatives[i].Price.GreaterThan(best) {
			best = r.Alternatives[i].Price
		}
	}
	return best
}

// PriceFor returns the price the named distributor offers for this
// line, falling back to the line's worst price when the distributor has
// no data for it.
func (r *Recommendation) PriceFor(distributor string) decimal.Decimal {
	if distributor == r.RecommendedDistributor {
		return r.ExpectedPrice
	}
	for i := range r.Alternatives {
		if r.Alternatives[i].Name == distributor {
			return r.Alternatives[i].Price
		}
	}
	return r.WorstPrice
}

// RecommendationBuilder turns inventory lines and the observation pool
// into per-line recommendations. Stateless between calls.
type RecommendationBuilder struct {
	matcher *Matcher
	policy  AvailabilityPolicy
	now     func() time.Time
}

// NewRecommendationBuilder creates a builder for the given match mode
// and availability policy.
func NewRecommendationBuilder(mode MatchMode, policy AvailabilityPolicy) *RecommendationBuilder {
	if policy == nil {
		policy = AlwaysAvailablePolicy{}
	}
	return &RecommendationBuilder{
		matcher: NewMatcher(mode),
		policy:  policy,
		now:     time.Now,
	}
}

// Build produces one Recommendation per inventory line
func (b *RecommendationBuilder) Build(lines []inventory.InventoryLine, observations []pricing.PriceObservation) []Recommendation {
	recommendations := make([]Recommendation, 0, len(lines))
	for i := range lines {
		recommendations = append(recommendations, b.BuildForLine(&lines[i], observations))
	}
	return recommendations
}

// BuildForLine produces the Recommendation for a single line. Matched
// distributors are ranked by price descending: this is a returns-credit
// domain, the highest payer is the best choice.
func (b *RecommendationBuilder) BuildForLine(line *inventory.InventoryLine, observations []pricing.PriceObservation) Recommendation {
	rec := Recommendation{
		LineID:        line.ID,
		Identifier:    line.Identifier,
		ProductName:   line.ProductName,
		FullUnits:     line.FullUnits,
		PartialUnits:  line.PartialUnits,
		ExpectedPrice: decimal.Zero,
		WorstPrice:    decimal.Zero,
		Alternatives:  make([]Alternative, 0),
		Savings:       decimal.Zero,
	}

	quotes := b.matcher.QuotesForLine(line, observations)
	if len(quotes) == 0 {
		return rec
	}

	now := b.now()
	best := quotes[0]
	worst := quotes[len(quotes)-1]

	rec.RecommendedDistributor = best.Distributor
	rec.RecommendedActive = b.policy.IsAvailable(best.ObservedAt, now)
	rec.ExpectedPrice = best.Price
	rec.WorstPrice = worst.Price

	for _, quote := range quotes[1:] {
		rec.Alternatives = append(rec.Alternatives, Alternative{
			Name:       quote.Distributor,
			Price:      quote.Price,
			Difference: quote.Price.Sub(best.Price),
			Active:     b.policy.IsAvailable(quote.ObservedAt, now),
		})
	}

	// Search mode is a per-unit price lookup, not an inventory
	// valuation, so savings are computed for a single unit.
	quantity := int64(line.Quantity())
	if b.matcher.Mode() == MatchSearch {
		quantity = 1
	}
	savings := best.Price.Sub(worst.Price).Mul(decimal.NewFromInt(quantity))
	if savings.IsNegative() {
		savings = decimal.Zero
	}
	rec.Savings = savings

	return rec
}
