package optimization

import (
	"sort"
	"time"

	"github.com/rxreturns/backend/internal/domain/inventory"
	"github.com/rxreturns/backend/internal/domain/pricing"
	"github.com/rxreturns/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// MatchMode selects how line identifiers are compared against
// observation identifiers.
type MatchMode int

const (
	// MatchExact requires normalized identifier equality (default)
	MatchExact MatchMode = iota
	// MatchSearch allows substring containment for partial identifiers,
	// evaluated against both the full and the normalized form
	MatchSearch
)

// DistributorQuote is the price retained for one distributor on one
// inventory line after latest-wins aggregation.
type DistributorQuote struct {
	Distributor string
	Price       decimal.Decimal
	ObservedAt  time.Time
}

// Matcher joins inventory lines against the observation pool. It holds
// no state beyond the match mode; every call computes from its inputs.
type Matcher struct {
	mode MatchMode
}

// NewMatcher creates a matcher for the given mode
func NewMatcher(mode MatchMode) *Matcher {
	return &Matcher{mode: mode}
}

// Mode returns the matcher's match mode
func (m *Matcher) Mode() MatchMode {
	return m.mode
}

// QuotesForLine selects the quotes pricing one inventory line.
//
// An observation contributes only if its identifier matches the line
// and its full/partial split satisfies the line's unit-type
// requirement. Observations are ordered by observation date descending
// and only the latest one per distributor is retained: a distributor's
// current price is whatever it paid most recently, not an average over
// history. The returned quotes are ranked by price descending, so the
// first entry is the best payer.
func (m *Matcher) QuotesForLine(line *inventory.InventoryLine, observations []pricing.PriceObservation) []DistributorQuote {
	requirement := line.UnitTypeRequirement()

	matched := make([]*pricing.PriceObservation, 0)
	for i := range observations {
		obs := &observations[i]
		if !m.identifierMatches(line.Identifier, obs.Identifier) {
			continue
		}
		if !obs.SatisfiesUnitType(requirement) {
			continue
		}
		matched = append(matched, obs)
	}
	if len(matched) == 0 {
		return nil
	}

	// Latest first; stable so equal dates keep store order
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ObservedAt().After(matched[j].ObservedAt())
	})

	seen := make(map[string]struct{}, len(matched))
	quotes := make([]DistributorQuote, 0, len(matched))
	for _, obs := range matched {
		if _, ok := seen[obs.DistributorName]; ok {
			continue
		}
		seen[obs.DistributorName] = struct{}{}
		quotes = append(quotes, DistributorQuote{
			Distributor: obs.DistributorName,
			Price:       obs.PricePerUnit,
			ObservedAt:  obs.ObservedAt(),
		})
	}

	// Highest payer first; ties break on name for deterministic output
	sort.SliceStable(quotes, func(i, j int) bool {
		if !quotes[i].Price.Equal(quotes[j].Price) {
			return quotes[i].Price.GreaterThan(quotes[j].Price)
		}
		return quotes[i].Distributor < quotes[j].Distributor
	})

	return quotes
}

// identifierMatches compares a line identifier against an observation
// identifier under the matcher's mode. In search mode the line carries
// a caller-supplied, possibly partial identifier.
func (m *Matcher) identifierMatches(lineIdentifier, obsIdentifier string) bool {
	if m.mode == MatchSearch {
		return valueobject.NDCContains(obsIdentifier, lineIdentifier)
	}
	return valueobject.NDCEqual(lineIdentifier, obsIdentifier)
}
