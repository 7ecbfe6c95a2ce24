package pricing

import (
	"context"

	"github.com/rxreturns/backend/internal/domain/shared"
)

// ObservationQuery describes one page of the observation read. Results
// are always ordered by observation date descending (report date, then
// upload date, then creation date) so that latest-wins aggregation can
// take the first record per (distributor, identifier) pair.
type ObservationQuery struct {
	// Identifiers optionally restricts the read to candidate identifiers
	// (search mode). Matching is widened in SQL with LIKE on both the
	// stored and normalized form; precise matching happens in the engine.
	Identifiers []string
	Offset      int
	Limit       int
}

// PriceObservationRepository defines the read-only view over the global
// observation pool. The store caps single reads, so callers page through
// results in fixed-size batches and concatenate before aggregation.
type PriceObservationRepository interface {
	// FindPage returns one batch of observations for the query
	FindPage(ctx context.Context, query ObservationQuery) ([]PriceObservation, error)

	// Count returns the total number of observations matching the query
	Count(ctx context.Context, query ObservationQuery) (int64, error)
}

// DistributorRepository defines the interface for the distributor directory
type DistributorRepository interface {
	// FindByName finds a distributor by its exact name
	FindByName(ctx context.Context, name string) (*Distributor, error)

	// FindAll lists distributors
	FindAll(ctx context.Context, filter shared.Filter) ([]Distributor, error)

	// Save creates or updates a distributor
	Save(ctx context.Context, distributor *Distributor) error
}
