package stats

import (
	"context"

	"github.com/kailas-cloud/salesgate/internal/domain/aggregation"
	"github.com/kailas-cloud/salesgate/internal/domain/query"
	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
)

// Repository defines the read contract for sales records.
type Repository interface {
	List(ctx context.Context, q query.Query) ([]domsales.Record, error)
	Sources(ctx context.Context, q query.Query) ([]domsales.Document, error)
	Aggregate(ctx context.Context, q query.Query) (aggregation.Result, error)
}

// ReadinessChecker reports whether the collection is ready to be queried.
type ReadinessChecker interface {
	Ready() bool
}
