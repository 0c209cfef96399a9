package salesgate

import "github.com/kailas-cloud/salesgate/internal/domain"

// ErrMalformedAggregation is returned by Stats when the store answers with
// aggregation results of an unexpected shape. Use errors.Is to check.
var ErrMalformedAggregation = domain.ErrMalformedAggregation
