// Package query describes store-independent requests against a document collection.
package query

import (
	"fmt"

	"github.com/kailas-cloud/salesgate/internal/domain/aggregation"
)

// MaxSize is the upper bound for the number of documents a single query may return.
const MaxSize = 10000

// Query is an unconditional match over a collection that returns up to Size documents
// and evaluates a set of named aggregations.
type Query struct {
	size         int
	aggregations []aggregation.Spec
}

// New validates and creates a Query. size=0 returns aggregations only.
func New(size int, aggs ...aggregation.Spec) (Query, error) {
	if size < 0 || size > MaxSize {
		return Query{}, fmt.Errorf("size must be between 0 and %d, got %d", MaxSize, size)
	}
	seen := make(map[string]bool, len(aggs))
	for _, a := range aggs {
		if seen[a.Name()] {
			return Query{}, fmt.Errorf("duplicate aggregation name %q", a.Name())
		}
		seen[a.Name()] = true
	}
	specs := make([]aggregation.Spec, len(aggs))
	copy(specs, aggs)
	return Query{size: size, aggregations: specs}, nil
}

// MatchAll creates a document listing without aggregations.
func MatchAll(size int) (Query, error) {
	return New(size)
}

// Size returns the maximum number of documents to return.
func (q Query) Size() int { return q.size }

// Aggregations returns a copy of the aggregation specs.
func (q Query) Aggregations() []aggregation.Spec {
	out := make([]aggregation.Spec, len(q.aggregations))
	copy(out, q.aggregations)
	return out
}

// HasAggregations reports whether the query carries any aggregation.
func (q Query) HasAggregations() bool { return len(q.aggregations) > 0 }
