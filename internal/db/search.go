package db

import (
	"errors"

	"github.com/kailas-cloud/salesgate/internal/domain/aggregation"
)

// Document is a flat field map. Values are strings, json.Number, float64 or int
// depending on the driver; repositories normalize them.
type Document map[string]any

// SearchRequest is a match-all query over a collection. Size bounds the number of
// returned hits (0 = aggregations only).
type SearchRequest struct {
	Collection   string
	Size         int
	Aggregations []aggregation.Spec
}

// Validate checks that the request is well-formed.
func (r *SearchRequest) Validate() error {
	if r.Collection == "" {
		return errors.New("collection is required")
	}
	if r.Size < 0 {
		return errors.New("size must not be negative")
	}
	if r.Size == 0 && len(r.Aggregations) == 0 {
		return errors.New("request asks for neither hits nor aggregations")
	}
	return nil
}

// SearchResult is the output of a search: hits in store order plus aggregations.
type SearchResult struct {
	Total        int
	Hits         []Hit
	Aggregations aggregation.Result
}

// Hit is a single stored document.
type Hit struct {
	ID     string
	Source Document
}
