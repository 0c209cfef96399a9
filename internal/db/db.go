package db

import (
	"context"
	"time"
)

// Store is the document store facade combining all sub-interfaces.
type Store interface {
	Pinger
	CollectionManager
	DocumentWriter
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CollectionManager provides collection (index) lifecycle operations.
type CollectionManager interface {
	// CreateCollection creates a collection with the given schema.
	// Returns ErrIndexExists if it is already there.
	CreateCollection(ctx context.Context, name string, schema *Schema) error
	CollectionExists(ctx context.Context, name string) (bool, error)
}

// DocumentWriter stores documents under store-assigned ids.
type DocumentWriter interface {
	IndexDocument(ctx context.Context, collection string, doc Document) error
}

// Searcher runs a match-all query with aggregations in a single round trip.
type Searcher interface {
	Search(ctx context.Context, req *SearchRequest) (*SearchResult, error)
}
