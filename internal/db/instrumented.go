package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/salesgate/internal/metrics"
)

// InstrumentedStore decorates a Store with per-operation Prometheus metrics.
type InstrumentedStore struct {
	Store
	driver string
}

// Instrument wraps s so that every store call is counted and timed under driver.
func Instrument(s Store, driver string) *InstrumentedStore {
	return &InstrumentedStore{Store: s, driver: driver}
}

// Ping checks connectivity.
func (s *InstrumentedStore) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.Store.Ping(ctx)
	metrics.ObserveStore(s.driver, OpPing, start, err)
	return err
}

// CreateCollection creates a collection.
func (s *InstrumentedStore) CreateCollection(ctx context.Context, name string, schema *Schema) error {
	start := time.Now()
	err := s.Store.CreateCollection(ctx, name, schema)
	metrics.ObserveStore(s.driver, OpCreateIndex, start, err)
	return err
}

// CollectionExists reports whether the collection exists.
func (s *InstrumentedStore) CollectionExists(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	ok, err := s.Store.CollectionExists(ctx, name)
	metrics.ObserveStore(s.driver, OpIndexExists, start, err)
	return ok, err
}

// IndexDocument stores one document.
func (s *InstrumentedStore) IndexDocument(ctx context.Context, collection string, doc Document) error {
	start := time.Now()
	err := s.Store.IndexDocument(ctx, collection, doc)
	metrics.ObserveStore(s.driver, OpIndex, start, err)
	return err
}

// Search runs a query.
func (s *InstrumentedStore) Search(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	start := time.Now()
	res, err := s.Store.Search(ctx, req)
	metrics.ObserveStore(s.driver, OpSearch, start, err)
	return res, err
}
