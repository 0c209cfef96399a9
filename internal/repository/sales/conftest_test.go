package sales

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/salesgate/internal/db"
	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	createFn func(ctx context.Context, name string, schema *db.Schema) error
	existsFn func(ctx context.Context, name string) (bool, error)
	indexFn  func(ctx context.Context, collection string, doc db.Document) error
	searchFn func(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error)
}

func (m *mockStore) CreateCollection(ctx context.Context, name string, schema *db.Schema) error {
	if m.createFn != nil {
		return m.createFn(ctx, name, schema)
	}
	return nil
}

func (m *mockStore) CollectionExists(ctx context.Context, name string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) IndexDocument(ctx context.Context, collection string, doc db.Document) error {
	if m.indexFn != nil {
		return m.indexFn(ctx, collection, doc)
	}
	return nil
}

func (m *mockStore) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "sales"), ms
}

func testRecord(t *testing.T) domsales.Record {
	t.Helper()
	return domsales.Record{
		Product:  "Laptop Pro",
		Category: "Electronics",
		Amount:   decimal.RequireFromString("1200.50"),
		Units:    5,
		Region:   "North",
		Date:     domsales.NewDate(2023, 5, 15),
	}
}
