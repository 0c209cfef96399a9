package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/salesgate/internal/db"
	"github.com/kailas-cloud/salesgate/internal/domain"
	"github.com/kailas-cloud/salesgate/internal/domain/aggregation"
	"github.com/kailas-cloud/salesgate/internal/domain/query"
	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
)

// store is the consumer interface for sales records (ISP).
type store interface {
	CreateCollection(ctx context.Context, name string, schema *db.Schema) error
	CollectionExists(ctx context.Context, name string) (bool, error)
	IndexDocument(ctx context.Context, collection string, doc db.Document) error
	Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error)
}

// Repo implements the seed and stats repositories on top of a document store.
type Repo struct {
	store      store
	collection string
}

// New creates a sales repository bound to one collection.
func New(s store, collection string) *Repo {
	return &Repo{store: s, collection: collection}
}

// Schema is the collection layout for sales records: text fields are exact-match
// keywords so they can be grouped on.
func Schema() *db.Schema {
	return db.NewSchema().
		Keyword(domsales.FieldProduct).
		Keyword(domsales.FieldCategory).
		Float(domsales.FieldAmount).
		Integer(domsales.FieldUnits).
		Keyword(domsales.FieldRegion).
		Date(domsales.FieldDate).
		MustBuild()
}

// CreateCollection creates the collection. Returns domain.ErrAlreadyExists if it is already there.
func (r *Repo) CreateCollection(ctx context.Context) error {
	if err := r.store.CreateCollection(ctx, r.collection, Schema()); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return fmt.Errorf("collection %s: %w", r.collection, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("create collection %s: %w", r.collection, err)
	}
	return nil
}

// Exists reports whether the collection is present.
func (r *Repo) Exists(ctx context.Context) (bool, error) {
	return r.store.CollectionExists(ctx, r.collection)
}

// Insert stores one record.
func (r *Repo) Insert(ctx context.Context, rec domsales.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidRecord, err)
	}
	if err := r.store.IndexDocument(ctx, r.collection, recordToDocument(rec)); err != nil {
		return fmt.Errorf("insert %s: %w", rec.Product, err)
	}
	return nil
}

// List returns up to q.Size() records in store order.
func (r *Repo) List(ctx context.Context, q query.Query) ([]domsales.Record, error) {
	res, err := r.search(ctx, q)
	if err != nil {
		return nil, err
	}

	out := make([]domsales.Record, 0, len(res.Hits))
	for _, h := range res.Hits {
		rec, err := documentToRecord(h.Source)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", h.ID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Sources returns up to q.Size() stored documents field for field, in store order.
func (r *Repo) Sources(ctx context.Context, q query.Query) ([]domsales.Document, error) {
	res, err := r.search(ctx, q)
	if err != nil {
		return nil, err
	}

	out := make([]domsales.Document, 0, len(res.Hits))
	for _, h := range res.Hits {
		out = append(out, sourceDocument(h.Source))
	}
	return out, nil
}

// Aggregate evaluates the aggregations of q and returns them unprocessed.
func (r *Repo) Aggregate(ctx context.Context, q query.Query) (aggregation.Result, error) {
	res, err := r.search(ctx, q)
	if err != nil {
		return aggregation.Result{}, err
	}
	return res.Aggregations, nil
}

func (r *Repo) search(ctx context.Context, q query.Query) (*db.SearchResult, error) {
	res, err := r.store.Search(ctx, &db.SearchRequest{
		Collection:   r.collection,
		Size:         q.Size(),
		Aggregations: q.Aggregations(),
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.collection, err)
	}
	return res, nil
}
