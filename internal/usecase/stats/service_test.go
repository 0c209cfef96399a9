package stats

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/kailas-cloud/salesgate/internal/domain"
	"github.com/kailas-cloud/salesgate/internal/domain/aggregation"
	"github.com/kailas-cloud/salesgate/internal/domain/query"
	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
	"github.com/kailas-cloud/salesgate/internal/usecase/seed"
)

// --- Mocks ---

// memRepo evaluates queries over an in-memory record set.
type memRepo struct {
	records []domsales.Record
	err     error
	lastQ   query.Query
}

func (m *memRepo) List(_ context.Context, q query.Query) ([]domsales.Record, error) {
	m.lastQ = q
	if m.err != nil {
		return nil, m.err
	}
	n := min(q.Size(), len(m.records))
	return m.records[:n], nil
}

func (m *memRepo) Sources(ctx context.Context, q query.Query) ([]domsales.Document, error) {
	recs, err := m.List(ctx, q)
	if err != nil {
		return nil, err
	}
	docs := make([]domsales.Document, len(recs))
	for i, r := range recs {
		docs[i] = domsales.Document{domsales.FieldProduct: r.Product, domsales.FieldRegion: r.Region}
	}
	return docs, nil
}

func (m *memRepo) Aggregate(_ context.Context, q query.Query) (aggregation.Result, error) {
	m.lastQ = q
	if m.err != nil {
		return aggregation.Result{}, m.err
	}
	res := aggregation.NewResult()
	for _, spec := range q.Aggregations() {
		if spec.IsMetric() {
			res.Metrics[spec.Name()] = evalMetric(spec, m.records)
			continue
		}
		res.Groups[spec.Name()] = evalTerms(spec, m.records)
	}
	return res, nil
}

func numeric(r domsales.Record, field string) float64 {
	if field == domsales.FieldUnits {
		return float64(r.Units)
	}
	return r.Amount.InexactFloat64()
}

func keyword(r domsales.Record, field string) string {
	if field == domsales.FieldRegion {
		return r.Region
	}
	return r.Category
}

func evalMetric(spec aggregation.Spec, recs []domsales.Record) aggregation.Metric {
	var sum float64
	for _, r := range recs {
		sum += numeric(r, spec.Field())
	}
	if spec.Kind() == aggregation.KindAvg {
		if len(recs) == 0 {
			return aggregation.Metric{}
		}
		return aggregation.Metric{Value: aggregation.Float64(sum / float64(len(recs)))}
	}
	return aggregation.Metric{Value: aggregation.Float64(sum)}
}

func evalTerms(spec aggregation.Spec, recs []domsales.Record) []aggregation.Bucket {
	groups := make(map[string][]domsales.Record)
	var keys []string
	for _, r := range recs {
		k := keyword(r, spec.Field())
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}

	buckets := make([]aggregation.Bucket, 0, len(keys))
	for _, k := range keys {
		b := aggregation.Bucket{Key: k, DocCount: int64(len(groups[k])), Metrics: map[string]aggregation.Metric{}}
		for _, sub := range spec.Sub() {
			b.Metrics[sub.Name()] = evalMetric(sub, groups[k])
		}
		buckets = append(buckets, b)
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Metrics[spec.OrderBy()].Float() > buckets[j].Metrics[spec.OrderBy()].Float()
	})
	if len(buckets) > spec.Size() {
		buckets = buckets[:spec.Size()]
	}
	return buckets
}

type fixedReadiness bool

func (f fixedReadiness) Ready() bool { return bool(f) }

// --- Tests ---

func TestStats_SeedTotals(t *testing.T) {
	svc := New(&memRepo{records: seed.SampleRecords()}, fixedReadiness(true))

	got, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *got.TotalSales.Value != 6200 {
		t.Errorf("total_sales = %v, want 6200", *got.TotalSales.Value)
	}
	if *got.TotalUnits.Value != 95 {
		t.Errorf("total_units = %v, want 95", *got.TotalUnits.Value)
	}
	if *got.AvgSale.Value != 775 {
		t.Errorf("avg_sale = %v, want 775", *got.AvgSale.Value)
	}

	if p := got.ByCategory.Buckets[0]; p.Name != "Electronics" || p.Value != 4100 {
		t.Errorf("top category = %+v, want Electronics 4100", p)
	}
	if len(got.ByCategory.Buckets) != 5 {
		t.Errorf("categories = %d, want 5", len(got.ByCategory.Buckets))
	}

	wantRegions := []string{"West", "East", "North", "South"}
	for i, p := range got.ByRegion.Buckets {
		if p.Name != wantRegions[i] {
			t.Errorf("region[%d] = %s, want %s", i, p.Name, wantRegions[i])
		}
	}

	var sum float64
	for _, p := range got.ByCategory.Buckets {
		sum += p.Value
	}
	if sum != *got.TotalSales.Value {
		t.Errorf("category revenues sum to %v, want total_sales", sum)
	}
}

func TestStats_EmptyCollection(t *testing.T) {
	svc := New(&memRepo{}, nil)

	got, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got.TotalSales.Value != 0 || got.AvgSale.Value != nil {
		t.Errorf("stats = %+v", got)
	}
	if len(got.ByCategory.Buckets) != 0 || len(got.ByRegion.Buckets) != 0 {
		t.Errorf("expected empty series, got %+v", got)
	}
}

func TestStats_RepoError(t *testing.T) {
	boom := errors.New("search: connection refused")
	svc := New(&memRepo{err: boom}, nil)

	if _, err := svc.Stats(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestSales_ReturnsRecordsInOrder(t *testing.T) {
	repo := &memRepo{records: seed.SampleRecords()}
	svc := New(repo, nil)

	docs, err := svc.Sales(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 8 || docs[0]["product"] != "Laptop Pro" || docs[7]["product"] != "Camera DSLR" {
		t.Errorf("documents = %+v", docs)
	}
	if repo.lastQ.Size() != DefaultListSize || repo.lastQ.HasAggregations() {
		t.Errorf("list query = size %d", repo.lastQ.Size())
	}
}

func TestSales_ListSize(t *testing.T) {
	repo := &memRepo{records: seed.SampleRecords()}
	svc := New(repo, nil).WithListSize(3)

	recs, err := svc.Sales(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 3 {
		t.Errorf("records = %d, want 3", len(recs))
	}
}

func TestRecords_Typed(t *testing.T) {
	repo := &memRepo{records: seed.SampleRecords()}
	svc := New(repo, nil).WithListSize(2)

	recs, err := svc.Records(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 || recs[1].Product != "Laptop Basic" || recs[1].Units != 10 {
		t.Errorf("records = %+v", recs)
	}
}

func TestSales_RepoError(t *testing.T) {
	boom := errors.New("boom")
	svc := New(&memRepo{err: boom}, nil)
	if _, err := svc.Sales(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestNotReady(t *testing.T) {
	repo := &memRepo{records: seed.SampleRecords()}
	svc := New(repo, fixedReadiness(false))

	if _, err := svc.Sales(context.Background()); !errors.Is(err, domain.ErrNotReady) {
		t.Errorf("Sales: expected ErrNotReady, got %v", err)
	}
	if _, err := svc.Records(context.Background()); !errors.Is(err, domain.ErrNotReady) {
		t.Errorf("Records: expected ErrNotReady, got %v", err)
	}
	if _, err := svc.Stats(context.Background()); !errors.Is(err, domain.ErrNotReady) {
		t.Errorf("Stats: expected ErrNotReady, got %v", err)
	}
}
