package redis

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/salesgate/internal/db"
	"github.com/kailas-cloud/salesgate/internal/domain/aggregation"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

// --- index.go tests ---

func salesSchema() *db.Schema {
	return db.NewSchema().
		Keyword("product").
		Keyword("category").
		Float("amount").
		Integer("units").
		Keyword("region").
		Date("date").
		MustBuild()
}

func TestCreateCollection_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	var got []string
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			got = cmd
			return cmd[0] == "FT.CREATE"
		})).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.CreateCollection(context.Background(), "sales", salesSchema()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined := strings.Join(got, " ")
	for _, want := range []string{
		"FT.CREATE sales:idx ON HASH PREFIX 1 sales: SCHEMA",
		"category TAG CASESENSITIVE SORTABLE",
		"amount NUMERIC SORTABLE",
		"units NUMERIC SORTABLE",
		"date TAG",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("command %q missing %q", joined, want)
		}
	}
}

func TestCreateCollection_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE"
		})).
		Return(mock.Result(mock.RedisError("Index already exists")))

	s := NewStoreForTest(c)
	err := s.CreateCollection(context.Background(), "sales", salesSchema())
	if !errors.Is(err, db.ErrIndexExists) {
		t.Errorf("expected ErrIndexExists, got %v", err)
	}
}

func TestCreateCollection_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	err := s.CreateCollection(context.Background(), "sales", salesSchema())
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestBuildCreateArgs_Validation(t *testing.T) {
	if _, err := buildCreateArgs("", salesSchema()); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := buildCreateArgs("sales", nil); err == nil {
		t.Error("expected error for nil schema")
	}
	bad := &db.Schema{Fields: []db.SchemaField{{Name: "x", Type: "geo"}}}
	if _, err := buildCreateArgs("sales", bad); err == nil {
		t.Error("expected error for unknown field type")
	}
}

func TestCollectionExists_True(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "sales:idx")).
		Return(mock.Result(mock.RedisArray(mock.RedisString("index_name"), mock.RedisString("sales:idx"))))

	s := NewStoreForTest(c)
	ok, err := s.CollectionExists(context.Background(), "sales")
	if err != nil || !ok {
		t.Fatalf("exists = %v, err = %v", ok, err)
	}
}

func TestCollectionExists_False(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "sales:idx")).
		Return(mock.Result(mock.RedisError("Unknown index name")))

	s := NewStoreForTest(c)
	ok, err := s.CollectionExists(context.Background(), "sales")
	if err != nil || ok {
		t.Fatalf("exists = %v, err = %v", ok, err)
	}
}

// --- hash.go tests ---

func TestIndexDocument_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	var got []string
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			got = cmd
			return cmd[0] == "HSET"
		})).
		Return(mock.Result(mock.RedisInt64(3)))

	s := NewStoreForTest(c)
	doc := db.Document{"product": "Laptop Pro", "amount": json.Number("1200.50"), "units": 5}
	if err := s.IndexDocument(context.Background(), "sales", doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(got[1], "sales:") || len(got[1]) != len("sales:")+36 {
		t.Errorf("key = %q, want sales:<uuid>", got[1])
	}
	// fields are written in name order
	want := []string{"amount", "1200.50", "product", "Laptop Pro", "units", "5"}
	if !slices.Equal(got[2:], want) {
		t.Errorf("fields = %v, want %v", got[2:], want)
	}
}

func TestIndexDocument_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	err := s.IndexDocument(context.Background(), "sales", db.Document{"product": "x"})
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
}

func TestIndexDocument_Validation(t *testing.T) {
	s := NewStoreForTest(mock.NewClient(gomock.NewController(t)))
	if err := s.IndexDocument(context.Background(), "sales", db.Document{}); err == nil {
		t.Error("expected error for empty document")
	}
	if err := s.IndexDocument(context.Background(), "sales", db.Document{"x": []int{1}}); err == nil {
		t.Error("expected error for unsupported value")
	}
}

// --- search.go tests ---

func statsSpecs(t *testing.T) []aggregation.Spec {
	t.Helper()
	must := func(s aggregation.Spec, err error) aggregation.Spec {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
	total := must(aggregation.NewSum("total_sales", "amount"))
	avg := must(aggregation.NewAvg("avg_sale", "amount"))
	revenue := must(aggregation.NewSum("revenue", "amount"))
	byCat := must(aggregation.NewTerms("by_category", "category", 10, "revenue", aggregation.Desc, revenue))
	return []aggregation.Spec{total, avg, byCat}
}

func row(kv ...string) rueidis.RedisMessage {
	msgs := make([]rueidis.RedisMessage, len(kv))
	for i, s := range kv {
		msgs[i] = mock.RedisString(s)
	}
	return mock.RedisArray(msgs...)
}

func TestSearch_SingleRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	var sent [][]string
	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmds ...rueidis.Completed) []rueidis.RedisResult {
			for _, cmd := range cmds {
				sent = append(sent, cmd.Commands())
			}
			return []rueidis.RedisResult{
				mock.Result(mock.RedisArray(
					mock.RedisInt64(2),
					mock.RedisString("sales:a"),
					row("product", "Laptop Pro", "amount", "1200"),
					mock.RedisString("sales:b"),
					row("product", "Smart Watch", "amount", "300"),
				)),
				mock.Result(mock.RedisArray(
					mock.RedisInt64(1),
					row("total_sales", "1500", "avg_sale", "750"),
				)),
				mock.Result(mock.RedisArray(
					mock.RedisInt64(2),
					row("category", "Electronics", "doc_count", "1", "revenue", "1200"),
					row("category", "Wearables", "doc_count", "1", "revenue", "300"),
				)),
			}
		})

	s := NewStoreForTest(c)
	res, err := s.Search(context.Background(), &db.SearchRequest{
		Collection:   "sales",
		Size:         100,
		Aggregations: statsSpecs(t),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sent) != 3 {
		t.Fatalf("expected 3 pipelined commands, got %d", len(sent))
	}
	if got := strings.Join(sent[0], " "); got != "FT.SEARCH sales:idx * LIMIT 0 100" {
		t.Errorf("search cmd = %q", got)
	}
	if got := strings.Join(sent[1], " "); got != "FT.AGGREGATE sales:idx * GROUPBY 0 "+
		"REDUCE SUM 1 @amount AS total_sales REDUCE AVG 1 @amount AS avg_sale" {
		t.Errorf("metric cmd = %q", got)
	}
	if got := strings.Join(sent[2], " "); got != "FT.AGGREGATE sales:idx * GROUPBY 1 @category "+
		"REDUCE COUNT 0 AS doc_count REDUCE SUM 1 @amount AS revenue SORTBY 2 @revenue DESC MAX 10" {
		t.Errorf("terms cmd = %q", got)
	}

	if res.Total != 2 || len(res.Hits) != 2 {
		t.Fatalf("total = %d, hits = %d", res.Total, len(res.Hits))
	}
	if res.Hits[0].ID != "a" || res.Hits[0].Source["product"] != "Laptop Pro" {
		t.Errorf("hit[0] = %+v", res.Hits[0])
	}
	if m, _ := res.Aggregations.Metric("total_sales"); m.Float() != 1500 {
		t.Errorf("total_sales = %+v", m)
	}
	if m, _ := res.Aggregations.Metric("avg_sale"); m.Float() != 750 {
		t.Errorf("avg_sale = %+v", m)
	}
	buckets, ok := res.Aggregations.Group("by_category")
	if !ok || len(buckets) != 2 {
		t.Fatalf("by_category = %+v", buckets)
	}
	if buckets[0].Key != "Electronics" || buckets[0].Metrics["revenue"].Float() != 1200 || buckets[0].DocCount != 1 {
		t.Errorf("bucket[0] = %+v", buckets[0])
	}
}

func TestSearch_EmptyCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisArray(mock.RedisInt64(0))),
			mock.Result(mock.RedisArray(mock.RedisInt64(0))),
			mock.Result(mock.RedisArray(mock.RedisInt64(0))),
		})

	s := NewStoreForTest(c)
	res, err := s.Search(context.Background(), &db.SearchRequest{Collection: "sales", Aggregations: statsSpecs(t)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m, ok := res.Aggregations.Metric("total_sales"); !ok || m.Value == nil || *m.Value != 0 {
		t.Errorf("total_sales = %+v, want 0", m)
	}
	if m, ok := res.Aggregations.Metric("avg_sale"); !ok || m.Value != nil {
		t.Errorf("avg_sale = %+v, want null", m)
	}
	if b, ok := res.Aggregations.Group("by_category"); !ok || len(b) != 0 {
		t.Errorf("by_category = %+v, want empty", b)
	}
}

func TestSearch_UnknownIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisError("sales:idx: no such index")),
		})

	s := NewStoreForTest(c)
	_, err := s.Search(context.Background(), &db.SearchRequest{Collection: "sales", Size: 10})
	if !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestSearch_TransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisArray(mock.RedisInt64(0))),
			mock.ErrorResult(context.DeadlineExceeded),
		})

	s := NewStoreForTest(c)
	sum, _ := aggregation.NewSum("total_sales", "amount")
	_, err := s.Search(context.Background(), &db.SearchRequest{
		Collection:   "sales",
		Aggregations: []aggregation.Spec{sum},
	})
	if !isDBError(err) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected wrapped db.Error, got %v", err)
	}
}

func TestSearch_Validation(t *testing.T) {
	s := NewStoreForTest(mock.NewClient(gomock.NewController(t)))
	if _, err := s.Search(context.Background(), &db.SearchRequest{Collection: "sales"}); err == nil {
		t.Error("expected error for empty request")
	}
}

func TestBuildTermsArgs_DefaultsToCountOrder(t *testing.T) {
	g, err := aggregation.NewTerms("by_region", "region", 5, "", aggregation.Asc)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Join(buildTermsArgs("sales:idx", g), " ")
	want := "sales:idx * GROUPBY 1 @region REDUCE COUNT 0 AS doc_count SORTBY 2 @doc_count ASC MAX 5"
	if got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestMetricValue(t *testing.T) {
	sum, _ := aggregation.NewSum("s", "amount")
	avg, _ := aggregation.NewAvg("a", "amount")

	if m := metricValue(map[string]string{"a": "nan"}, avg); m.Value != nil {
		t.Errorf("nan avg = %v, want nil", *m.Value)
	}
	if m := metricValue(nil, sum); m.Value == nil || *m.Value != 0 {
		t.Errorf("missing sum = %+v, want 0", m)
	}
	if m := metricValue(map[string]string{"s": "12.5"}, sum); m.Float() != 12.5 {
		t.Errorf("sum = %+v, want 12.5", m)
	}
}

func TestParseBucketRows_MissingKey(t *testing.T) {
	g, _ := aggregation.NewTerms("by_region", "region", 5, "", aggregation.Desc)
	if _, err := parseBucketRows([]map[string]string{{"doc_count": "1"}}, g); err == nil {
		t.Error("expected error for row without group key")
	}
}

func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}
