package query

import (
	"testing"

	"github.com/kailas-cloud/salesgate/internal/domain/aggregation"
)

func TestNew_Valid(t *testing.T) {
	sum, err := aggregation.NewSum("total", "amount")
	if err != nil {
		t.Fatalf("NewSum: %v", err)
	}
	q, err := New(0, sum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Size() != 0 {
		t.Errorf("size = %d, want 0", q.Size())
	}
	if !q.HasAggregations() || len(q.Aggregations()) != 1 {
		t.Errorf("unexpected aggregations: %+v", q.Aggregations())
	}
}

func TestNew_InvalidSize(t *testing.T) {
	for _, size := range []int{-1, MaxSize + 1} {
		if _, err := New(size); err == nil {
			t.Errorf("size %d: expected error", size)
		}
	}
}

func TestNew_DuplicateNames(t *testing.T) {
	a, _ := aggregation.NewSum("total", "amount")
	b, _ := aggregation.NewAvg("total", "amount")
	if _, err := New(0, a, b); err == nil {
		t.Fatal("expected error for duplicate aggregation names")
	}
}

func TestMatchAll(t *testing.T) {
	q, err := MatchAll(100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Size() != 100 || q.HasAggregations() {
		t.Errorf("unexpected query: %+v", q)
	}
}
