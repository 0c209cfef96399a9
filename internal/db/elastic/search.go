package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kailas-cloud/salesgate/internal/db"
	"github.com/kailas-cloud/salesgate/internal/domain/aggregation"
)

const typeIndexNotFound = "index_not_found_exception"

// Search runs a match_all query with the requested aggregations in one request.
func (s *Store) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(buildSearchBody(req))
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(req.Collection),
		s.es.Search.WithBody(bytes.NewReader(body)),
		s.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	defer closeBody(res)

	if res.IsError() {
		typ, cause := responseError(res)
		if typ == typeIndexNotFound {
			return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %s", db.ErrIndexNotFound, req.Collection)}
		}
		return nil, &db.Error{Op: db.OpSearch, Err: cause}
	}

	return parseSearchResponse(res.Body, req.Aggregations)
}

// --- Query building ---

func buildSearchBody(req *db.SearchRequest) map[string]any {
	body := map[string]any{
		"size":  req.Size,
		"query": map[string]any{"match_all": map[string]any{}},
	}
	if len(req.Aggregations) > 0 {
		body["aggs"] = buildAggs(req.Aggregations)
	}
	return body
}

func buildAggs(specs []aggregation.Spec) map[string]any {
	out := make(map[string]any, len(specs))
	for _, spec := range specs {
		out[spec.Name()] = buildAgg(spec)
	}
	return out
}

func buildAgg(spec aggregation.Spec) map[string]any {
	switch spec.Kind() {
	case aggregation.KindSum, aggregation.KindAvg:
		return map[string]any{
			string(spec.Kind()): map[string]any{"field": spec.Field()},
		}
	default:
		orderKey := "_count"
		if spec.OrderBy() != "" {
			orderKey = spec.OrderBy()
		}
		terms := map[string]any{
			"field": spec.Field(),
			"size":  spec.Size(),
			"order": map[string]string{orderKey: string(spec.Direction())},
		}
		agg := map[string]any{"terms": terms}
		if sub := spec.Sub(); len(sub) > 0 {
			agg["aggs"] = buildAggs(sub)
		}
		return agg
	}
}

// --- Response parsing ---

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string          `json:"_id"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations"`
}

type metricAgg struct {
	Value *float64 `json:"value"`
}

type termsAgg struct {
	Buckets []map[string]json.RawMessage `json:"buckets"`
}

func parseSearchResponse(r io.Reader, specs []aggregation.Spec) (*db.SearchResult, error) {
	var sr searchResponse
	if err := json.NewDecoder(r).Decode(&sr); err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("decode response: %w", err)}
	}

	result := &db.SearchResult{
		Total:        sr.Hits.Total.Value,
		Hits:         make([]db.Hit, 0, len(sr.Hits.Hits)),
		Aggregations: aggregation.NewResult(),
	}

	for _, h := range sr.Hits.Hits {
		src, err := decodeSource(h.Source)
		if err != nil {
			return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("decode hit %s: %w", h.ID, err)}
		}
		result.Hits = append(result.Hits, db.Hit{ID: h.ID, Source: src})
	}

	if err := parseAggs(sr.Aggregations, specs, result.Aggregations); err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}
	return result, nil
}

// decodeSource keeps numbers as json.Number so decimal amounts survive untouched.
func decodeSource(raw json.RawMessage) (db.Document, error) {
	doc := make(db.Document)
	if len(raw) == 0 {
		return doc, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseAggs reads the aggregations named by specs. Aggregations absent from the
// response are left out of out.
func parseAggs(raw map[string]json.RawMessage, specs []aggregation.Spec, out aggregation.Result) error {
	for _, spec := range specs {
		msg, ok := raw[spec.Name()]
		if !ok {
			continue
		}
		if spec.IsMetric() {
			var m metricAgg
			if err := json.Unmarshal(msg, &m); err != nil {
				return fmt.Errorf("aggregation %s: %w", spec.Name(), err)
			}
			out.Metrics[spec.Name()] = aggregation.Metric{Value: m.Value}
			continue
		}

		buckets, err := parseBuckets(msg, spec.Sub())
		if err != nil {
			return fmt.Errorf("aggregation %s: %w", spec.Name(), err)
		}
		out.Groups[spec.Name()] = buckets
	}
	return nil
}

func parseBuckets(msg json.RawMessage, sub []aggregation.Spec) ([]aggregation.Bucket, error) {
	var t termsAgg
	if err := json.Unmarshal(msg, &t); err != nil {
		return nil, err
	}

	buckets := make([]aggregation.Bucket, 0, len(t.Buckets))
	for _, rb := range t.Buckets {
		key, err := bucketKey(rb["key"])
		if err != nil {
			return nil, err
		}
		var count int64
		if dc, ok := rb["doc_count"]; ok {
			if err := json.Unmarshal(dc, &count); err != nil {
				return nil, fmt.Errorf("bucket %s doc_count: %w", key, err)
			}
		}

		b := aggregation.Bucket{Key: key, DocCount: count, Metrics: make(map[string]aggregation.Metric, len(sub))}
		for _, s := range sub {
			raw, ok := rb[s.Name()]
			if !ok {
				continue
			}
			var m metricAgg
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, fmt.Errorf("bucket %s metric %s: %w", key, s.Name(), err)
			}
			b.Metrics[s.Name()] = aggregation.Metric{Value: m.Value}
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}

// bucketKey renders a terms bucket key; keyword keys are strings, numeric keys are numbers.
func bucketKey(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("bucket without key")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("bucket key: %w", err)
	}
	return n.String(), nil
}
