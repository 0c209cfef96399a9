package redis

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/salesgate/internal/db"
	"github.com/kailas-cloud/salesgate/internal/domain/aggregation"
)

const docCountAlias = "doc_count"

// Search pipelines one FT.SEARCH for hits, one FT.AGGREGATE for all scalar
// metrics and one FT.AGGREGATE per terms grouping into a single DoMulti.
func (s *Store) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	idx := indexName(req.Collection)
	metrics, groups := splitSpecs(req.Aggregations)

	cmds := make([]rueidis.Completed, 0, 2+len(groups))
	cmds = append(cmds, s.b().Arbitrary("FT.SEARCH").
		Args(idx, "*", "LIMIT", "0", strconv.Itoa(req.Size)).Build())
	if len(metrics) > 0 {
		cmds = append(cmds, s.b().Arbitrary("FT.AGGREGATE").Args(buildMetricArgs(idx, metrics)...).Build())
	}
	for _, g := range groups {
		cmds = append(cmds, s.b().Arbitrary("FT.AGGREGATE").Args(buildTermsArgs(idx, g)...).Build())
	}

	results := s.client.DoMulti(ctx, cmds...)
	for _, res := range results {
		if err := res.Error(); err != nil {
			if isRedisErr(err, "unknown index name", "no such index") {
				return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %s", db.ErrIndexNotFound, req.Collection)}
			}
			return nil, &db.Error{Op: db.OpSearch, Err: err}
		}
	}

	raw, err := results[0].ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	out, err := parseListResult(raw, keyPrefix(req.Collection))
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	out.Aggregations = aggregation.NewResult()

	next := 1
	if len(metrics) > 0 {
		rows, err := aggregateRows(results[next])
		if err != nil {
			return nil, &db.Error{Op: db.OpAggregate, Err: err}
		}
		parseMetricRow(rows, metrics, out.Aggregations)
		next++
	}
	for _, g := range groups {
		rows, err := aggregateRows(results[next])
		if err != nil {
			return nil, &db.Error{Op: db.OpAggregate, Err: fmt.Errorf("%s: %w", g.Name(), err)}
		}
		buckets, err := parseBucketRows(rows, g)
		if err != nil {
			return nil, &db.Error{Op: db.OpAggregate, Err: fmt.Errorf("%s: %w", g.Name(), err)}
		}
		out.Aggregations.Groups[g.Name()] = buckets
		next++
	}

	return out, nil
}

func splitSpecs(specs []aggregation.Spec) (metrics, groups []aggregation.Spec) {
	for _, s := range specs {
		if s.IsMetric() {
			metrics = append(metrics, s)
		} else {
			groups = append(groups, s)
		}
	}
	return metrics, groups
}

// --- Command building ---

func reducer(k aggregation.Kind) string {
	if k == aggregation.KindAvg {
		return "AVG"
	}
	return "SUM"
}

// buildMetricArgs collapses all scalar metrics into one GROUPBY 0 pass.
func buildMetricArgs(idx string, metrics []aggregation.Spec) []string {
	args := []string{idx, "*", "GROUPBY", "0"}
	for _, m := range metrics {
		args = append(args, "REDUCE", reducer(m.Kind()), "1", "@"+m.Field(), "AS", m.Name())
	}
	return args
}

func buildTermsArgs(idx string, g aggregation.Spec) []string {
	args := []string{
		idx, "*",
		"GROUPBY", "1", "@" + g.Field(),
		"REDUCE", "COUNT", "0", "AS", docCountAlias,
	}
	for _, m := range g.Sub() {
		args = append(args, "REDUCE", reducer(m.Kind()), "1", "@"+m.Field(), "AS", m.Name())
	}

	sortKey := docCountAlias
	if g.OrderBy() != "" {
		sortKey = g.OrderBy()
	}
	args = append(args,
		"SORTBY", "2", "@"+sortKey, strings.ToUpper(string(g.Direction())),
		"MAX", strconv.Itoa(g.Size()),
	)
	return args
}

// --- Result parsing ---

func parseListResult(raw []rueidis.RedisMessage, prefix string) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	hits := make([]db.Hit, 0, (len(raw)-1)/2)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		src := make(db.Document, len(fields)/2)
		for k, v := range parseFieldPairs(fields) {
			src[k] = v
		}
		hits = append(hits, db.Hit{ID: strings.TrimPrefix(key, prefix), Source: src})
	}

	return &db.SearchResult{Total: int(total), Hits: hits}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// aggregateRows reads an FT.AGGREGATE reply: [count, row1, row2, ...].
func aggregateRows(res rueidis.RedisResult) ([]map[string]string, error) {
	raw, err := res.ToArray()
	if err != nil {
		return nil, err
	}
	if len(raw) <= 1 {
		return nil, nil
	}

	rows := make([]map[string]string, 0, len(raw)-1)
	for _, r := range raw[1:] {
		fields, err := r.ToArray()
		if err != nil {
			return nil, fmt.Errorf("parse row: %w", err)
		}
		rows = append(rows, parseFieldPairs(fields))
	}
	return rows, nil
}

// parseMetricRow fills scalar metrics from a GROUPBY 0 reply. An empty
// collection yields no row: sums read as 0 and averages as null.
func parseMetricRow(rows []map[string]string, metrics []aggregation.Spec, out aggregation.Result) {
	var row map[string]string
	if len(rows) > 0 {
		row = rows[0]
	}
	for _, m := range metrics {
		out.Metrics[m.Name()] = metricValue(row, m)
	}
}

func parseBucketRows(rows []map[string]string, g aggregation.Spec) ([]aggregation.Bucket, error) {
	buckets := make([]aggregation.Bucket, 0, len(rows))
	for _, row := range rows {
		key, ok := row[g.Field()]
		if !ok {
			return nil, fmt.Errorf("row without group key %q", g.Field())
		}

		var count int64
		if v, ok := row[docCountAlias]; ok {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bucket %s doc_count: %w", key, err)
			}
			count = n
		}

		sub := g.Sub()
		b := aggregation.Bucket{Key: key, DocCount: count, Metrics: make(map[string]aggregation.Metric, len(sub))}
		for _, m := range sub {
			b.Metrics[m.Name()] = metricValue(row, m)
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}

func metricValue(row map[string]string, m aggregation.Spec) aggregation.Metric {
	v, ok := row[m.Name()]
	if !ok || v == "" {
		if m.Kind() == aggregation.KindSum {
			return aggregation.Metric{Value: aggregation.Float64(0)}
		}
		return aggregation.Metric{}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return aggregation.Metric{}
	}
	return aggregation.Metric{Value: aggregation.Float64(f)}
}
