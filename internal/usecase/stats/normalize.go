package stats

import (
	"fmt"

	"github.com/kailas-cloud/salesgate/internal/domain"
	"github.com/kailas-cloud/salesgate/internal/domain/aggregation"
	domstats "github.com/kailas-cloud/salesgate/internal/domain/stats"
)

// Normalize projects the raw stats aggregations onto the chart-ready shape.
// Scalars pass through (a null average stays null); each group bucket becomes
// {name: key, value: revenue} in the order the store returned it. A bucket
// without a revenue value reads as 0. res is not modified.
func Normalize(res aggregation.Result) (domstats.Stats, error) {
	totalSales, err := scalar(res, AggTotalSales)
	if err != nil {
		return domstats.Stats{}, err
	}
	avgSale, err := scalar(res, AggAvgSale)
	if err != nil {
		return domstats.Stats{}, err
	}
	totalUnits, err := scalar(res, AggTotalUnits)
	if err != nil {
		return domstats.Stats{}, err
	}
	byCategory, err := series(res, AggByCategory)
	if err != nil {
		return domstats.Stats{}, err
	}
	byRegion, err := series(res, AggByRegion)
	if err != nil {
		return domstats.Stats{}, err
	}

	return domstats.Stats{
		TotalSales: totalSales,
		AvgSale:    avgSale,
		TotalUnits: totalUnits,
		ByCategory: byCategory,
		ByRegion:   byRegion,
	}, nil
}

func scalar(res aggregation.Result, name string) (domstats.Value, error) {
	m, ok := res.Metric(name)
	if !ok {
		return domstats.Value{}, fmt.Errorf("%s: %w", name, domain.ErrMalformedAggregation)
	}
	if m.Value == nil {
		return domstats.Value{}, nil
	}
	v := *m.Value
	return domstats.Value{Value: &v}, nil
}

func series(res aggregation.Result, name string) (domstats.Series, error) {
	buckets, ok := res.Group(name)
	if !ok {
		return domstats.Series{}, fmt.Errorf("%s: %w", name, domain.ErrMalformedAggregation)
	}
	points := make([]domstats.Point, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, domstats.Point{Name: b.Key, Value: b.Metrics[AggRevenue].Float()})
	}
	return domstats.Series{Buckets: points}, nil
}
