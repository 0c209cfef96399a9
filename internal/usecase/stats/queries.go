package stats

import (
	"github.com/kailas-cloud/salesgate/internal/domain/aggregation"
	"github.com/kailas-cloud/salesgate/internal/domain/query"
	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
)

// Aggregation names of the stats query. They are also the keys of the response.
const (
	AggTotalSales = "total_sales"
	AggAvgSale    = "avg_sale"
	AggTotalUnits = "total_units"
	AggByCategory = "by_category"
	AggByRegion   = "by_region"
	AggRevenue    = "revenue"
)

// TopN is the number of groups returned per breakdown.
const TopN = 10

// DefaultListSize is the number of records the list query returns when unconfigured.
const DefaultListSize = 1000

// ListQuery returns every record, up to size, without aggregations.
func ListQuery(size int) (query.Query, error) {
	return query.MatchAll(size)
}

// StatsQuery returns no documents and five aggregations: revenue and unit
// totals, the average sale, and the top categories and regions by revenue.
func StatsQuery() (query.Query, error) {
	totalSales, err := aggregation.NewSum(AggTotalSales, domsales.FieldAmount)
	if err != nil {
		return query.Query{}, err
	}
	avgSale, err := aggregation.NewAvg(AggAvgSale, domsales.FieldAmount)
	if err != nil {
		return query.Query{}, err
	}
	totalUnits, err := aggregation.NewSum(AggTotalUnits, domsales.FieldUnits)
	if err != nil {
		return query.Query{}, err
	}
	byCategory, err := revenueBreakdown(AggByCategory, domsales.FieldCategory)
	if err != nil {
		return query.Query{}, err
	}
	byRegion, err := revenueBreakdown(AggByRegion, domsales.FieldRegion)
	if err != nil {
		return query.Query{}, err
	}
	return query.New(0, totalSales, avgSale, totalUnits, byCategory, byRegion)
}

func revenueBreakdown(name, field string) (aggregation.Spec, error) {
	revenue, err := aggregation.NewSum(AggRevenue, domsales.FieldAmount)
	if err != nil {
		return aggregation.Spec{}, err
	}
	return aggregation.NewTerms(name, field, TopN, AggRevenue, aggregation.Desc, revenue)
}
