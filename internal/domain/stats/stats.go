// Package stats holds the chart-ready shape of the sales statistics.
package stats

// Value is a scalar statistic. A nil Value encodes as JSON null.
type Value struct {
	Value *float64 `json:"value"`
}

// Point is one named bar of a chart series.
type Point struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Series is an ordered list of points.
type Series struct {
	Buckets []Point `json:"buckets"`
}

// Stats is the response of the statistics endpoint.
type Stats struct {
	TotalSales Value  `json:"total_sales"`
	AvgSale    Value  `json:"avg_sale"`
	TotalUnits Value  `json:"total_units"`
	ByCategory Series `json:"by_category"`
	ByRegion   Series `json:"by_region"`
}
