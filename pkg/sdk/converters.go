package salesgate

import (
	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
	domstats "github.com/kailas-cloud/salesgate/internal/domain/stats"
)

func saleFromDomain(r domsales.Record) Sale {
	return Sale{
		Product:  r.Product,
		Category: r.Category,
		Amount:   r.Amount,
		Units:    r.Units,
		Region:   r.Region,
		Date:     r.Date.Time(),
	}
}

func salesFromDomain(recs []domsales.Record) []Sale {
	out := make([]Sale, len(recs))
	for i, r := range recs {
		out[i] = saleFromDomain(r)
	}
	return out
}

func statsFromDomain(s domstats.Stats) Stats {
	return Stats{
		TotalSales: valueOrZero(s.TotalSales),
		AvgSale:    s.AvgSale.Value,
		TotalUnits: valueOrZero(s.TotalUnits),
		ByCategory: pointsFromDomain(s.ByCategory),
		ByRegion:   pointsFromDomain(s.ByRegion),
	}
}

func valueOrZero(v domstats.Value) float64 {
	if v.Value == nil {
		return 0
	}
	return *v.Value
}

func pointsFromDomain(s domstats.Series) []Point {
	out := make([]Point, len(s.Buckets))
	for i, b := range s.Buckets {
		out[i] = Point{Name: b.Name, Value: b.Value}
	}
	return out
}
