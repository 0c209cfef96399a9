package seed

import (
	"time"

	"github.com/shopspring/decimal"

	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
)

// SampleRecords returns the baseline sales records loaded into a fresh collection.
func SampleRecords() []domsales.Record {
	return []domsales.Record{
		record("Laptop Pro", "Electronics", 1200, 5, "North", 15),
		record("Laptop Basic", "Electronics", 800, 10, "South", 16),
		record("Gaming Phone", "Mobile", 900, 8, "East", 17),
		record("Tablet Pro", "Electronics", 600, 12, "West", 18),
		record("Smart Watch", "Wearables", 300, 20, "North", 19),
		record("Wireless Earbuds", "Audio", 150, 30, "South", 20),
		record("Desktop PC", "Electronics", 1500, 3, "West", 21),
		record("Camera DSLR", "Photography", 750, 7, "East", 22),
	}
}

// all samples fall in May 2023
func record(product, category string, amount int64, units int, region string, day int) domsales.Record {
	return domsales.Record{
		Product:  product,
		Category: category,
		Amount:   decimal.NewFromInt(amount),
		Units:    units,
		Region:   region,
		Date:     domsales.NewDate(2023, time.May, day),
	}
}
