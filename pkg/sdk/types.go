package salesgate

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedOutcome is the result of Seed.
type SeedOutcome string

// Seed outcomes.
const (
	Seeded             SeedOutcome = "seeded"
	AlreadyInitialized SeedOutcome = "already_initialized"
)

// Sale is one stored sales record.
type Sale struct {
	Product  string
	Category string
	Amount   decimal.Decimal
	Units    int
	Region   string
	Date     time.Time // calendar date, UTC midnight
}

// Point is one named value of a breakdown, e.g. revenue of a category.
type Point struct {
	Name  string
	Value float64
}

// Stats are the sales statistics. AvgSale is nil for an empty collection.
type Stats struct {
	TotalSales float64
	AvgSale    *float64
	TotalUnits float64
	ByCategory []Point // revenue, descending
	ByRegion   []Point // revenue, descending
}
