package sales

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field names of a sales record, shared by the wire format and the collection schema.
const (
	FieldProduct  = "product"
	FieldCategory = "category"
	FieldAmount   = "amount"
	FieldUnits    = "units"
	FieldRegion   = "region"
	FieldDate     = "date"
)

// DateLayout is the calendar date format used on the wire and in the store.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day.
type Date struct {
	t time.Time
}

// NewDate creates a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD date. A trailing time component (as returned by some
// stores for date fields) is ignored.
func ParseDate(s string) (Date, error) {
	if len(s) > len(DateLayout) && (s[len(DateLayout)] == 'T' || s[len(DateLayout)] == ' ') {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.t.Format(DateLayout) }

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// MarshalJSON encodes the date as "YYYY-MM-DD". A zero date encodes as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string. null leaves the date zero.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Record is a single sale. Records are immutable once stored.
type Record struct {
	Product  string
	Category string
	Amount   decimal.Decimal
	Units    int
	Region   string
	Date     Date
}

// Validate checks that the record can be stored.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Product) == "" {
		return fmt.Errorf("product is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if r.Amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}
	if r.Units < 0 {
		return fmt.Errorf("units must not be negative")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// wireRecord is the JSON shape of a record. Amount is emitted as a bare number.
type wireRecord struct {
	Product  string          `json:"product"`
	Category string          `json:"category"`
	Amount   json.RawMessage `json:"amount"`
	Units    int             `json:"units"`
	Region   string          `json:"region"`
	Date     Date            `json:"date"`
}

// MarshalJSON encodes the record with a numeric amount.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRecord{
		Product:  r.Product,
		Category: r.Category,
		Amount:   json.RawMessage(r.Amount.String()),
		Units:    r.Units,
		Region:   r.Region,
		Date:     r.Date,
	})
}

// UnmarshalJSON decodes a record; amount may be a number or a numeric string.
func (r *Record) UnmarshalJSON(b []byte) error {
	var w wireRecord
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	var amount decimal.Decimal
	if len(w.Amount) > 0 {
		if err := amount.UnmarshalJSON(w.Amount); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
	}
	*r = Record{
		Product:  w.Product,
		Category: w.Category,
		Amount:   amount,
		Units:    w.Units,
		Region:   w.Region,
		Date:     w.Date,
	}
	return nil
}
