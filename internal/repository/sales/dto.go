package sales

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/salesgate/internal/db"
	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
)

// recordToDocument flattens a record into store fields. The amount travels as a
// json.Number so no float rounding happens on the way in.
func recordToDocument(rec domsales.Record) db.Document {
	return db.Document{
		domsales.FieldProduct:  rec.Product,
		domsales.FieldCategory: rec.Category,
		domsales.FieldAmount:   json.Number(rec.Amount.String()),
		domsales.FieldUnits:    rec.Units,
		domsales.FieldRegion:   rec.Region,
		domsales.FieldDate:     rec.Date.String(),
	}
}

// documentToRecord rebuilds a record from store fields. Drivers return numbers
// as json.Number, float64 or plain strings; all are accepted.
func documentToRecord(doc db.Document) (domsales.Record, error) {
	amount, err := toDecimal(doc[domsales.FieldAmount])
	if err != nil {
		return domsales.Record{}, fmt.Errorf("%s: %w", domsales.FieldAmount, err)
	}
	units, err := toInt(doc[domsales.FieldUnits])
	if err != nil {
		return domsales.Record{}, fmt.Errorf("%s: %w", domsales.FieldUnits, err)
	}

	var date domsales.Date
	if s := toString(doc[domsales.FieldDate]); s != "" {
		date, err = domsales.ParseDate(s)
		if err != nil {
			return domsales.Record{}, err
		}
	}

	return domsales.Record{
		Product:  toString(doc[domsales.FieldProduct]),
		Category: toString(doc[domsales.FieldCategory]),
		Amount:   amount,
		Units:    units,
		Region:   toString(doc[domsales.FieldRegion]),
		Date:     date,
	}, nil
}

// numericFields are the schema columns that hold numbers.
var numericFields = func() map[string]bool {
	out := make(map[string]bool)
	for _, f := range Schema().Fields {
		if f.Type.IsNumeric() {
			out[f.Name] = true
		}
	}
	return out
}()

// sourceDocument copies a stored document without interpreting it. Numeric
// columns that a driver hands back as strings (Redis hashes) are emitted as
// JSON numbers when they hold one; every other value passes through as is.
func sourceDocument(doc db.Document) domsales.Document {
	out := make(domsales.Document, len(doc))
	for k, v := range doc {
		if s, ok := v.(string); ok && numericFields[k] && isJSONNumber(s) {
			v = json.Number(s)
		}
		out[k] = v
	}
	return out
}

func isJSONNumber(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	return json.Valid([]byte(s))
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, nil
	case json.Number:
		return decimal.NewFromString(x.String())
	case string:
		return decimal.NewFromString(x)
	case float64:
		return decimal.NewFromFloat(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported type %T", v)
	}
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		return int(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i), nil
		}
		f, err := x.Float64()
		return int(f), err
	case string:
		return strconv.Atoi(x)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
