package db

import (
	"errors"
	"strconv"
)

// FieldType is a store-neutral field mapping type.
type FieldType string

const (
	// FieldKeyword is an exact-match string usable for terms grouping.
	FieldKeyword FieldType = "keyword"
	// FieldFloat is a floating point number.
	FieldFloat FieldType = "float"
	// FieldInteger is a whole number.
	FieldInteger FieldType = "integer"
	// FieldDate is a calendar date in YYYY-MM-DD form.
	FieldDate FieldType = "date"
)

// IsNumeric reports whether the field can be summed or averaged.
func (t FieldType) IsNumeric() bool {
	return t == FieldFloat || t == FieldInteger
}

// SchemaField maps one document field to a type.
type SchemaField struct {
	Name string
	Type FieldType
}

// Schema is the ordered field mapping of a collection.
type Schema struct {
	Fields []SchemaField
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (SchemaField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return SchemaField{}, false
}

// Validate checks that the schema is well-formed.
func (s *Schema) Validate() error {
	if len(s.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if !IsValidIdentifier(f.Name) {
			return errors.New("field name contains invalid characters: " + f.Name)
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true

		switch f.Type {
		case FieldKeyword, FieldFloat, FieldInteger, FieldDate:
		default:
			return errors.New("unknown type " + strconv.Quote(string(f.Type)) + " for field " + f.Name)
		}
	}
	return nil
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}
