package db

import "strings"

// SchemaBuilder is a fluent builder for collection schemas.
type SchemaBuilder struct {
	schema Schema
}

// NewSchema starts building a schema.
func NewSchema() *SchemaBuilder {
	return &SchemaBuilder{}
}

// Keyword adds an exact-match string field.
func (b *SchemaBuilder) Keyword(name string) *SchemaBuilder {
	return b.add(name, FieldKeyword)
}

// Float adds a floating point field.
func (b *SchemaBuilder) Float(name string) *SchemaBuilder {
	return b.add(name, FieldFloat)
}

// Integer adds a whole number field.
func (b *SchemaBuilder) Integer(name string) *SchemaBuilder {
	return b.add(name, FieldInteger)
}

// Date adds a calendar date field.
func (b *SchemaBuilder) Date(name string) *SchemaBuilder {
	return b.add(name, FieldDate)
}

func (b *SchemaBuilder) add(name string, t FieldType) *SchemaBuilder {
	b.schema.Fields = append(b.schema.Fields, SchemaField{Name: name, Type: t})
	return b
}

// Build validates and returns the schema.
func (b *SchemaBuilder) Build() (*Schema, error) {
	if err := b.schema.Validate(); err != nil {
		return nil, err
	}
	out := Schema{Fields: make([]SchemaField, len(b.schema.Fields))}
	copy(out.Fields, b.schema.Fields)
	return &out, nil
}

// MustBuild calls Build and panics on error.
func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// String returns a debug representation like "product:keyword amount:float".
func (s *Schema) String() string {
	parts := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		parts = append(parts, f.Name+":"+string(f.Type))
	}
	return strings.Join(parts, " ")
}
