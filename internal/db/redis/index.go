package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/salesgate/internal/db"
)

// CreateCollection creates a HASH index over "<name>:" keys.
func (s *Store) CreateCollection(ctx context.Context, name string, schema *db.Schema) error {
	args, err := buildCreateArgs(name, schema)
	if err != nil {
		return err
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// CollectionExists looks the index up with FT.INFO.
func (s *Store) CollectionExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(indexName(name)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name", "no such index") {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexExists, Err: err}
	}
	return true, nil
}

func buildCreateArgs(name string, schema *db.Schema) ([]string, error) {
	if name == "" {
		return nil, errors.New("collection name is required")
	}
	if schema == nil {
		return nil, errors.New("schema is required")
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	args := []string{
		indexName(name),
		"ON", "HASH",
		"PREFIX", "1", keyPrefix(name),
		"SCHEMA",
	}
	for _, f := range schema.Fields {
		fieldArgs, err := buildFieldArgs(f)
		if err != nil {
			return nil, err
		}
		args = append(args, fieldArgs...)
	}
	return args, nil
}

// buildFieldArgs maps a schema field onto a query-engine attribute. Keywords are
// case-sensitive tags so group keys come back exactly as stored.
func buildFieldArgs(f db.SchemaField) ([]string, error) {
	switch f.Type {
	case db.FieldKeyword:
		return []string{f.Name, "TAG", "CASESENSITIVE", "SORTABLE"}, nil
	case db.FieldFloat, db.FieldInteger:
		return []string{f.Name, "NUMERIC", "SORTABLE"}, nil
	case db.FieldDate:
		return []string{f.Name, "TAG"}, nil
	default:
		return nil, fmt.Errorf("unknown field type %q", f.Type)
	}
}
