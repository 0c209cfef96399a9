package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/salesgate/internal/db"
)

const typeAlreadyExists = "resource_already_exists_exception"

// CreateCollection creates an index with an explicit mapping derived from schema.
func (s *Store) CreateCollection(ctx context.Context, name string, schema *db.Schema) error {
	body, err := buildMapping(schema)
	if err != nil {
		return err
	}

	res, err := s.es.Indices.Create(
		name,
		s.es.Indices.Create.WithBody(bytes.NewReader(body)),
		s.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	defer closeBody(res)

	if res.IsError() {
		typ, cause := responseError(res)
		if typ == typeAlreadyExists {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Err: cause}
	}
	return nil
}

// CollectionExists checks the index with HEAD /<index>.
func (s *Store) CollectionExists(ctx context.Context, name string) (bool, error) {
	res, err := s.es.Indices.Exists([]string{name}, s.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, &db.Error{Op: db.OpIndexExists, Err: err}
	}
	defer closeBody(res)

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, &db.Error{Op: db.OpIndexExists, Err: fmt.Errorf("unexpected status %s", res.Status())}
	}
}

func buildMapping(schema *db.Schema) ([]byte, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema is required")
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	props := make(map[string]any, len(schema.Fields))
	for _, f := range schema.Fields {
		t, err := mappingType(f.Type)
		if err != nil {
			return nil, err
		}
		props[f.Name] = map[string]string{"type": t}
	}

	return json.Marshal(map[string]any{
		"mappings": map[string]any{"properties": props},
	})
}

func mappingType(t db.FieldType) (string, error) {
	switch t {
	case db.FieldKeyword:
		return "keyword", nil
	case db.FieldFloat:
		return "float", nil
	case db.FieldInteger:
		return "integer", nil
	case db.FieldDate:
		return "date", nil
	default:
		return "", fmt.Errorf("unknown field type %q", t)
	}
}
