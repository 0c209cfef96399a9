package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/kailas-cloud/salesgate/internal/db"
)

// IndexDocument stores doc as a hash under "<collection>:<uuid>". The query
// engine indexes hashes synchronously, so the document is searchable on return.
func (s *Store) IndexDocument(ctx context.Context, collection string, doc db.Document) error {
	if len(doc) == 0 {
		return fmt.Errorf("document has no fields")
	}

	names := make([]string, 0, len(doc))
	for k := range doc {
		names = append(names, k)
	}
	sort.Strings(names)

	key := keyPrefix(collection) + uuid.NewString()
	cmd := s.b().Hset().Key(key).FieldValue()
	for _, k := range names {
		v, err := formatValue(doc[k])
		if err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}
		cmd = cmd.FieldValue(k, v)
	}

	if err := s.do(ctx, cmd.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpIndex, Err: err}
	}
	return nil
}

func formatValue(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
