package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/salesgate/internal/db"
)

// IndexDocument stores doc under a store-assigned id. The write is refreshed
// before returning so the document is visible to the next search.
func (s *Store) IndexDocument(ctx context.Context, collection string, doc db.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	res, err := s.es.Index(
		collection,
		bytes.NewReader(body),
		s.es.Index.WithContext(ctx),
		s.es.Index.WithRefresh("true"),
	)
	if err != nil {
		return &db.Error{Op: db.OpIndex, Err: err}
	}
	defer closeBody(res)

	if res.IsError() {
		_, cause := responseError(res)
		return &db.Error{Op: db.OpIndex, Err: cause}
	}
	return nil
}
