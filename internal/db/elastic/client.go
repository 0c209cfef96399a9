package elastic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/salesgate/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for an Elasticsearch store.
type Config struct {
	Addrs    []string
	Username string
	Password string
}

// Store implements db.Store via the official Elasticsearch client.
type Store struct {
	es *elasticsearch.Client
}

// NewStore creates an Elasticsearch store.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableRetry: true, // request timeouts are owned by the caller's context
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{es: es}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	res, err := s.es.Ping(s.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer closeBody(res)
	if res.IsError() {
		return fmt.Errorf("ping: %s", res.Status())
	}
	return nil
}

// Close is a no-op: the HTTP client keeps nothing open beyond idle connections.
func (s *Store) Close() {}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// errorBody is the JSON error envelope Elasticsearch returns on 4xx/5xx.
type errorBody struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// responseError decodes an error response. typ is the Elasticsearch error
// type, empty when the body is not the JSON error envelope.
func responseError(res *esapi.Response) (typ string, cause error) {
	raw, _ := io.ReadAll(res.Body)
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil || eb.Error.Type == "" {
		return "", fmt.Errorf("[%d] %s", res.StatusCode, string(raw))
	}
	return eb.Error.Type, fmt.Errorf("[%d] %s: %s", res.StatusCode, eb.Error.Type, eb.Error.Reason)
}

func closeBody(res *esapi.Response) {
	if res != nil && res.Body != nil {
		_ = res.Body.Close()
	}
}
