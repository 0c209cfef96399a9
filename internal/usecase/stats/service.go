package stats

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/salesgate/internal/domain"
	"github.com/kailas-cloud/salesgate/internal/domain/query"
	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
	domstats "github.com/kailas-cloud/salesgate/internal/domain/stats"
)

// Service answers the sales listing and statistics queries.
type Service struct {
	repo     Repository
	ready    ReadinessChecker
	listSize int
}

// New creates a stats service. ready may be nil (always ready).
func New(repo Repository, ready ReadinessChecker) *Service {
	return &Service{repo: repo, ready: ready, listSize: DefaultListSize}
}

// WithListSize sets the maximum number of documents Sales and Records return.
func (s *Service) WithListSize(n int) *Service {
	if n > 0 {
		s.listSize = n
	}
	return s
}

// Sales returns the stored documents in store order, field for field.
func (s *Service) Sales(ctx context.Context) ([]domsales.Document, error) {
	q, err := s.listQuery()
	if err != nil {
		return nil, err
	}
	docs, err := s.repo.Sources(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return docs, nil
}

// Records returns the stored sales decoded into records, in store order.
func (s *Service) Records(ctx context.Context) ([]domsales.Record, error) {
	q, err := s.listQuery()
	if err != nil {
		return nil, err
	}
	recs, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return recs, nil
}

func (s *Service) listQuery() (query.Query, error) {
	if err := s.checkReady(); err != nil {
		return query.Query{}, err
	}
	q, err := ListQuery(s.listSize)
	if err != nil {
		return query.Query{}, fmt.Errorf("build list query: %w", err)
	}
	return q, nil
}

// Stats runs the stats query and normalizes its aggregations.
func (s *Service) Stats(ctx context.Context) (domstats.Stats, error) {
	if err := s.checkReady(); err != nil {
		return domstats.Stats{}, err
	}
	q, err := StatsQuery()
	if err != nil {
		return domstats.Stats{}, fmt.Errorf("build stats query: %w", err)
	}
	res, err := s.repo.Aggregate(ctx, q)
	if err != nil {
		return domstats.Stats{}, fmt.Errorf("aggregate sales: %w", err)
	}
	return Normalize(res)
}

func (s *Service) checkReady() error {
	if s.ready != nil && !s.ready.Ready() {
		return domain.ErrNotReady
	}
	return nil
}
