package seed

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kailas-cloud/salesgate/internal/domain"
	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
	"github.com/kailas-cloud/salesgate/internal/logger"
	"github.com/kailas-cloud/salesgate/internal/metrics"
)

// Outcome is the result of a seeding attempt.
type Outcome string

const (
	// Seeded means the collection was created and filled with the sample records.
	Seeded Outcome = "seeded"
	// AlreadyInitialized means seeding was skipped, see the logged cause.
	AlreadyInitialized Outcome = "already_initialized"
)

// Skip causes reported in the seed.skipped log line.
const (
	causeExists       = "collection exists"
	causeCreateFailed = "create failed"
	causeInsertFailed = "insert failed"
)

// Service loads the sample records into a fresh collection.
type Service struct {
	repo    Repository
	gate    *Gate
	records []domsales.Record
}

// New creates a seed service. gate may be nil.
func New(repo Repository, gate *Gate) *Service {
	return &Service{repo: repo, gate: gate, records: SampleRecords()}
}

// WithRecords replaces the records loaded into a fresh collection.
func (s *Service) WithRecords(recs []domsales.Record) *Service {
	s.records = recs
	return s
}

// EnsureSeeded creates the collection and inserts the records one by one.
// Seeding happens at most once: if the collection cannot be created, for any
// reason, nothing is inserted. Failures are logged, never returned, and the
// gate is opened on every path.
func (s *Service) EnsureSeeded(ctx context.Context) Outcome {
	if s.gate != nil {
		defer s.gate.Open()
	}
	log := logger.FromContext(ctx)

	if err := s.repo.CreateCollection(ctx); err != nil {
		cause := causeCreateFailed
		level := zap.WarnLevel
		if errors.Is(err, domain.ErrAlreadyExists) {
			cause = causeExists
			level = zap.InfoLevel
		}
		log.Log(level, "seed.skipped", zap.String("cause", cause), zap.Error(err))
		return AlreadyInitialized
	}

	for i, rec := range s.records {
		if err := s.repo.Insert(ctx, rec); err != nil {
			log.Warn("seed.skipped",
				zap.String("cause", causeInsertFailed),
				zap.Int("inserted", i),
				zap.Int("total", len(s.records)),
				zap.Error(err),
			)
			return AlreadyInitialized
		}
		metrics.SeedDocumentsTotal.Inc()
	}

	log.Info("seed.created", zap.Int("records", len(s.records)))
	return Seeded
}
