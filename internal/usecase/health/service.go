package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates at least one check is not ok.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckPending indicates a component that has not finished starting.
	CheckPending CheckResult = "pending"
	// CheckMissing indicates the sales collection has not been created.
	CheckMissing CheckResult = "missing"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db         DBPinger
	seed       ReadinessChecker
	collection CollectionChecker
}

// New creates a Service. seed can be nil.
func New(db DBPinger, seed ReadinessChecker) *Service {
	return &Service{db: db, seed: seed}
}

// WithCollection adds a "collection" check backed by c.
func (s *Service) WithCollection(c CollectionChecker) *Service {
	s.collection = c
	return s
}

// Check pings the database, reads the seed gate and looks up the collection.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 3)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.seed != nil {
		if s.seed.Ready() {
			checks["seed"] = CheckOK
		} else {
			checks["seed"] = CheckPending
		}
	}

	if s.collection != nil {
		checks["collection"] = s.checkCollection(ctx)
	}

	status := Healthy
	for _, v := range checks {
		if v != CheckOK {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) checkCollection(ctx context.Context) CheckResult {
	ok, err := s.collection.Exists(ctx)
	switch {
	case err != nil:
		return CheckError
	case !ok:
		return CheckMissing
	default:
		return CheckOK
	}
}
