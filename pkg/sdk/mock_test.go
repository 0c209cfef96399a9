package salesgate

import (
	"context"

	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
	domstats "github.com/kailas-cloud/salesgate/internal/domain/stats"
	healthuc "github.com/kailas-cloud/salesgate/internal/usecase/health"
	seeduc "github.com/kailas-cloud/salesgate/internal/usecase/seed"
)

// --- seedUseCase mock ---

type mockSeedUC struct {
	ensureFn func(ctx context.Context) seeduc.Outcome
}

func (m *mockSeedUC) EnsureSeeded(ctx context.Context) seeduc.Outcome {
	return m.ensureFn(ctx)
}

// --- statsUseCase mock ---

type mockStatsUC struct {
	recordsFn func(ctx context.Context) ([]domsales.Record, error)
	statsFn   func(ctx context.Context) (domstats.Stats, error)
}

func (m *mockStatsUC) Records(ctx context.Context) ([]domsales.Record, error) {
	return m.recordsFn(ctx)
}

func (m *mockStatsUC) Stats(ctx context.Context) (domstats.Stats, error) {
	return m.statsFn(ctx)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}
