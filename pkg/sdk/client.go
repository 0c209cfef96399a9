package salesgate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/salesgate/internal/db"
	dbElastic "github.com/kailas-cloud/salesgate/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/salesgate/internal/db/redis"
	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
	domstats "github.com/kailas-cloud/salesgate/internal/domain/stats"
	salesrepo "github.com/kailas-cloud/salesgate/internal/repository/sales"
	healthuc "github.com/kailas-cloud/salesgate/internal/usecase/health"
	seeduc "github.com/kailas-cloud/salesgate/internal/usecase/seed"
	statsuc "github.com/kailas-cloud/salesgate/internal/usecase/stats"
)

const (
	driverElasticsearch = "elasticsearch"
	driverRedis         = "redis"

	defaultCollection       = "sales"
	defaultReadinessTimeout = 10 * time.Second
)

// Internal interfaces for substitution in tests.
type seedUseCase interface {
	EnsureSeeded(ctx context.Context) seeduc.Outcome
}

type statsUseCase interface {
	Records(ctx context.Context) ([]domsales.Record, error)
	Stats(ctx context.Context) (domstats.Stats, error)
}

// Client is the salesgate SDK entry point.
type Client struct {
	store     db.Store
	seedSvc   seedUseCase
	statsSvc  statsUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{collection: defaultCollection}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("salesgate: store address required (use WithElasticsearch or WithRedis)")
	}

	obs, err := newObserver(cfg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("salesgate: store not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverElasticsearch:
		s, err := dbElastic.NewStore(dbElastic.Config{
			Addrs:    cfg.addrs,
			Username: cfg.username,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("salesgate: create elasticsearch store: %w", err)
		}
		return s, nil
	case driverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Username: cfg.username,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("salesgate: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("salesgate: unknown driver %q", cfg.driver)
	}
}

// wireClient builds the in-process services. The SDK has no readiness gate:
// the caller decides when to Seed.
func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	repo := salesrepo.New(store, cfg.collection)

	return &Client{
		store:     store,
		seedSvc:   seeduc.New(repo, nil),
		statsSvc:  statsuc.New(repo, nil).WithListSize(cfg.listSize),
		healthSvc: healthuc.New(store, nil).WithCollection(repo),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.done("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Seed creates the collection and loads the sample records if it does not
// exist yet. It never fails: any problem yields AlreadyInitialized.
func (c *Client) Seed(ctx context.Context) SeedOutcome {
	start := time.Now()
	outcome := SeedOutcome(c.seedSvc.EnsureSeeded(ctx))
	c.obs.seeded(start, outcome)
	return outcome
}

// Sales returns the stored records in store order.
func (c *Client) Sales(ctx context.Context) (_ []Sale, err error) {
	start := time.Now()
	defer func() { c.obs.done("sales", start, err) }()

	recs, err := c.statsSvc.Records(ctx)
	if err != nil {
		return nil, err
	}
	return salesFromDomain(recs), nil
}

// Stats returns totals and revenue breakdowns by category and region.
func (c *Client) Stats(ctx context.Context) (_ Stats, err error) {
	start := time.Now()
	defer func() { c.obs.done("stats", start, err) }()

	st, err := c.statsSvc.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	return statsFromDomain(st), nil
}
