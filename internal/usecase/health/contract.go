package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ReadinessChecker reports whether startup seeding has finished.
type ReadinessChecker interface {
	Ready() bool
}

// CollectionChecker reports whether the sales collection exists.
type CollectionChecker interface {
	Exists(ctx context.Context) (bool, error)
}
