package seed

import (
	"context"

	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
)

// Repository defines the storage contract for seeding.
type Repository interface {
	// CreateCollection returns domain.ErrAlreadyExists if the collection is already there.
	CreateCollection(ctx context.Context) error
	Insert(ctx context.Context, rec domsales.Record) error
}
