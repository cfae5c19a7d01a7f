package currency

import "context"

// Storage keeps exactly one snapshot. Store replaces whatever was kept before.
type Storage interface {
	Load(ctx context.Context) (Snapshot, error)
	Store(ctx context.Context, currencies []Currency) error
	Migrate(ctx context.Context) error
	Drop(ctx context.Context) error
	Close() error
	GetStorageProviderName() string
}
