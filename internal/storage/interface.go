package storage

import "context"

// Provider is the document store contract the tracking core depends on.
// Implementations must commit a Batch atomically: either every operation is
// applied or none is.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Documents
	Insert(ctx context.Context, collection string, fields map[string]any) (string, error)
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Commit(ctx context.Context, b Batch) error

	// Utils
	GetConfigPath() string
}
