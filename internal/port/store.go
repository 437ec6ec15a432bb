package port

import (
	"context"

	"github.com/eeese/showcase/internal/domain"
)

// Store is the durable local store
type Store interface {
	ProjectSource
	EventSource

	// Stats returns row counts for the debug endpoint and the CLI
	Stats(ctx context.Context) (*domain.CatalogStats, error)

	// Ping checks that the database is reachable
	Ping(ctx context.Context) error

	// Close releases the database handle
	Close() error
}
