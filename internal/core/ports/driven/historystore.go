package driven

import (
	"context"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
)

// HistoryStore persists release run records.
type HistoryStore interface {
	// Save persists a record. Saving an existing ID updates it.
	Save(ctx context.Context, rec domain.ReleaseRecord) error

	// Get retrieves a record by ID.
	// Returns domain.ErrNotFound if no such record exists.
	Get(ctx context.Context, id string) (*domain.ReleaseRecord, error)

	// List returns records ordered by start time, newest first.
	// limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.ReleaseRecord, error)
}
