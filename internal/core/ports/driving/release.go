package driving

import (
	"context"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
)

// ReleaseOrchestrator runs the candidate-cutting workflow.
type ReleaseOrchestrator interface {
	// Cut executes one release-candidate run: preconditions, version
	// computation, repository mutation, artifact build and, when
	// req.Publish is set, remote publication.
	//
	// Failures after mutation began are returned as
	// *domain.MutationError so callers can surface rollback advice.
	Cut(ctx context.Context, req domain.CutRequest) (*domain.ReleaseResult, error)

	// Plan runs the preconditions and version computation only,
	// returning the names a subsequent Cut with the same request
	// would use. It never mutates the repository.
	Plan(ctx context.Context, req domain.CutRequest) (domain.ReleasePlan, error)
}

// HistoryService exposes the local release history.
type HistoryService interface {
	// List returns recorded runs, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]domain.ReleaseRecord, error)
}
