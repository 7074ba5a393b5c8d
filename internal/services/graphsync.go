package services

import (
	"context"

	"github.com/oka8489/migiude-ai-v3/internal/domain"
)

// GraphSyncer mirrors relational rows into the graph store. Every method is
// best-effort: false means the mirror write did not complete, never an error,
// so relational persistence is unaffected by graph availability.
type GraphSyncer interface {
	UpsertProject(ctx context.Context, project *domain.Project) bool
	UpsertDesignDocument(ctx context.Context, doc *domain.DesignDocument) bool
	DeleteProject(ctx context.Context, projectID uint) bool
	Available(ctx context.Context) bool
}
