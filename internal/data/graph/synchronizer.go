package graph

import (
	"context"

	types "github.com/oka8489/migiude-ai-v3/internal/domain"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
	"github.com/oka8489/migiude-ai-v3/internal/platform/neo4jdb"
)

// Synchronizer is the graph mirror used by the services layer. A nil client
// makes every call a no-op returning false, which is how a deployment with
// the graph store disabled runs.
type Synchronizer struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewSynchronizer(client *neo4jdb.Client, baseLog *logger.Logger) *Synchronizer {
	return &Synchronizer{
		client: client,
		log:    baseLog.With("service", "GraphSynchronizer"),
	}
}

func (s *Synchronizer) UpsertProject(ctx context.Context, project *types.Project) bool {
	return UpsertProjectGraph(ctx, s.client, s.log, project)
}

func (s *Synchronizer) UpsertDesignDocument(ctx context.Context, doc *types.DesignDocument) bool {
	return UpsertDesignDocGraph(ctx, s.client, s.log, doc)
}

func (s *Synchronizer) DeleteProject(ctx context.Context, projectID uint) bool {
	return DeleteProjectGraph(ctx, s.client, s.log, projectID)
}

func (s *Synchronizer) Available(ctx context.Context) bool {
	if s.client == nil {
		return false
	}
	return s.client.Available(ctx)
}
