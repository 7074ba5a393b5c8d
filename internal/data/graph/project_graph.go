package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/oka8489/migiude-ai-v3/internal/domain"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
	"github.com/oka8489/migiude-ai-v3/internal/platform/neo4jdb"
)

// UpsertProjectGraph mirrors one project into the graph store: the Project
// node keyed by relational id plus merge-keyed dimension nodes and edges.
// Re-running it is idempotent for node identity; scalar project attributes
// are last-write-wins. Returns false (never an error) when the graph store
// is disabled, unreachable, or a statement fails mid-way.
func UpsertProjectGraph(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, project *types.Project) bool {
	if client == nil || client.Driver == nil {
		return false
	}
	if project == nil || project.ID == 0 {
		return false
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	for _, stmt := range projectGraphStatements(project) {
		if !runStatement(ctx, session, log, stmt) {
			return false
		}
	}
	return true
}

func runStatement(ctx context.Context, session neo4j.SessionWithContext, log *logger.Logger, stmt statement) bool {
	res, err := session.Run(ctx, stmt.query, stmt.params)
	if err == nil {
		_, err = res.Consume(ctx)
	}
	if err != nil {
		if log != nil {
			log.Warn("graph statement failed", "error", err)
		}
		return false
	}
	return true
}
