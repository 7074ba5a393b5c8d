package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
	"github.com/oka8489/migiude-ai-v3/internal/platform/neo4jdb"
)

// DeleteProjectGraph detach-deletes the Project node and its design-document
// nodes, then garbage-collects dimension nodes left with no relationships.
// The GC is scoped to the fixed dimension label set so Project and
// DesignDocument nodes, and any unrelated labels, are never touched.
func DeleteProjectGraph(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, projectID uint) bool {
	if client == nil || client.Driver == nil {
		return false
	}
	if projectID == 0 {
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

	stmts := []statement{
		{
			query: `
MATCH (p:Project {relational_id: $rid})-[:HAS_DESIGN_DOC]->(d:DesignDocument)
DETACH DELETE d
`,
			params: map[string]any{"rid": int64(projectID)},
		},
		{
			query:  `MATCH (p:Project {relational_id: $rid}) DETACH DELETE p`,
			params: map[string]any{"rid": int64(projectID)},
		},
		{
			query:  orphanedDimensionGCQuery(),
			params: nil,
		},
	}

	for _, stmt := range stmts {
		if !runStatement(ctx, session, log, stmt) {
			return false
		}
	}
	return true
}

func orphanedDimensionGCQuery() string {
	conds := make([]string, 0, len(dimensionLabels))
	for _, label := range dimensionLabels {
		conds = append(conds, "n:"+label)
	}
	return fmt.Sprintf(`
MATCH (n)
WHERE NOT (n)--()
AND (%s)
DELETE n
`, strings.Join(conds, " OR "))
}
