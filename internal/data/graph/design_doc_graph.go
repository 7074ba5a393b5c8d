package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/oka8489/migiude-ai-v3/internal/domain"
	"github.com/oka8489/migiude-ai-v3/internal/normalization"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
	"github.com/oka8489/migiude-ai-v3/internal/platform/neo4jdb"
)

// Fixed vocabularies for classifying special-spec lines. A line matching
// both sets yields both a Method and a Regulation edge.
var (
	methodKeywords = []string{
		"工法", "施工", "打設", "転圧", "注入", "吹付", "切削", "オーバーレイ", "プレキャスト",
	}
	regulationKeywords = []string{
		"法", "規則", "基準", "指針", "告示", "条例", "省令", "通達", "要領",
	}
)

// Quantity rows look like "アスファルト合材 1,200ｔ"; the trailing amount and
// unit are stripped to get the bare material name.
var quantitySuffixRe = regexp.MustCompile(`[\d,.]+\s*[a-zA-Zｍ㎡㎥ｔ]*$`)

// MaterialNames pulls material names out of a quantities field, which may be
// a delimited string or a list of rows ({"item": ...} objects or strings).
func MaterialNames(quantities any) []string {
	var entries []string
	switch v := quantities.(type) {
	case []any:
		for _, item := range v {
			switch row := item.(type) {
			case map[string]any:
				name := types.StringField(row, "item")
				if name == "" {
					name = types.StringField(row, "name")
				}
				if name != "" {
					entries = append(entries, name)
				}
			case string:
				entries = append(entries, row)
			}
		}
	default:
		entries = normalization.SplitList(quantities)
	}

	var out []string
	for _, entry := range entries {
		name := strings.TrimSpace(quantitySuffixRe.ReplaceAllString(entry, ""))
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// ClassifySpecLines splits a special-specs field into lines and buckets them
// by the fixed method / regulation vocabularies.
func ClassifySpecLines(specs any) (methods, regulations []string) {
	if specs == nil {
		return nil, nil
	}
	text, ok := specs.(string)
	if !ok {
		if data, err := json.Marshal(specs); err == nil {
			text = string(data)
		}
	}
	for _, line := range normalization.SplitList(text) {
		if containsAny(line, methodKeywords) {
			methods = append(methods, line)
		}
		if containsAny(line, regulationKeywords) {
			regulations = append(regulations, line)
		}
	}
	return methods, regulations
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// designDocGraphStatements builds the write plan for one design document.
// The caller has already verified the owning Project node exists.
func designDocGraphStatements(doc *types.DesignDocument, fields map[string]any) []statement {
	pid := int64(doc.ProjectID)
	var stmts []statement

	quantitiesText := ""
	if v, ok := fields["quantities"]; ok && v != nil {
		if s, isStr := v.(string); isStr {
			quantitiesText = s
		} else if data, err := json.Marshal(v); err == nil {
			quantitiesText = string(data)
		}
	}
	rawJSON := ""
	if data, err := json.Marshal(fields); err == nil {
		rawJSON = string(data)
	}

	// Design documents are subordinate uploads, one node per upload.
	stmts = append(stmts, statement{
		query: `
MATCH (p:Project {relational_id: $pid})
CREATE (d:DesignDocument {
    document_title: $document_title,
    project_name: $project_name,
    project_code: $project_code,
    location: $location,
    executing_office: $executing_office,
    contract_days: $contract_days,
    quantities: $quantities,
    special_specs: $special_specs,
    raw_json: $raw_json,
    created_at: datetime()
})
MERGE (p)-[:HAS_DESIGN_DOC]->(d)
`,
		params: map[string]any{
			"pid":              pid,
			"document_title":   types.StringField(fields, "document_title"),
			"project_name":     types.StringField(fields, "project_name"),
			"project_code":     types.StringField(fields, "project_code"),
			"location":         types.StringField(fields, "location"),
			"executing_office": types.StringField(fields, "executing_office"),
			"contract_days": func() any {
				if n, ok := types.NumberField(fields, "contract_days"); ok {
					return n
				}
				return ""
			}(),
			"quantities":    quantitiesText,
			"special_specs": types.StringField(fields, "special_specs"),
			"raw_json":      rawJSON,
		},
	})

	if budget := types.StringField(fields, "budget_category"); budget != "" {
		stmts = append(stmts, mergeDimensionEdge(doc.ProjectID, "BudgetCategory", "HAS_BUDGET_CATEGORY", budget))
	}

	for _, mat := range MaterialNames(fields["quantities"]) {
		stmts = append(stmts, mergeDimensionEdge(doc.ProjectID, "Material", "USES_MATERIAL", mat))
	}

	methods, regulations := ClassifySpecLines(fields["special_specs"])
	for _, m := range methods {
		stmts = append(stmts, mergeDimensionEdge(doc.ProjectID, "Method", "USES_METHOD", m))
	}
	for _, reg := range regulations {
		stmts = append(stmts, mergeDimensionEdge(doc.ProjectID, "Regulation", "REQUIRES_REGULATION", reg))
	}

	return stmts
}

// UpsertDesignDocGraph mirrors a design document under its project. The
// Project node must already exist; returns false without creating anything
// when it does not, so linked-document nodes are never orphaned.
func UpsertDesignDocGraph(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, doc *types.DesignDocument) bool {
	if client == nil || client.Driver == nil {
		return false
	}
	if doc == nil || doc.ProjectID == 0 {
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

	exists, err := projectNodeExists(ctx, session, doc.ProjectID)
	if err != nil {
		if log != nil {
			log.Warn("graph project lookup failed", "error", err, "project_id", doc.ProjectID)
		}
		return false
	}
	if !exists {
		if log != nil {
			log.Warn("design doc sync skipped, project node absent", "project_id", doc.ProjectID)
		}
		return false
	}

	fields := designDocFields(doc)
	for _, stmt := range designDocGraphStatements(doc, fields) {
		if !runStatement(ctx, session, log, stmt) {
			return false
		}
	}
	return true
}

func projectNodeExists(ctx context.Context, session neo4j.SessionWithContext, projectID uint) (bool, error) {
	res, err := session.Run(ctx,
		`MATCH (p:Project {relational_id: $pid}) RETURN p.relational_id LIMIT 1`,
		map[string]any{"pid": int64(projectID)},
	)
	if err != nil {
		return false, err
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return false, err
	}
	return len(records) > 0, nil
}

// designDocFields flattens the row into the extraction-shaped map the
// statement builder consumes, preferring the stored raw map.
func designDocFields(doc *types.DesignDocument) map[string]any {
	fields := map[string]any{}
	if len(doc.Raw) > 0 {
		_ = json.Unmarshal(doc.Raw, &fields)
	}

	backfill := func(key, val string) {
		if types.StringField(fields, key) == "" && val != "" {
			fields[key] = val
		}
	}
	backfill("document_title", doc.DocumentTitle)
	backfill("project_name", doc.ProjectName)
	backfill("project_code", doc.ProjectCode)
	backfill("location", doc.Location)
	backfill("executing_office", doc.ExecutingOffice)
	backfill("special_specs", doc.SpecialSpecs)
	if _, ok := fields["contract_days"]; !ok && doc.ContractDays != nil {
		fields["contract_days"] = fmt.Sprint(*doc.ContractDays)
	}
	if _, ok := fields["quantities"]; !ok && len(doc.Quantities) > 0 {
		var v any
		if err := json.Unmarshal(doc.Quantities, &v); err == nil {
			fields["quantities"] = v
		}
	}
	return fields
}
