package graph

import (
	"reflect"
	"strings"
	"testing"

	"gorm.io/datatypes"

	types "github.com/oka8489/migiude-ai-v3/internal/domain"
)

func TestParseEngineers(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []types.Engineer
	}{
		{
			"role colon name",
			"現場代理人: 山田太郎",
			[]types.Engineer{{Name: "山田太郎", Role: "現場代理人"}},
		},
		{
			"full-width colon",
			"主任技術者：佐藤次郎",
			[]types.Engineer{{Name: "佐藤次郎", Role: "主任技術者"}},
		},
		{
			"bare name gets default role",
			"鈴木三郎",
			[]types.Engineer{{Name: "鈴木三郎", Role: "技術者"}},
		},
		{
			"delimited string list",
			"現場代理人: 山田太郎、主任技術者：佐藤次郎",
			[]types.Engineer{
				{Name: "山田太郎", Role: "現場代理人"},
				{Name: "佐藤次郎", Role: "主任技術者"},
			},
		},
		{
			"object list",
			[]any{
				map[string]any{"name": "山田太郎", "role": "現場代理人"},
				map[string]any{"name": "鈴木三郎"},
			},
			[]types.Engineer{
				{Name: "山田太郎", Role: "現場代理人"},
				{Name: "鈴木三郎", Role: "技術者"},
			},
		},
		{"nil", nil, nil},
		{"nameless object dropped", []any{map[string]any{"role": "監理技術者"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEngineers(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseEngineers(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMaterialNames(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{
			"object rows with trailing amounts",
			[]any{
				map[string]any{"item": "アスファルト合材 1,200ｔ"},
				map[string]any{"item": "路盤材 850㎥"},
			},
			[]string{"アスファルト合材", "路盤材"},
		},
		{
			"string rows",
			[]any{"区画線 3,400m", "縁石工 120m"},
			[]string{"区画線", "縁石工"},
		},
		{
			"delimited string",
			"アスファルト合材 1,200ｔ、路盤材 850㎥",
			[]string{"アスファルト合材", "路盤材"},
		},
		{"no trailing amount", []any{"特殊養生材"}, []string{"特殊養生材"}},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaterialNames(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("MaterialNames(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassifySpecLines(t *testing.T) {
	specs := "排水性舗装工法を採用すること\n道路構造令の基準に適合すること\n騒音規制法に基づく施工とすること\n現場周辺の美観に配慮すること"

	methods, regulations := ClassifySpecLines(specs)

	if !reflect.DeepEqual(methods, []string{
		"排水性舗装工法を採用すること",
		"騒音規制法に基づく施工とすること",
	}) {
		t.Fatalf("methods = %#v", methods)
	}
	// Keyword matching is substring-based: 工法 also hits 法, so the first
	// line lands in both buckets.
	if !reflect.DeepEqual(regulations, []string{
		"排水性舗装工法を採用すること",
		"道路構造令の基準に適合すること",
		"騒音規制法に基づく施工とすること",
	}) {
		t.Fatalf("regulations = %#v", regulations)
	}
}

func TestClassifySpecLinesEmpty(t *testing.T) {
	methods, regulations := ClassifySpecLines(nil)
	if methods != nil || regulations != nil {
		t.Fatalf("nil input should classify nothing: %#v / %#v", methods, regulations)
	}
}

func TestProjectGraphStatementsPlan(t *testing.T) {
	amount := int64(12000000)
	p := &types.Project{
		ID:             7,
		ProjectCode:    "R4-01",
		ProjectName:    "令和4年度 道路改良工事",
		ContractAmount: &amount,
		StartDate:      "2022/06/01",
		Location:       "大分県日田市",
		ClientName:     "大分県土木建築部",
		ContractorName: "株式会社山田建設",
		Field:          "道路",
		WorkTypes:      datatypes.JSON(`["舗装工","土工"]`),
		Engineers:      datatypes.JSON(`[{"name":"山田太郎","role":"現場代理人"}]`),
	}

	stmts := projectGraphStatements(p)
	if len(stmts) == 0 {
		t.Fatal("expected statements")
	}

	joined := ""
	for _, s := range stmts {
		joined += s.query + "\n"
	}

	// Node identity is MERGE-keyed, so re-running the plan is idempotent.
	if strings.Contains(joined, "CREATE (p:Project") {
		t.Fatal("project node must be MERGEd, not CREATEd")
	}
	for _, want := range []string{
		"MERGE (p:Project {relational_id: $rid})",
		":ORDERED_BY",
		":CONTRACTED_BY",
		"HAS_ENGINEER {role: $role}",
		":HAS_WORK_TYPE",
		":IN_FIELD",
		":LOCATED_IN",
		"(r_city)-[:PART_OF]->(r_pref)",
		":IN_FISCAL_YEAR",
		"(c)-[:MANAGES]->(r)",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("plan missing %q\nplan:\n%s", want, joined)
		}
	}

	// start_date 2022/06 is fiscal year 2022.
	found := false
	for _, s := range stmts {
		if name, ok := s.params["name"].(string); ok && name == "2022年度" {
			found = true
		}
	}
	if !found {
		t.Fatal("fiscal-year dimension node missing")
	}
}

func TestProjectGraphStatementsSkipsEmptyDimensions(t *testing.T) {
	p := &types.Project{ID: 3, ProjectCode: "XX-01"}

	joined := ""
	for _, s := range projectGraphStatements(p) {
		joined += s.query + "\n"
	}

	for _, absent := range []string{":ORDERED_BY", ":CONTRACTED_BY", ":HAS_ENGINEER", ":IN_FIELD", ":LOCATED_IN"} {
		if strings.Contains(joined, absent) {
			t.Fatalf("empty project should not emit %s edges", absent)
		}
	}
}

func TestDesignDocGraphStatementsPlan(t *testing.T) {
	doc := &types.DesignDocument{
		ID:             5,
		ProjectID:      7,
		DocumentTitle:  "特記仕様書",
		BudgetCategory: "国費",
		Quantities:     datatypes.JSON(`[{"item":"アスファルト合材 1,200ｔ"}]`),
		SpecialSpecs:   "排水性舗装工法を採用すること\n道路構造令の基準に適合すること",
	}

	fields := designDocFields(doc)
	stmts := designDocGraphStatements(doc, fields)

	joined := ""
	for _, s := range stmts {
		joined += s.query + "\n"
	}

	// One node per upload: the document node is CREATEd, not MERGEd.
	if !strings.Contains(joined, "CREATE (d:DesignDocument") {
		t.Fatal("design document node must be CREATEd per upload")
	}
	for _, want := range []string{
		":HAS_DESIGN_DOC",
		":HAS_BUDGET_CATEGORY",
		":USES_MATERIAL",
		":USES_METHOD",
		":REQUIRES_REGULATION",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("plan missing %q\nplan:\n%s", want, joined)
		}
	}
}

func TestOrphanedDimensionGCQueryScopesLabels(t *testing.T) {
	q := orphanedDimensionGCQuery()

	for _, label := range dimensionLabels {
		if !strings.Contains(q, "n:"+label) {
			t.Fatalf("GC query missing label %s", label)
		}
	}
	if strings.Contains(q, "n:Project") || strings.Contains(q, "n:DesignDocument") {
		t.Fatal("GC query must never touch Project or DesignDocument nodes")
	}
	if !strings.Contains(q, "NOT (n)--()") {
		t.Fatal("GC query must only delete relationship-less nodes")
	}
}

func TestUpsertProjectGraphDisabledClient(t *testing.T) {
	if UpsertProjectGraph(nil, nil, nil, &types.Project{ID: 1}) {
		t.Fatal("nil client must be a no-op returning false")
	}
	if UpsertDesignDocGraph(nil, nil, nil, &types.DesignDocument{ID: 1, ProjectID: 1}) {
		t.Fatal("nil client must be a no-op returning false")
	}
	if DeleteProjectGraph(nil, nil, nil, 1) {
		t.Fatal("nil client must be a no-op returning false")
	}
}
