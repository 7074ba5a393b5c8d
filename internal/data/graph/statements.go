package graph

import (
	"fmt"
	"regexp"
	"strings"

	types "github.com/oka8489/migiude-ai-v3/internal/domain"
	"github.com/oka8489/migiude-ai-v3/internal/normalization"
)

// statement is one Cypher write with its parameters. Statements run one at a
// time in their own auto-commit transactions; a failure leaves the graph in
// whatever state the last completed statement produced.
type statement struct {
	query  string
	params map[string]any
}

// dimensionLabels is the closed set of shared, name-keyed node labels. The
// scoped GC after a project delete only ever touches these.
var dimensionLabels = []string{
	"Material", "Method", "Regulation", "WorkType",
	"BudgetCategory", "Field", "Region", "FiscalYear",
	"Client", "Contractor", "Engineer",
	"Route", "ContractMethod", "PermitType",
	"BidCategory", "ConstructionArea", "ConstructionMethod",
}

const defaultEngineerRole = "技術者"

var engineerRoleSplitRe = regexp.MustCompile(`[:：]`)

// ParseEngineers normalizes the engineers field into name/role pairs.
// String entries may carry a "role: name" convention; entries without one
// get the generic role.
func ParseEngineers(value any) []types.Engineer {
	var out []types.Engineer

	appendString := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		role := defaultEngineerRole
		name := s
		if loc := engineerRoleSplitRe.FindStringIndex(s); loc != nil {
			role = strings.TrimSpace(s[:loc[0]])
			name = strings.TrimSpace(s[loc[1]:])
		}
		if name == "" {
			return
		}
		out = append(out, types.Engineer{Name: name, Role: role})
	}

	switch v := value.(type) {
	case nil:
		return nil
	case string:
		for _, item := range normalization.SplitList(v) {
			appendString(item)
		}
	case []any:
		for _, item := range v {
			switch e := item.(type) {
			case map[string]any:
				name := strings.TrimSpace(types.StringField(e, "name"))
				if name == "" {
					continue
				}
				role := strings.TrimSpace(types.StringField(e, "role"))
				if role == "" {
					role = defaultEngineerRole
				}
				out = append(out, types.Engineer{Name: name, Role: role})
			case string:
				appendString(e)
			}
		}
	}
	return out
}

// mergeDimensionEdge merges a name-keyed dimension node and the edge from
// the project to it. Label and relation come from fixed vocabularies, never
// user input, so building the query text is safe.
func mergeDimensionEdge(projectID uint, label, relation, name string) statement {
	return statement{
		query: fmt.Sprintf(`
MERGE (d:%s {name: $name})
WITH d
MATCH (p:Project {relational_id: $rid})
MERGE (p)-[:%s]->(d)
`, label, relation),
		params: map[string]any{"name": name, "rid": int64(projectID)},
	}
}

// projectGraphStatements builds the full ordered upsert plan for one
// project. Pure; exercised directly by tests.
func projectGraphStatements(p *types.Project) []statement {
	data := p.MergedFields()
	rid := int64(p.ID)
	var stmts []statement

	stmts = append(stmts, statement{
		query: `
MERGE (p:Project {relational_id: $rid})
SET p.name = $name,
    p.project_code = $project_code,
    p.corins_id = $corins_id,
    p.contract_amount = $contract_amount,
    p.start_date = $start_date,
    p.end_date = $end_date,
    p.location = $location,
    p.summary = $summary,
    p.updated_at = datetime()
`,
		params: map[string]any{
			"rid":          rid,
			"name":         types.StringField(data, "project_name"),
			"project_code": p.ProjectCode,
			"corins_id":    types.StringField(data, "corins_id"),
			"contract_amount": func() any {
				if n, ok := types.NumberField(data, "contract_amount"); ok {
					return n
				}
				return ""
			}(),
			"start_date": types.StringField(data, "start_date"),
			"end_date":   types.StringField(data, "end_date"),
			"location":   types.StringField(data, "location"),
			"summary":    types.StringField(data, "summary"),
		},
	})

	location := types.StringField(data, "location")

	if client := types.StringField(data, "client_name"); client != "" {
		stmts = append(stmts, mergeDimensionEdge(p.ID, "Client", "ORDERED_BY", client))
		if pref := normalization.Prefecture(location); pref != "" {
			stmts = append(stmts, statement{
				query: `
MERGE (c:Client {name: $client})
MERGE (r:Region {name: $pref})
MERGE (c)-[:MANAGES]->(r)
`,
				params: map[string]any{"client": client, "pref": pref},
			})
		}
	}

	if contractor := types.StringField(data, "contractor_name"); contractor != "" {
		stmts = append(stmts, mergeDimensionEdge(p.ID, "Contractor", "CONTRACTED_BY", contractor))
	}

	for _, eng := range ParseEngineers(data["engineers"]) {
		stmts = append(stmts, statement{
			query: `
MERGE (e:Engineer {name: $name})
WITH e
MATCH (p:Project {relational_id: $rid})
MERGE (p)-[:HAS_ENGINEER {role: $role}]->(e)
`,
			params: map[string]any{"name": eng.Name, "rid": rid, "role": eng.Role},
		})
	}

	for _, wt := range normalization.SplitList(data["work_types"]) {
		stmts = append(stmts, mergeDimensionEdge(p.ID, "WorkType", "HAS_WORK_TYPE", wt))
	}

	if field := types.StringField(data, "field"); field != "" {
		stmts = append(stmts, mergeDimensionEdge(p.ID, "Field", "IN_FIELD", field))
	}

	regionParts := normalization.SplitRegion(location)
	for _, region := range regionParts {
		stmts = append(stmts, mergeDimensionEdge(p.ID, "Region", "LOCATED_IN", region))
	}
	if len(regionParts) >= 2 {
		stmts = append(stmts, statement{
			query: `
MERGE (r_pref:Region {name: $pref})
MERGE (r_city:Region {name: $city})
MERGE (r_city)-[:PART_OF]->(r_pref)
`,
			params: map[string]any{"pref": regionParts[0], "city": regionParts[1]},
		})
	}

	if fy := normalization.ResolveFiscalYear(types.StringField(data, "start_date")); fy != "" {
		stmts = append(stmts, mergeDimensionEdge(p.ID, "FiscalYear", "IN_FISCAL_YEAR", fy))
	}

	if route := types.StringField(data, "target_route_name"); route != "" {
		stmts = append(stmts, mergeDimensionEdge(p.ID, "Route", "ON_ROUTE", route))
	}

	if method := types.StringField(data, "contract_method"); method != "" {
		stmts = append(stmts, mergeDimensionEdge(p.ID, "ContractMethod", "CONTRACTED_BY", method))
	}

	if permit := types.StringField(data, "construction_permit_type"); permit != "" {
		stmts = append(stmts, mergeDimensionEdge(p.ID, "PermitType", "REQUIRES_PERMIT", permit))
	}

	if bidCat := types.StringField(data, "bid_qualification_category"); bidCat != "" {
		stmts = append(stmts, mergeDimensionEdge(p.ID, "BidCategory", "IN_BID_CATEGORY", bidCat))
	}

	if area := types.StringField(data, "construction_area"); area != "" {
		stmts = append(stmts, mergeDimensionEdge(p.ID, "ConstructionArea", "IN_AREA_TYPE", area))
	}

	for _, m := range normalization.SplitList(data["construction_methods"]) {
		stmts = append(stmts, mergeDimensionEdge(p.ID, "ConstructionMethod", "USES_METHOD", m))
	}

	coordinates := types.StringField(data, "coordinates")
	if coordinates == "" {
		coordinates = types.StringField(data, "start_location_coordinates")
	}
	if coordinates == "" {
		coordinates = types.StringField(data, "end_location_coordinates")
	}
	stmts = append(stmts, statement{
		query: `
MATCH (p:Project {relational_id: $rid})
SET p.night_work = $night_work,
    p.traffic_regulation = $traffic_regulation,
    p.road_traffic_volume = $road_traffic_volume,
    p.traffic_control_method = $traffic_control_method,
    p.construction_area = $construction_area,
    p.order_type = $order_type,
    p.coordinates = $coordinates,
    p.construction_permit_number = $permit_number
`,
		params: map[string]any{
			"rid":                    rid,
			"night_work":             types.StringField(data, "night_work"),
			"traffic_regulation":     types.StringField(data, "traffic_regulation"),
			"road_traffic_volume":    types.StringField(data, "road_traffic_volume"),
			"traffic_control_method": types.StringField(data, "traffic_control_method"),
			"construction_area":      types.StringField(data, "construction_area"),
			"order_type":             types.StringField(data, "order_type"),
			"coordinates":            coordinates,
			"permit_number":          types.StringField(data, "construction_permit_number"),
		},
	})

	if contractor := types.StringField(data, "contractor_name"); contractor != "" {
		stmts = append(stmts, statement{
			query: `
MATCH (co:Contractor {name: $name})
SET co.contractor_id = $cid,
    co.address = $address,
    co.tel = $tel,
    co.fax = $fax,
    co.permit_number = $permit
`,
			params: map[string]any{
				"name":    contractor,
				"cid":     types.StringField(data, "contractor_id"),
				"address": types.StringField(data, "office_address"),
				"tel":     types.StringField(data, "office_tel"),
				"fax":     types.StringField(data, "office_fax"),
				"permit":  types.StringField(data, "construction_permit_number"),
			},
		})
	}

	if client := types.StringField(data, "client_name"); client != "" {
		stmts = append(stmts, statement{
			query: `
MATCH (c:Client {name: $name})
SET c.address = $address,
    c.tel = $tel,
    c.postal_code = $postal
`,
			params: map[string]any{
				"name":    client,
				"address": types.StringField(data, "ordering_agency_address"),
				"tel":     types.StringField(data, "ordering_agency_tel"),
				"postal":  types.StringField(data, "ordering_agency_postal_code"),
			},
		})
	}

	return stmts
}
