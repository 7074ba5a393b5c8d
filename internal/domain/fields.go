package domain

import (
	"encoding/json"
	"strconv"
)

// RawFields decodes the stored raw extraction map. Returns nil when the row
// carries no raw map (relational_mode "fixed").
func (p *Project) RawFields() map[string]any {
	if len(p.Raw) == 0 {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(p.Raw, &out); err != nil {
		return nil
	}
	return out
}

// HydrateFromRaw reconstructs flattened fields from the raw map when the
// flattened columns are empty, i.e. rows written with relational_mode "json".
func (p *Project) HydrateFromRaw() {
	if p.ProjectName != "" {
		return
	}
	raw := p.RawFields()
	if raw == nil {
		return
	}

	p.CorinsID = fillString(p.CorinsID, raw, "corins_id")
	p.ProjectName = fillString(p.ProjectName, raw, "project_name")
	p.StartDate = fillString(p.StartDate, raw, "start_date")
	p.EndDate = fillString(p.EndDate, raw, "end_date")
	p.Location = fillString(p.Location, raw, "location")
	p.ClientName = fillString(p.ClientName, raw, "client_name")
	p.ContractorName = fillString(p.ContractorName, raw, "contractor_name")
	p.Field = fillString(p.Field, raw, "field")
	p.Summary = fillString(p.Summary, raw, "summary")
	if p.ContractAmount == nil {
		if n, ok := NumberField(raw, "contract_amount"); ok {
			p.ContractAmount = &n
		}
	}
	if len(p.WorkTypes) == 0 {
		if v, ok := raw["work_types"]; ok && v != nil {
			if data, err := json.Marshal(v); err == nil {
				p.WorkTypes = data
			}
		}
	}
	if len(p.Engineers) == 0 {
		if v, ok := raw["engineers"]; ok && v != nil {
			if data, err := json.Marshal(v); err == nil {
				p.Engineers = data
			}
		}
	}
}

// MergedFields returns the extracted field map with the flattened columns
// layered in, the shape the graph synchronizer consumes. Flattened values
// fill gaps in the raw map; the project code always comes from the row.
func (p *Project) MergedFields() map[string]any {
	data := p.RawFields()
	if data == nil {
		data = map[string]any{}
	}

	backfill := func(key, val string) {
		if StringField(data, key) == "" && val != "" {
			data[key] = val
		}
	}
	backfill("project_name", p.ProjectName)
	backfill("corins_id", p.CorinsID)
	backfill("client_name", p.ClientName)
	backfill("contractor_name", p.ContractorName)
	backfill("location", p.Location)
	backfill("field", p.Field)
	backfill("start_date", p.StartDate)
	backfill("end_date", p.EndDate)
	backfill("summary", p.Summary)
	data["project_code"] = p.ProjectCode

	if _, ok := data["work_types"]; !ok && len(p.WorkTypes) > 0 {
		var v any
		if err := json.Unmarshal(p.WorkTypes, &v); err == nil {
			data["work_types"] = v
		}
	}
	if _, ok := data["engineers"]; !ok && len(p.Engineers) > 0 {
		var v any
		if err := json.Unmarshal(p.Engineers, &v); err == nil {
			data["engineers"] = v
		}
	}

	return data
}

func fillString(current string, raw map[string]any, key string) string {
	if current != "" {
		return current
	}
	return StringField(raw, key)
}

// StringField reads a field as a string; non-string scalars are formatted,
// nil and missing values yield "".
func StringField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// NumberField reads a field as an integer amount, accepting JSON numbers and
// numeric strings.
func NumberField(fields map[string]any, key string) (int64, bool) {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		if f, err := t.Float64(); err == nil {
			return int64(f), true
		}
		return 0, false
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, true
		}
		return 0, false
	default:
		return 0, false
	}
}
