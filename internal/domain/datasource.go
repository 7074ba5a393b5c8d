package domain

// Well-known data-source names. Project registration always runs through the
// order-record source; design documents have their own.
const (
	SourceOrderRecord = "コリンズ"
	SourceDesignDoc   = "設計図書"
)

// Field types a schema entry may declare.
const (
	FieldTypeString = "string"
	FieldTypeNumber = "number"
	FieldTypeDate   = "date"
	FieldTypeArray  = "array"
	FieldTypeObject = "object"
)

// SchemaField describes one extraction target. Key is an immutable
// identifier used verbatim as the extraction output key.
type SchemaField struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// RelationalMode controls how much of the extracted field map the relational
// store keeps per row.
const (
	RelationalModeFixed = "fixed" // flattened columns only, raw map dropped
	RelationalModeJSON  = "json"  // minimal columns plus raw map
	RelationalModeBoth  = "both"  // flattened columns plus raw map
)

// PersistencePolicy selects the stores a data source writes to.
type PersistencePolicy struct {
	Relational     bool   `json:"relational"`
	Graph          bool   `json:"graph"`
	Vector         bool   `json:"vector"`
	RelationalMode string `json:"relational_mode"`
}

// ParserConfig is the global extraction-service configuration.
type ParserConfig struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
}

// DataSource is a named document type with its own schema and policy.
type DataSource struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	FileType    string            `json:"file_type"`
	Description string            `json:"description"`
	Schema      []SchemaField     `json:"schema"`
	Parser      ParserConfig      `json:"parser"`
	Policy      PersistencePolicy `json:"policy"`
}
