package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/oka8489/migiude-ai-v3/internal/domain"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
	"github.com/oka8489/migiude-ai-v3/internal/platform/neo4jdb"
)

// Registry stores and serves the per-source field schemas, persistence
// policies, and the global parser / graph-store configuration.
type Registry interface {
	ListSources() ([]*domain.DataSource, error)
	GetSourceByID(id string) (*domain.DataSource, error)
	GetSourceByName(name string) (*domain.DataSource, error)
	// GetSchema never fails: it returns the stored schema, a built-in
	// default for the two well-known sources, or an empty schema.
	GetSchema(sourceName string) []domain.SchemaField
	// GetPolicy returns the stored override merged over the default policy.
	GetPolicy(sourceName string) domain.PersistencePolicy
	// SaveSource upserts by id when given, else creates with a generated id.
	// Previously-set policy fields not present in the override are preserved.
	SaveSource(sourceID, name, fileType, description string, schema []domain.SchemaField, policy *PolicyOverride) (string, error)
	DeleteSource(sourceID string) (bool, error)

	GetParserConfig() domain.ParserConfig
	SaveParserConfig(cfg domain.ParserConfig) error

	Neo4jConfig() neo4jdb.Config
	SaveNeo4jConfig(cfg neo4jdb.Config) error
}

// PolicyOverride is a partial persistence policy; nil fields keep whatever
// the stored policy already has.
type PolicyOverride struct {
	Relational     *bool   `json:"relational,omitempty"`
	Graph          *bool   `json:"graph,omitempty"`
	Vector         *bool   `json:"vector,omitempty"`
	RelationalMode *string `json:"relational_mode,omitempty"`
}

func (o *PolicyOverride) applyTo(p domain.PersistencePolicy) domain.PersistencePolicy {
	if o == nil {
		return p
	}
	if o.Relational != nil {
		p.Relational = *o.Relational
	}
	if o.Graph != nil {
		p.Graph = *o.Graph
	}
	if o.Vector != nil {
		p.Vector = *o.Vector
	}
	if o.RelationalMode != nil && *o.RelationalMode != "" {
		p.RelationalMode = *o.RelationalMode
	}
	return p
}

// document is the on-disk shape of the registry file.
type document struct {
	DataSources []*sourceRecord      `json:"data_sources"`
	Parser      *domain.ParserConfig `json:"parser,omitempty"`
	Neo4j       *neo4jRecord         `json:"neo4j_config,omitempty"`
}

type sourceRecord struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	FileType    string               `json:"file_type"`
	Description string               `json:"description"`
	Schema      schemaRecord         `json:"schema"`
	Parser      *domain.ParserConfig `json:"parser,omitempty"`
	Policy      *PolicyOverride      `json:"policy,omitempty"`
}

type schemaRecord struct {
	Fields []domain.SchemaField `json:"fields"`
}

type neo4jRecord struct {
	URI      string `json:"uri"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database,omitempty"`
}

type fileRegistry struct {
	path string
	log  *logger.Logger
	mu   sync.Mutex
}

// NewFileRegistry builds a Registry over a single JSON document at path.
// The file is created lazily; the first read seeds the built-in sources.
func NewFileRegistry(path string, baseLog *logger.Logger) Registry {
	return &fileRegistry{
		path: path,
		log:  baseLog.With("service", "SchemaRegistry"),
	}
}

func (r *fileRegistry) load() *document {
	doc := &document{}
	data, err := os.ReadFile(r.path)
	if err == nil {
		if jsonErr := json.Unmarshal(data, doc); jsonErr != nil {
			r.log.Warn("registry file is malformed, starting from defaults", "path", r.path, "error", jsonErr)
			doc = &document{}
		}
	}
	return doc
}

func (r *fileRegistry) save(doc *document) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("config: create registry dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal registry: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("config: write registry: %w", err)
	}
	return nil
}

// ensureDefaults seeds the two built-in sources so downstream lookups are
// never empty after initialization. Idempotent; runs on every read path.
func (r *fileRegistry) ensureDefaults(doc *document) bool {
	existing := map[string]bool{}
	for _, s := range doc.DataSources {
		existing[s.Name] = true
		if s.ID != "" {
			existing[s.ID] = true
		}
	}

	changed := false
	if !existing[domain.SourceOrderRecord] && !existing[orderRecordSourceID] {
		doc.DataSources = append(doc.DataSources, &sourceRecord{
			ID:          orderRecordSourceID,
			Name:        domain.SourceOrderRecord,
			FileType:    "pdf",
			Description: "公共事業の発注情報（工事発注情報）",
			Schema:      schemaRecord{Fields: append([]domain.SchemaField(nil), DefaultOrderRecordSchema...)},
		})
		changed = true
	}
	if !existing[domain.SourceDesignDoc] && !existing[designDocSourceID] {
		doc.DataSources = append(doc.DataSources, &sourceRecord{
			ID:          designDocSourceID,
			Name:        domain.SourceDesignDoc,
			FileType:    "pdf",
			Description: "設計図書・特記仕様書・設計図面など",
			Schema:      schemaRecord{Fields: append([]domain.SchemaField(nil), DefaultDesignDocSchema...)},
		})
		changed = true
	}
	if doc.Parser == nil {
		cfg := defaultParserConfig()
		doc.Parser = &cfg
		changed = true
	}
	return changed
}

func (r *fileRegistry) loadEnsured() *document {
	doc := r.load()
	if r.ensureDefaults(doc) {
		if err := r.save(doc); err != nil {
			r.log.Warn("failed to persist seeded registry defaults", "error", err)
		}
	}
	return doc
}

func (rec *sourceRecord) toDataSource(globalParser domain.ParserConfig) *domain.DataSource {
	parser := globalParser
	if rec.Parser != nil {
		parser = *rec.Parser
	}
	return &domain.DataSource{
		ID:          rec.ID,
		Name:        rec.Name,
		FileType:    rec.FileType,
		Description: rec.Description,
		Schema:      rec.Schema.Fields,
		Parser:      parser,
		Policy:      rec.Policy.applyTo(defaultPolicy()),
	}
}

func (r *fileRegistry) ListSources() ([]*domain.DataSource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.loadEnsured()
	parser := r.parserFrom(doc)
	out := make([]*domain.DataSource, 0, len(doc.DataSources))
	for _, rec := range doc.DataSources {
		out = append(out, rec.toDataSource(parser))
	}
	return out, nil
}

func (r *fileRegistry) GetSourceByID(id string) (*domain.DataSource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.loadEnsured()
	for _, rec := range doc.DataSources {
		if rec.ID == id {
			return rec.toDataSource(r.parserFrom(doc)), nil
		}
	}
	return nil, nil
}

func (r *fileRegistry) GetSourceByName(name string) (*domain.DataSource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.loadEnsured()
	if rec := findByName(doc, name); rec != nil {
		return rec.toDataSource(r.parserFrom(doc)), nil
	}
	return nil, nil
}

func findByName(doc *document, name string) *sourceRecord {
	for _, rec := range doc.DataSources {
		if rec.Name == name {
			return rec
		}
	}
	// Well-known sources are also reachable by their fixed ids even if
	// renamed.
	fallbackID := ""
	switch name {
	case domain.SourceOrderRecord:
		fallbackID = orderRecordSourceID
	case domain.SourceDesignDoc:
		fallbackID = designDocSourceID
	}
	if fallbackID != "" {
		for _, rec := range doc.DataSources {
			if rec.ID == fallbackID {
				return rec
			}
		}
	}
	return nil
}

func (r *fileRegistry) GetSchema(sourceName string) []domain.SchemaField {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.loadEnsured()
	if rec := findByName(doc, sourceName); rec != nil && len(rec.Schema.Fields) > 0 {
		return rec.Schema.Fields
	}
	switch sourceName {
	case domain.SourceOrderRecord:
		return append([]domain.SchemaField(nil), DefaultOrderRecordSchema...)
	case domain.SourceDesignDoc:
		return append([]domain.SchemaField(nil), DefaultDesignDocSchema...)
	}
	return []domain.SchemaField{}
}

func (r *fileRegistry) GetPolicy(sourceName string) domain.PersistencePolicy {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.loadEnsured()
	if rec := findByName(doc, sourceName); rec != nil {
		return rec.Policy.applyTo(defaultPolicy())
	}
	return defaultPolicy()
}

func (r *fileRegistry) SaveSource(sourceID, name, fileType, description string, schema []domain.SchemaField, policy *PolicyOverride) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.loadEnsured()

	if sourceID != "" {
		for _, rec := range doc.DataSources {
			if rec.ID != sourceID {
				continue
			}
			rec.Name = name
			rec.FileType = fileType
			rec.Description = description
			rec.Schema = schemaRecord{Fields: schema}
			rec.Policy = mergeOverride(rec.Policy, policy)
			if err := r.save(doc); err != nil {
				return "", err
			}
			return sourceID, nil
		}
		// Unknown id falls through to create, matching upsert semantics.
	}

	newID := uuid.NewString()[:8]
	doc.DataSources = append(doc.DataSources, &sourceRecord{
		ID:          newID,
		Name:        name,
		FileType:    fileType,
		Description: description,
		Schema:      schemaRecord{Fields: schema},
		Policy:      policy,
	})
	if err := r.save(doc); err != nil {
		return "", err
	}
	return newID, nil
}

// mergeOverride layers the new override over the stored one so that fields
// the caller did not set keep their previous values.
func mergeOverride(stored, next *PolicyOverride) *PolicyOverride {
	if stored == nil {
		return next
	}
	if next == nil {
		return stored
	}
	merged := *stored
	if next.Relational != nil {
		merged.Relational = next.Relational
	}
	if next.Graph != nil {
		merged.Graph = next.Graph
	}
	if next.Vector != nil {
		merged.Vector = next.Vector
	}
	if next.RelationalMode != nil {
		merged.RelationalMode = next.RelationalMode
	}
	return &merged
}

func (r *fileRegistry) DeleteSource(sourceID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.loadEnsured()
	kept := doc.DataSources[:0]
	removed := false
	for _, rec := range doc.DataSources {
		if rec.ID == sourceID {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	if !removed {
		return false, nil
	}
	doc.DataSources = kept
	if err := r.save(doc); err != nil {
		return false, err
	}
	return true, nil
}

func (r *fileRegistry) parserFrom(doc *document) domain.ParserConfig {
	cfg := defaultParserConfig()
	if doc.Parser != nil {
		if doc.Parser.Model != "" {
			cfg.Model = doc.Parser.Model
		}
		if doc.Parser.MaxTokens > 0 {
			cfg.MaxTokens = doc.Parser.MaxTokens
		}
	}
	return cfg
}

func (r *fileRegistry) GetParserConfig() domain.ParserConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.parserFrom(r.loadEnsured())
}

func (r *fileRegistry) SaveParserConfig(cfg domain.ParserConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.loadEnsured()
	doc.Parser = &cfg
	return r.save(doc)
}

func (r *fileRegistry) Neo4jConfig() neo4jdb.Config {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.loadEnsured()
	if doc.Neo4j == nil {
		return neo4jdb.Config{URI: "bolt://localhost:7687", User: "neo4j"}
	}
	cfg := neo4jdb.Config{
		URI:      doc.Neo4j.URI,
		User:     doc.Neo4j.User,
		Password: doc.Neo4j.Password,
		Database: doc.Neo4j.Database,
	}
	if cfg.URI == "" {
		cfg.URI = "bolt://localhost:7687"
	}
	if cfg.User == "" {
		cfg.User = "neo4j"
	}
	return cfg
}

func (r *fileRegistry) SaveNeo4jConfig(cfg neo4jdb.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.loadEnsured()
	doc.Neo4j = &neo4jRecord{
		URI:      cfg.URI,
		User:     cfg.User,
		Password: cfg.Password,
		Database: cfg.Database,
	}
	return r.save(doc)
}
