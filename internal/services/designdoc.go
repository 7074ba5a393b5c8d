package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/oka8489/migiude-ai-v3/internal/config"
	"github.com/oka8489/migiude-ai-v3/internal/data/repos/projects"
	"github.com/oka8489/migiude-ai-v3/internal/domain"
	apperrors "github.com/oka8489/migiude-ai-v3/internal/pkg/errors"
	"github.com/oka8489/migiude-ai-v3/internal/platform/dbctx"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
)

// DesignDocInput is one design-document registration request against an
// existing project.
type DesignDocInput struct {
	ProjectID  uint
	Text       string
	SourceFile string
}

// DesignDocService registers design documents under existing projects and
// owns their reads and deletes.
type DesignDocService interface {
	Register(dbc dbctx.Context, input DesignDocInput) (*domain.DesignDocument, error)
	Get(dbc dbctx.Context, id uint) (*domain.DesignDocument, error)
	ListByProject(dbc dbctx.Context, projectID uint) ([]*domain.DesignDocument, error)
	List(dbc dbctx.Context) ([]*domain.DesignDocument, error)
	Delete(dbc dbctx.Context, id uint) error
}

type designDocService struct {
	registry  config.Registry
	extractor ExtractionService
	projects  projects.ProjectRepo
	docs      projects.DesignDocumentRepo
	graph     GraphSyncer
	log       *logger.Logger
}

func NewDesignDocService(
	registry config.Registry,
	extractor ExtractionService,
	projectRepo projects.ProjectRepo,
	docRepo projects.DesignDocumentRepo,
	graph GraphSyncer,
	baseLog *logger.Logger,
) DesignDocService {
	return &designDocService{
		registry:  registry,
		extractor: extractor,
		projects:  projectRepo,
		docs:      docRepo,
		graph:     graph,
		log:       baseLog.With("service", "DesignDocService"),
	}
}

func (s *designDocService) Register(dbc dbctx.Context, input DesignDocInput) (*domain.DesignDocument, error) {
	policy := s.registry.GetPolicy(domain.SourceDesignDoc)
	if !policy.Relational {
		return nil, fmt.Errorf("design doc: %w: relational persistence is disabled for %s",
			apperrors.ErrInvalidArgument, domain.SourceDesignDoc)
	}

	project, err := s.projects.GetByID(dbc, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("design doc: load project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("design doc: project %d: %w", input.ProjectID, apperrors.ErrNotFound)
	}

	fields, err := s.extractor.Extract(dbc.Ctx, domain.SourceDesignDoc, input.Text)
	if err != nil {
		return nil, err
	}

	filePath := ""
	if input.SourceFile != "" && project.FolderPath != "" {
		dest, copyErr := copyDesignDocument(project.FolderPath, input.SourceFile)
		if copyErr != nil {
			s.log.Warn("failed to archive design document file", "error", copyErr, "file", input.SourceFile)
		} else {
			filePath = dest
		}
	}

	row, err := buildDesignDocRow(fields, project.ID, filePath, policy.RelationalMode)
	if err != nil {
		return nil, err
	}

	saved, err := s.docs.Create(dbc, row)
	if err != nil {
		return nil, fmt.Errorf("design doc: save: %w", err)
	}
	s.log.Info("design document registered", "id", saved.ID, "project_id", project.ID)

	if policy.Graph {
		if !s.graph.UpsertDesignDocument(dbc.Ctx, saved) {
			s.log.Warn("graph mirror write did not complete", "design_doc_id", saved.ID)
		}
	}
	return saved, nil
}

func buildDesignDocRow(fields map[string]any, projectID uint, filePath, mode string) (*domain.DesignDocument, error) {
	row := &domain.DesignDocument{
		ProjectID: projectID,
		FilePath:  filePath,
	}

	if mode != domain.RelationalModeJSON {
		row.DocumentTitle = domain.StringField(fields, "document_title")
		row.ProjectName = domain.StringField(fields, "project_name")
		row.ProjectCode = domain.StringField(fields, "project_code")
		row.Location = domain.StringField(fields, "location")
		row.ExecutingOffice = domain.StringField(fields, "executing_office")
		row.BudgetCategory = domain.StringField(fields, "budget_category")
		row.SpecialSpecs = specialSpecsText(fields["special_specs"])
		if n, ok := domain.NumberField(fields, "contract_days"); ok {
			row.ContractDays = &n
		}
		if v, ok := fields["quantities"]; ok && v != nil {
			data, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("design doc: encode quantities: %w", err)
			}
			row.Quantities = datatypes.JSON(data)
		}
	}

	if mode != domain.RelationalModeFixed {
		data, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("design doc: encode raw fields: %w", err)
		}
		row.Raw = datatypes.JSON(data)
	}

	return row, nil
}

// specialSpecsText flattens a special-specs field that came back as a list
// into the newline-joined text the column stores.
func specialSpecsText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		var lines []string
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				lines = append(lines, s)
			}
		}
		return strings.Join(lines, "\n")
	default:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
		return ""
	}
}

func (s *designDocService) Get(dbc dbctx.Context, id uint) (*domain.DesignDocument, error) {
	row, err := s.docs.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("get design doc: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("get design doc %d: %w", id, apperrors.ErrNotFound)
	}
	return row, nil
}

func (s *designDocService) ListByProject(dbc dbctx.Context, projectID uint) ([]*domain.DesignDocument, error) {
	rows, err := s.docs.GetByProjectID(dbc, projectID)
	if err != nil {
		return nil, fmt.Errorf("list design docs: %w", err)
	}
	return rows, nil
}

func (s *designDocService) List(dbc dbctx.Context) ([]*domain.DesignDocument, error) {
	rows, err := s.docs.GetAll(dbc)
	if err != nil {
		return nil, fmt.Errorf("list design docs: %w", err)
	}
	return rows, nil
}

func (s *designDocService) Delete(dbc dbctx.Context, id uint) error {
	removed, err := s.docs.Delete(dbc, id)
	if err != nil {
		return fmt.Errorf("delete design doc: %w", err)
	}
	if !removed {
		return fmt.Errorf("delete design doc %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
