package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/datatypes"

	"github.com/oka8489/migiude-ai-v3/internal/config"
	"github.com/oka8489/migiude-ai-v3/internal/data/repos/projects"
	"github.com/oka8489/migiude-ai-v3/internal/domain"
	apperrors "github.com/oka8489/migiude-ai-v3/internal/pkg/errors"
	"github.com/oka8489/migiude-ai-v3/internal/platform/dbctx"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
)

// RegisterInput is one registration request. SourceFile, when set, is copied
// into the project's artifact folder. GraphOverride forces the graph mirror
// on or off for this call; nil defers to the source's persistence policy.
type RegisterInput struct {
	Text          string
	ProjectType   string
	SourceFile    string
	GraphOverride *bool
}

// RegistrationService drives the extract → allocate → persist → mirror
// pipeline for order-record documents, and owns project reads and deletes.
type RegistrationService interface {
	Register(dbc dbctx.Context, input RegisterInput) (*domain.Project, error)
	Get(dbc dbctx.Context, id uint) (*domain.Project, error)
	List(dbc dbctx.Context) ([]*domain.Project, error)
	Delete(dbc dbctx.Context, id uint) error
}

type registrationService struct {
	registry  config.Registry
	extractor ExtractionService
	allocator CodeAllocator
	projects  projects.ProjectRepo
	graph     GraphSyncer
	log       *logger.Logger
}

func NewRegistrationService(
	registry config.Registry,
	extractor ExtractionService,
	allocator CodeAllocator,
	projectRepo projects.ProjectRepo,
	graph GraphSyncer,
	baseLog *logger.Logger,
) RegistrationService {
	return &registrationService{
		registry:  registry,
		extractor: extractor,
		allocator: allocator,
		projects:  projectRepo,
		graph:     graph,
		log:       baseLog.With("service", "RegistrationService"),
	}
}

func (s *registrationService) Register(dbc dbctx.Context, input RegisterInput) (*domain.Project, error) {
	policy := s.registry.GetPolicy(domain.SourceOrderRecord)
	if !policy.Relational {
		return nil, fmt.Errorf("register: %w: relational persistence is disabled for %s",
			apperrors.ErrInvalidArgument, domain.SourceOrderRecord)
	}

	projectType := input.ProjectType
	if projectType != domain.ProjectTypePast && projectType != domain.ProjectTypeCurrent {
		projectType = domain.ProjectTypePast
	}

	fields, err := s.extractor.Extract(dbc.Ctx, domain.SourceOrderRecord, input.Text)
	if err != nil {
		return nil, err
	}

	projectName := domain.StringField(fields, "project_name")
	code, err := s.allocator.Allocate(dbc, projectName)
	if err != nil {
		return nil, err
	}

	folderPath := projectFolderPath(projectType, code, projectName)
	if err := ensureFolder(folderPath); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if input.SourceFile != "" {
		destName := orderRecordStem + filepath.Ext(input.SourceFile)
		if _, err := copyIntoFolder(input.SourceFile, folderPath, destName); err != nil {
			s.log.Warn("failed to archive source file", "error", err, "file", input.SourceFile)
		}
	}

	row, err := buildProjectRow(fields, projectType, code, folderPath, policy.RelationalMode)
	if err != nil {
		return nil, err
	}

	saved, err := s.projects.Create(dbc, row)
	if err != nil {
		return nil, fmt.Errorf("register: save project: %w", err)
	}
	s.log.Info("project registered", "id", saved.ID, "code", saved.ProjectCode)

	graphEnabled := policy.Graph
	if input.GraphOverride != nil {
		graphEnabled = *input.GraphOverride
	}
	if graphEnabled {
		ok := s.graph.UpsertProject(dbc.Ctx, saved)
		if !ok {
			s.log.Warn("graph mirror write did not complete", "id", saved.ID)
		}
		if err := s.projects.UpdateSyncFlags(dbc, saved.ID, &ok, nil); err != nil {
			s.log.Warn("failed to record graph sync flag", "id", saved.ID, "error", err)
		} else {
			saved.SavedToGraph = ok
		}
	}

	saved.HydrateFromRaw()
	return saved, nil
}

// buildProjectRow shapes the stored row per relational_mode: "json" keeps the
// raw map with minimal columns, "fixed" keeps flattened columns only, "both"
// keeps both.
func buildProjectRow(fields map[string]any, projectType, code, folderPath, mode string) (*domain.Project, error) {
	row := &domain.Project{
		ProjectType: projectType,
		ProjectCode: code,
		FolderPath:  folderPath,
	}

	if mode != domain.RelationalModeJSON {
		row.CorinsID = domain.StringField(fields, "corins_id")
		row.ProjectName = domain.StringField(fields, "project_name")
		row.StartDate = domain.StringField(fields, "start_date")
		row.EndDate = domain.StringField(fields, "end_date")
		row.Location = domain.StringField(fields, "location")
		row.ClientName = domain.StringField(fields, "client_name")
		row.ContractorName = domain.StringField(fields, "contractor_name")
		row.Field = domain.StringField(fields, "field")
		row.Summary = domain.StringField(fields, "summary")
		if n, ok := domain.NumberField(fields, "contract_amount"); ok {
			row.ContractAmount = &n
		}
		if v, ok := fields["work_types"]; ok && v != nil {
			data, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("register: encode work_types: %w", err)
			}
			row.WorkTypes = datatypes.JSON(data)
		}
		if v, ok := fields["engineers"]; ok && v != nil {
			data, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("register: encode engineers: %w", err)
			}
			row.Engineers = datatypes.JSON(data)
		}
	}

	if mode != domain.RelationalModeFixed {
		data, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("register: encode raw fields: %w", err)
		}
		row.Raw = datatypes.JSON(data)
	}

	return row, nil
}

func (s *registrationService) Get(dbc dbctx.Context, id uint) (*domain.Project, error) {
	row, err := s.projects.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("get project %d: %w", id, apperrors.ErrNotFound)
	}
	return row, nil
}

func (s *registrationService) List(dbc dbctx.Context) ([]*domain.Project, error) {
	rows, err := s.projects.GetAll(dbc)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return rows, nil
}

// Delete removes the relational row (and its design documents), the artifact
// folder, and the graph mirror when one may exist. Graph cleanup is
// best-effort like every other mirror write.
func (s *registrationService) Delete(dbc dbctx.Context, id uint) error {
	row, err := s.projects.GetByID(dbc, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if row == nil {
		return fmt.Errorf("delete project %d: %w", id, apperrors.ErrNotFound)
	}

	removed, err := s.projects.Delete(dbc, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if !removed {
		return fmt.Errorf("delete project %d: %w", id, apperrors.ErrNotFound)
	}

	if row.FolderPath != "" {
		if err := os.RemoveAll(row.FolderPath); err != nil {
			s.log.Warn("failed to remove artifact folder", "path", row.FolderPath, "error", err)
		}
	}

	policy := s.registry.GetPolicy(domain.SourceOrderRecord)
	if policy.Graph || row.SavedToGraph {
		if !s.graph.DeleteProject(dbc.Ctx, id) {
			s.log.Warn("graph mirror delete did not complete", "id", id)
		}
	}

	s.log.Info("project deleted", "id", id, "code", row.ProjectCode)
	return nil
}
