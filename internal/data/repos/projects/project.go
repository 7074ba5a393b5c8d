package projects

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/oka8489/migiude-ai-v3/internal/domain"
	"github.com/oka8489/migiude-ai-v3/internal/platform/dbctx"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
)

type ProjectRepo interface {
	Create(dbc dbctx.Context, project *types.Project) (*types.Project, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Project, error)
	GetAll(dbc dbctx.Context) ([]*types.Project, error)
	// CountByCodePrefix counts projects whose code starts with "<prefix>-".
	CountByCodePrefix(dbc dbctx.Context, prefix string) (int64, error)
	UpdateSyncFlags(dbc dbctx.Context, id uint, savedToGraph, savedToVector *bool) error
	// Delete removes the project and its design documents. Returns whether a
	// row existed.
	Delete(dbc dbctx.Context, id uint) (bool, error)
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	repoLog := baseLog.With("repo", "ProjectRepo")
	return &projectRepo{db: db, log: repoLog}
}

func (r *projectRepo) conn(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *projectRepo) Create(dbc dbctx.Context, project *types.Project) (*types.Project, error) {
	if err := r.conn(dbc).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepo) GetByID(dbc dbctx.Context, id uint) (*types.Project, error) {
	var row types.Project
	if err := r.conn(dbc).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	row.HydrateFromRaw()
	return &row, nil
}

func (r *projectRepo) GetAll(dbc dbctx.Context) ([]*types.Project, error) {
	var rows []*types.Project
	if err := r.conn(dbc).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		row.HydrateFromRaw()
	}
	return rows, nil
}

func (r *projectRepo) CountByCodePrefix(dbc dbctx.Context, prefix string) (int64, error) {
	var count int64
	if err := r.conn(dbc).
		Model(&types.Project{}).
		Where("project_code LIKE ?", prefix+"-%").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *projectRepo) UpdateSyncFlags(dbc dbctx.Context, id uint, savedToGraph, savedToVector *bool) error {
	updates := map[string]any{}
	if savedToGraph != nil {
		updates["saved_to_graph"] = *savedToGraph
	}
	if savedToVector != nil {
		updates["saved_to_vector"] = *savedToVector
	}
	if len(updates) == 0 {
		return nil
	}
	return r.conn(dbc).
		Model(&types.Project{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *projectRepo) Delete(dbc dbctx.Context, id uint) (bool, error) {
	conn := r.conn(dbc)

	if err := conn.Where("project_id = ?", id).Delete(&types.DesignDocument{}).Error; err != nil {
		return false, err
	}

	res := conn.Delete(&types.Project{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
