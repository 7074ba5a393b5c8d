package projects

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/oka8489/migiude-ai-v3/internal/domain"
	"github.com/oka8489/migiude-ai-v3/internal/platform/dbctx"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
)

type DesignDocumentRepo interface {
	Create(dbc dbctx.Context, doc *types.DesignDocument) (*types.DesignDocument, error)
	GetByID(dbc dbctx.Context, id uint) (*types.DesignDocument, error)
	GetByProjectID(dbc dbctx.Context, projectID uint) ([]*types.DesignDocument, error)
	GetAll(dbc dbctx.Context) ([]*types.DesignDocument, error)
	Delete(dbc dbctx.Context, id uint) (bool, error)
}

type designDocumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDesignDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DesignDocumentRepo {
	repoLog := baseLog.With("repo", "DesignDocumentRepo")
	return &designDocumentRepo{db: db, log: repoLog}
}

func (r *designDocumentRepo) conn(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *designDocumentRepo) Create(dbc dbctx.Context, doc *types.DesignDocument) (*types.DesignDocument, error) {
	if err := r.conn(dbc).Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *designDocumentRepo) GetByID(dbc dbctx.Context, id uint) (*types.DesignDocument, error) {
	var row types.DesignDocument
	if err := r.conn(dbc).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *designDocumentRepo) GetByProjectID(dbc dbctx.Context, projectID uint) ([]*types.DesignDocument, error) {
	var rows []*types.DesignDocument
	if err := r.conn(dbc).
		Where("project_id = ?", projectID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *designDocumentRepo) GetAll(dbc dbctx.Context) ([]*types.DesignDocument, error) {
	var rows []*types.DesignDocument
	if err := r.conn(dbc).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *designDocumentRepo) Delete(dbc dbctx.Context, id uint) (bool, error) {
	res := r.conn(dbc).Delete(&types.DesignDocument{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
