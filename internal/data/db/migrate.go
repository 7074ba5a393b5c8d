package db

import (
	types "github.com/oka8489/migiude-ai-v3/internal/domain"
)

func (s *Service) AutoMigrateAll() error {
	return s.db.AutoMigrate(
		&types.Project{},
		&types.DesignDocument{},
	)
}
