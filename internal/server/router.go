package server

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/oka8489/migiude-ai-v3/internal/http/handlers"
	httpMW "github.com/oka8489/migiude-ai-v3/internal/http/middleware"
)

type RouterConfig struct {
	ProjectHandler    *httpH.ProjectHandler
	DesignDocHandler  *httpH.DesignDocHandler
	DataSourceHandler *httpH.DataSourceHandler
	SettingsHandler   *httpH.SettingsHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Projects
		if cfg.ProjectHandler != nil {
			api.POST("/projects/register", cfg.ProjectHandler.Register)
			api.GET("/projects", cfg.ProjectHandler.List)
			api.GET("/projects/:id", cfg.ProjectHandler.Get)
			api.DELETE("/projects/:id", cfg.ProjectHandler.Delete)
		}

		// Design documents
		if cfg.DesignDocHandler != nil {
			api.POST("/projects/:id/design-documents", cfg.DesignDocHandler.Register)
			api.GET("/projects/:id/design-documents", cfg.DesignDocHandler.ListByProject)
			api.DELETE("/design-documents/:id", cfg.DesignDocHandler.Delete)
		}

		// Data sources
		if cfg.DataSourceHandler != nil {
			api.GET("/data-sources", cfg.DataSourceHandler.List)
			api.GET("/data-sources/:id", cfg.DataSourceHandler.Get)
			api.POST("/data-sources", cfg.DataSourceHandler.Save)
			api.DELETE("/data-sources/:id", cfg.DataSourceHandler.Delete)
		}

		// Settings
		if cfg.SettingsHandler != nil {
			api.GET("/settings/parser", cfg.SettingsHandler.GetParserConfig)
			api.PUT("/settings/parser", cfg.SettingsHandler.SaveParserConfig)
			api.GET("/settings/neo4j", cfg.SettingsHandler.GetNeo4jConfig)
			api.PUT("/settings/neo4j", cfg.SettingsHandler.SaveNeo4jConfig)
			api.GET("/settings/neo4j/status", cfg.SettingsHandler.GraphStatus)
		}
	}

	return r
}
