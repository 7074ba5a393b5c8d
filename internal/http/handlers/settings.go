package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oka8489/migiude-ai-v3/internal/config"
	"github.com/oka8489/migiude-ai-v3/internal/domain"
	"github.com/oka8489/migiude-ai-v3/internal/http/response"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
	"github.com/oka8489/migiude-ai-v3/internal/platform/neo4jdb"
	"github.com/oka8489/migiude-ai-v3/internal/services"
)

// SettingsHandler serves the parser and graph-store configuration stored in
// the registry document.
type SettingsHandler struct {
	log      *logger.Logger
	registry config.Registry
	graph    services.GraphSyncer
}

func NewSettingsHandler(baseLog *logger.Logger, registry config.Registry, graph services.GraphSyncer) *SettingsHandler {
	return &SettingsHandler{
		log:      baseLog.With("handler", "SettingsHandler"),
		registry: registry,
		graph:    graph,
	}
}

func (h *SettingsHandler) GetParserConfig(c *gin.Context) {
	response.RespondOK(c, h.registry.GetParserConfig())
}

func (h *SettingsHandler) SaveParserConfig(c *gin.Context) {
	var cfg domain.ParserConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	if cfg.Model == "" || cfg.MaxTokens <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_parser_config", nil)
		return
	}
	if err := h.registry.SaveParserConfig(cfg); err != nil {
		response.RespondError(c, http.StatusInternalServerError, "save_parser_config_failed", err)
		return
	}
	response.RespondOK(c, cfg)
}

// GetNeo4jConfig never echoes the stored password back.
func (h *SettingsHandler) GetNeo4jConfig(c *gin.Context) {
	cfg := h.registry.Neo4jConfig()
	response.RespondOK(c, gin.H{
		"uri":          cfg.URI,
		"user":         cfg.User,
		"database":     cfg.Database,
		"has_password": cfg.Password != "",
	})
}

func (h *SettingsHandler) SaveNeo4jConfig(c *gin.Context) {
	var cfg neo4jdb.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	if err := h.registry.SaveNeo4jConfig(cfg); err != nil {
		response.RespondError(c, http.StatusInternalServerError, "save_neo4j_config_failed", err)
		return
	}
	h.log.Info("graph store configuration updated", "uri", cfg.URI)
	response.RespondOK(c, gin.H{"saved": true})
}

// GraphStatus reports whether the graph store is reachable right now. A
// restart picks up config changes; this probes the running client.
func (h *SettingsHandler) GraphStatus(c *gin.Context) {
	response.RespondOK(c, gin.H{"available": h.graph.Available(c.Request.Context())})
}
