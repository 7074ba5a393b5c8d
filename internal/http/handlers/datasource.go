package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oka8489/migiude-ai-v3/internal/config"
	"github.com/oka8489/migiude-ai-v3/internal/domain"
	"github.com/oka8489/migiude-ai-v3/internal/http/response"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
)

type DataSourceHandler struct {
	log      *logger.Logger
	registry config.Registry
}

func NewDataSourceHandler(baseLog *logger.Logger, registry config.Registry) *DataSourceHandler {
	return &DataSourceHandler{
		log:      baseLog.With("handler", "DataSourceHandler"),
		registry: registry,
	}
}

func (h *DataSourceHandler) List(c *gin.Context) {
	sources, err := h.registry.ListSources()
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_sources_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"data_sources": sources})
}

func (h *DataSourceHandler) Get(c *gin.Context) {
	source, err := h.registry.GetSourceByID(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "get_source_failed", err)
		return
	}
	if source == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}
	response.RespondOK(c, source)
}

type saveSourceRequest struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name" binding:"required"`
	FileType    string                 `json:"file_type"`
	Description string                 `json:"description"`
	Schema      []domain.SchemaField   `json:"schema"`
	Policy      *config.PolicyOverride `json:"policy"`
}

func (h *DataSourceHandler) Save(c *gin.Context) {
	var req saveSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}

	id, err := h.registry.SaveSource(req.ID, req.Name, req.FileType, req.Description, req.Schema, req.Policy)
	if err != nil {
		h.log.Error("failed to save data source", "error", err, "name", req.Name)
		response.RespondError(c, http.StatusInternalServerError, "save_source_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"id": id})
}

func (h *DataSourceHandler) Delete(c *gin.Context) {
	removed, err := h.registry.DeleteSource(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "delete_source_failed", err)
		return
	}
	if !removed {
		response.RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
