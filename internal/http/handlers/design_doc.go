package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oka8489/migiude-ai-v3/internal/http/response"
	"github.com/oka8489/migiude-ai-v3/internal/platform/dbctx"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
	"github.com/oka8489/migiude-ai-v3/internal/services"
)

type DesignDocHandler struct {
	log        *logger.Logger
	designDocs services.DesignDocService
}

func NewDesignDocHandler(baseLog *logger.Logger, designDocs services.DesignDocService) *DesignDocHandler {
	return &DesignDocHandler{
		log:        baseLog.With("handler", "DesignDocHandler"),
		designDocs: designDocs,
	}
}

type registerDesignDocRequest struct {
	Text       string `json:"text" binding:"required"`
	SourceFile string `json:"source_file"`
}

func (h *DesignDocHandler) Register(c *gin.Context) {
	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req registerDesignDocRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	doc, err := h.designDocs.Register(dbc, services.DesignDocInput{
		ProjectID:  projectID,
		Text:       req.Text,
		SourceFile: req.SourceFile,
	})
	if err != nil {
		status, code := classifyServiceError(err)
		h.log.Error("design document registration failed", "error", err, "project_id", projectID)
		response.RespondError(c, status, code, err)
		return
	}
	response.RespondCreated(c, doc)
}

func (h *DesignDocHandler) ListByProject(c *gin.Context) {
	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	rows, err := h.designDocs.ListByProject(dbc, projectID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_design_docs_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"design_documents": rows})
}

func (h *DesignDocHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	if err := h.designDocs.Delete(dbc, id); err != nil {
		status, code := classifyServiceError(err)
		response.RespondError(c, status, code, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
