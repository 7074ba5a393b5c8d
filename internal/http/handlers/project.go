package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oka8489/migiude-ai-v3/internal/http/response"
	apperrors "github.com/oka8489/migiude-ai-v3/internal/pkg/errors"
	"github.com/oka8489/migiude-ai-v3/internal/platform/dbctx"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
	"github.com/oka8489/migiude-ai-v3/internal/services"
)

type ProjectHandler struct {
	log          *logger.Logger
	registration services.RegistrationService
}

func NewProjectHandler(baseLog *logger.Logger, registration services.RegistrationService) *ProjectHandler {
	return &ProjectHandler{
		log:          baseLog.With("handler", "ProjectHandler"),
		registration: registration,
	}
}

type registerProjectRequest struct {
	Text        string `json:"text" binding:"required"`
	ProjectType string `json:"project_type"`
	SourceFile  string `json:"source_file"`
	Graph       *bool  `json:"graph"`
}

func (h *ProjectHandler) Register(c *gin.Context) {
	var req registerProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	project, err := h.registration.Register(dbc, services.RegisterInput{
		Text:          req.Text,
		ProjectType:   req.ProjectType,
		SourceFile:    req.SourceFile,
		GraphOverride: req.Graph,
	})
	if err != nil {
		status, code := classifyServiceError(err)
		h.log.Error("project registration failed", "error", err)
		response.RespondError(c, status, code, err)
		return
	}
	response.RespondCreated(c, project)
}

func (h *ProjectHandler) List(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	rows, err := h.registration.List(dbc)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_projects_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"projects": rows})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	project, err := h.registration.Get(dbc, id)
	if err != nil {
		status, code := classifyServiceError(err)
		response.RespondError(c, status, code, err)
		return
	}
	response.RespondOK(c, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	if err := h.registration.Delete(dbc, id); err != nil {
		status, code := classifyServiceError(err)
		response.RespondError(c, status, code, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return 0, false
	}
	return uint(id), true
}

func classifyServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrEmptyDocument):
		return http.StatusBadRequest, "empty_document"
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
