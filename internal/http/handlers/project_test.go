package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oka8489/migiude-ai-v3/internal/data/repos/testutil"
	"github.com/oka8489/migiude-ai-v3/internal/domain"
	apperrors "github.com/oka8489/migiude-ai-v3/internal/pkg/errors"
	"github.com/oka8489/migiude-ai-v3/internal/platform/dbctx"
	"github.com/oka8489/migiude-ai-v3/internal/services"
)

type fakeRegistration struct {
	project *domain.Project
	err     error
}

func (f *fakeRegistration) Register(dbc dbctx.Context, input services.RegisterInput) (*domain.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.project, nil
}

func (f *fakeRegistration) Get(dbc dbctx.Context, id uint) (*domain.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.project, nil
}

func (f *fakeRegistration) List(dbc dbctx.Context) ([]*domain.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.Project{f.project}, nil
}

func (f *fakeRegistration) Delete(dbc dbctx.Context, id uint) error {
	return f.err
}

func newProjectRouter(t *testing.T, svc services.RegistrationService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewProjectHandler(testutil.Logger(t), svc)
	r := gin.New()
	r.POST("/api/projects/register", h.Register)
	r.GET("/api/projects/:id", h.Get)
	r.DELETE("/api/projects/:id", h.Delete)
	return r
}

func TestProjectHandlerRegister(t *testing.T) {
	svc := &fakeRegistration{project: &domain.Project{ID: 1, ProjectCode: "R4-01"}}
	r := newProjectRouter(t, svc)

	body := `{"text":"工事名: 道路改良工事","project_type":"past"}`
	req := httptest.NewRequest(http.MethodPost, "/api/projects/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "R4-01") {
		t.Fatalf("response missing project code: %s", w.Body.String())
	}
}

func TestProjectHandlerRegisterMissingText(t *testing.T) {
	r := newProjectRouter(t, &fakeRegistration{})

	req := httptest.NewRequest(http.MethodPost, "/api/projects/register", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestProjectHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", apperrors.ErrEmptyDocument), http.StatusBadRequest},
		{fmt.Errorf("x: %w", apperrors.ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		r := newProjectRouter(t, &fakeRegistration{err: tt.err})

		req := httptest.NewRequest(http.MethodGet, "/api/projects/1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != tt.want {
			t.Fatalf("err %v mapped to %d, want %d", tt.err, w.Code, tt.want)
		}
	}
}

func TestProjectHandlerBadID(t *testing.T) {
	r := newProjectRouter(t, &fakeRegistration{})

	req := httptest.NewRequest(http.MethodDelete, "/api/projects/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
