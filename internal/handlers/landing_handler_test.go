package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
)

type fakeLandingService struct {
	modules []models.ModuleSummary
	err     error
}

func (f *fakeLandingService) ListInstalledModules(_ context.Context) ([]models.ModuleSummary, error) {
	return f.modules, f.err
}

func TestLandingModulesDegradesToEmptyList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &LandingHandler{landing: &fakeLandingService{err: errors.New("registry down")}}
	r := gin.New()
	r.GET("/landing/modules", h.GetModules)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/landing/modules", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, registry trouble must not surface as an error", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestLandingRedirects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &LandingHandler{}
	r := gin.New()
	r.GET("/web", h.RedirectToLanding)
	r.GET("/web/redirect", h.RedirectToLanding)

	for _, path := range []string{"/web", "/web/redirect"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusFound {
			t.Errorf("%s status = %d, want 302", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/landing" {
			t.Errorf("%s location = %q, want /landing", path, loc)
		}
	}
}
