package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/human-rights-mis-api/api/handlers"
	"github.com/linesmerrill/human-rights-mis-api/config"
)

func newTestApp(t *testing.T) *handlers.App {
	a := &handlers.App{Config: config.Config{
		JWTSecret: "test-signing-key",
		MediaDir:  t.TempDir(),
	}}
	a.Router = a.New()
	return a
}

func TestApp_HealthCheck(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"alive":true}`, rr.Body.String())
}

func TestApp_UnknownRoute(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/v1/communities", nil)
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestApp_ProtectedRoutesNeedToken(t *testing.T) {
	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/cases"},
		{"POST", "/api/v1/cases"},
		{"GET", "/api/v1/cases/HR-1"},
		{"PATCH", "/api/v1/cases/HR-1?status=resolved"},
		{"DELETE", "/api/v1/cases/HR-1"},
		{"GET", "/api/v1/cases/HR-1/history"},
		{"GET", "/api/v1/reports"},
		{"PATCH", "/api/v1/reports/IR-1?status=resolved"},
		{"DELETE", "/api/v1/reports/IR-1"},
		{"GET", "/api/v1/reports/IR-1/evidence"},
		{"GET", "/api/v1/victims"},
		{"PUT", "/api/v1/victims/V-1/risk"},
	}
	a := newTestApp(t)
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, nil)
			rr := httptest.NewRecorder()
			a.Router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestApp_TokenRouteIsPublic(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/auth/token", nil)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestApp_ServesMedia(t *testing.T) {
	a := newTestApp(t)
	dir := filepath.Join(a.Config.MediaDir, "case_evidence")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc_scene.txt"), []byte("evidence"), 0o644))

	req := httptest.NewRequest("GET", "/media/case_evidence/abc_scene.txt", nil)
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "evidence", rr.Body.String())
}
