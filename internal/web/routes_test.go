package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestDefaultMuxServesEmbeddedUI(t *testing.T) {
	mux := NewDefaultMux("", APIV1Deps{})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	test.T(t, rec.Code, http.StatusOK)
	test.That(t, strings.Contains(rec.Body.String(), "<title>Sketchpad</title>"))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))
	test.T(t, rec.Code, http.StatusOK)
}

func TestStaticDirOverridesUI(t *testing.T) {
	dir := t.TempDir()
	test.Error(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("custom ui"), 0o644))

	rec := httptest.NewRecorder()
	StaticUIHandler(dir).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	test.T(t, rec.Code, http.StatusOK)
	test.String(t, rec.Body.String(), "custom ui")

	rec = httptest.NewRecorder()
	StaticUIHandler(filepath.Join(dir, "missing")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	test.T(t, rec.Code, http.StatusNotFound)
}

func TestDevCORS(t *testing.T) {
	h := WithDevCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/state", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	test.T(t, rec.Code, http.StatusNoContent)
	test.String(t, rec.Header().Get("Access-Control-Allow-Origin"), "http://localhost:5173")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	test.T(t, rec.Code, http.StatusTeapot)
	test.String(t, rec.Header().Get("Access-Control-Allow-Origin"), "")
}

func TestServerConfigFromEnv(t *testing.T) {
	t.Setenv(EnvListenAddr, "")
	t.Setenv(EnvDevMode, "")
	cfg, err := DefaultServerConfigFromEnv(":8080")
	test.Error(t, err)
	test.String(t, cfg.ListenAddr, ":8080")
	test.That(t, !cfg.DevMode)

	t.Setenv(EnvListenAddr, "127.0.0.1:9000")
	t.Setenv(EnvDevMode, "true")
	cfg, err = DefaultServerConfigFromEnv(":8080")
	test.Error(t, err)
	test.String(t, cfg.ListenAddr, "127.0.0.1:9000")
	test.That(t, cfg.DevMode)

	t.Setenv(EnvDevMode, "sometimes")
	_, err = DefaultServerConfigFromEnv(":8080")
	test.That(t, err != nil)
}
