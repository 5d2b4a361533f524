package web

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tdewolff/test"

	"github.com/rook-computer/sketchpad/internal/state"
	"github.com/rook-computer/sketchpad/internal/surface"
)

func newTestAPI(t *testing.T) (http.Handler, *surface.Controller, *state.Store) {
	t.Helper()
	ctrl := surface.NewController(surface.NewRGBARaster(60, 40, surface.Background), surface.DefaultConfig())
	ctrl.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	store := state.NewStore()
	return apiV1Router(APIV1Deps{Drawing: ctrl, Status: store}), ctrl, store
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) surface.State {
	t.Helper()
	var st surface.State
	test.Error(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var e apiError
	test.Error(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestStateEndpoint(t *testing.T) {
	h, _, _ := newTestAPI(t)
	rec := do(h, http.MethodGet, "/state", "")
	test.T(t, rec.Code, http.StatusOK)
	st := decodeState(t, rec)
	test.T(t, st.Tool, surface.ToolBrush)
	test.String(t, st.Color, "#000000")
	test.Float(t, st.Size, 5)
	test.T(t, st.Width, 60)

	rec = do(h, http.MethodPost, "/state", "")
	test.T(t, rec.Code, http.StatusMethodNotAllowed)
	test.String(t, decodeError(t, rec).Error, "method_not_allowed")
}

func TestPaletteEndpoint(t *testing.T) {
	h, _, _ := newTestAPI(t)
	rec := do(h, http.MethodGet, "/palette", "")
	var resp paletteResponse
	test.Error(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	test.T(t, resp.Colors, surface.DefaultPalette)
}

func TestSelectionEndpoints(t *testing.T) {
	h, _, _ := newTestAPI(t)

	st := decodeState(t, do(h, http.MethodPost, "/tool", `{"tool":"eraser"}`))
	test.T(t, st.Tool, surface.ToolEraser)
	st = decodeState(t, do(h, http.MethodPost, "/color", `{"color":"#ff0000"}`))
	test.String(t, st.Color, "#ff0000")
	st = decodeState(t, do(h, http.MethodPost, "/size", `{"size":12.5}`))
	test.Float(t, st.Size, 12.5)

	var tts = []struct {
		path, body string
		code       string
	}{
		{"/tool", `{"tool":"pencil"}`, "invalid_tool"},
		{"/color", `{"color":"blue"}`, "invalid_color"},
		{"/size", `{"size":0}`, "invalid_size"},
		{"/size", `{}`, "invalid_command"},
		{"/size", `{"size":`, "invalid_json"},
	}
	for _, tt := range tts {
		t.Run(tt.path+tt.body, func(t *testing.T) {
			rec := do(h, http.MethodPost, tt.path, tt.body)
			test.T(t, rec.Code, http.StatusBadRequest)
			test.String(t, decodeError(t, rec).Error, tt.code)
		})
	}
}

func TestPointerEndpoint(t *testing.T) {
	h, ctrl, _ := newTestAPI(t)
	_ = decodeState(t, do(h, http.MethodPost, "/color", `{"color":"#ff0000"}`))

	st := decodeState(t, do(h, http.MethodPost, "/pointer", `{"type":"down","clientX":110,"clientY":60,"rectLeft":100,"rectTop":50}`))
	test.That(t, st.Drawing)
	st = decodeState(t, do(h, http.MethodPost, "/pointer", `{"type":"move","clientX":130,"clientY":60,"rectLeft":100,"rectTop":50}`))
	test.T(t, st.Segments, uint64(1))
	st = decodeState(t, do(h, http.MethodPost, "/pointer", `{"type":"up"}`))
	test.That(t, !st.Drawing)

	test.T(t, ctrl.Snapshot().RGBAAt(20, 10), color.RGBA{R: 0xFF, A: 0xFF})

	rec := do(h, http.MethodPost, "/pointer", `{"type":"clear"}`)
	test.T(t, rec.Code, http.StatusBadRequest)
	test.String(t, decodeError(t, rec).Error, "invalid_event")
}

func TestClearEndpoint(t *testing.T) {
	h, ctrl, _ := newTestAPI(t)
	ctrl.PointerDown(surface.Point{X: 5, Y: 5})
	ctrl.PointerMove(surface.Point{X: 30, Y: 5})
	before := ctrl.Version()

	rec := do(h, http.MethodPost, "/clear", "")
	test.T(t, rec.Code, http.StatusOK)
	test.That(t, ctrl.Version() > before)
	test.T(t, ctrl.Snapshot().RGBAAt(15, 5), surface.Background)
}

func TestFrameEndpoint(t *testing.T) {
	h, ctrl, _ := newTestAPI(t)
	rec := do(h, http.MethodGet, "/frame.png", "")
	test.T(t, rec.Code, http.StatusOK)
	test.String(t, rec.Header().Get("Content-Type"), "image/png")
	img, err := png.Decode(rec.Body)
	test.Error(t, err)
	test.T(t, img.Bounds().Dx(), 60)

	etag := rec.Header().Get("ETag")
	req := httptest.NewRequest(http.MethodGet, "/frame.png", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	test.T(t, rec.Code, http.StatusNotModified)

	ctrl.Clear()
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	test.T(t, rec.Code, http.StatusOK)
}

func TestExportEndpoint(t *testing.T) {
	h, _, _ := newTestAPI(t)
	rec := do(h, http.MethodGet, "/export", "")
	test.T(t, rec.Code, http.StatusOK)
	test.String(t, rec.Header().Get("Content-Type"), "image/jpeg")
	test.String(t, rec.Header().Get("Content-Disposition"), `attachment; filename=1700000000000.jpg`)
	img, err := jpeg.Decode(bytes.NewReader(rec.Body.Bytes()))
	test.Error(t, err)
	test.T(t, img.Bounds().Dy(), 40)

	rec = do(h, http.MethodGet, "/export?format=png", "")
	test.String(t, rec.Header().Get("Content-Disposition"), `attachment; filename=1700000000000.png`)

	rec = do(h, http.MethodGet, "/export?format=webp", "")
	test.T(t, rec.Code, http.StatusBadRequest)
	test.String(t, decodeError(t, rec).Error, "invalid_format")
}

func TestSurfaceUnavailableEndpoints(t *testing.T) {
	ctrl := surface.NewController(nil, surface.DefaultConfig())
	h := apiV1Router(APIV1Deps{Drawing: ctrl})

	rec := do(h, http.MethodGet, "/export", "")
	test.T(t, rec.Code, http.StatusServiceUnavailable)
	test.String(t, decodeError(t, rec).Error, "surface_unavailable")

	rec = do(h, http.MethodGet, "/frame.png", "")
	test.T(t, rec.Code, http.StatusServiceUnavailable)

	// drawing commands no-op rather than fail
	rec = do(h, http.MethodPost, "/clear", "")
	test.T(t, rec.Code, http.StatusOK)
}

func TestStatusAndQRCode(t *testing.T) {
	h, _, store := newTestAPI(t)
	rec := do(h, http.MethodGet, "/qr.png", "")
	test.T(t, rec.Code, http.StatusNotFound)

	store.SetPhase(state.READY)
	store.UpdateNetwork(state.NetworkInfo{IP: "10.0.0.5", URL: "http://10.0.0.5:8080/"})
	rec = do(h, http.MethodGet, "/status", "")
	var st state.State
	test.Error(t, json.Unmarshal(rec.Body.Bytes(), &st))
	test.String(t, st.Network.URL, "http://10.0.0.5:8080/")

	rec = do(h, http.MethodGet, "/qr.png", "")
	test.T(t, rec.Code, http.StatusOK)
	_, err := png.Decode(rec.Body)
	test.Error(t, err)
}
