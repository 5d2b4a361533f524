package main

import (
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tdewolff/test"

	"github.com/rook-computer/sketchpad/internal/surface"
	"github.com/rook-computer/sketchpad/internal/web"
)

func TestScenarios(t *testing.T) {
	control := NewSimControl(300, 200, "")
	for _, name := range scenarioNames() {
		t.Run(name, func(t *testing.T) {
			test.Error(t, control.ApplyScenario(name))
			test.String(t, control.Scenario(), name)
			st := control.Drawing.State()
			test.T(t, st.Tool, surface.ToolBrush)
			test.String(t, st.Color, "#000000")
			test.That(t, !st.Drawing)
		})
	}
	test.That(t, control.ApplyScenario("mural") != nil)
}

func TestDemoScenarioPixels(t *testing.T) {
	control := NewSimControl(50, 20, "demo")
	test.Error(t, control.ApplyScenario(""))
	img := control.Drawing.Snapshot()
	test.T(t, img.RGBAAt(14, 10), color.RGBA{R: 0xFF, A: 0xFF})
	test.T(t, img.RGBAAt(25, 10), surface.Background)
}

func TestSimEndpoints(t *testing.T) {
	control := NewSimControl(60, 40, "palette")
	test.Error(t, control.ApplyScenario(""))
	mux := web.NewDefaultMux("", web.APIV1Deps{Drawing: control.Drawing})
	registerSimEndpoints(mux, control)

	post := func(path, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
		return rec
	}

	rec := post("/sim/faults", `{"detachSurface":true}`)
	test.T(t, rec.Code, http.StatusOK)
	test.That(t, !control.Drawing.Available())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))
	test.T(t, rec.Code, http.StatusServiceUnavailable)

	rec = post("/sim/reset", "")
	test.T(t, rec.Code, http.StatusOK)
	test.That(t, control.Drawing.Available())
	test.String(t, control.Scenario(), "palette")

	rec = post("/sim/scenario/blank", "")
	test.T(t, rec.Code, http.StatusOK)
	test.String(t, control.Scenario(), "blank")

	rec = post("/sim/scenario/unknown", "")
	test.T(t, rec.Code, http.StatusBadRequest)
}
