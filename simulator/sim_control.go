package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/rook-computer/sketchpad/internal/surface"
)

type SimFaults struct {
	// DetachSurface drops the raster so every drawing operation takes the
	// surface-unavailable path.
	DetachSurface bool `json:"detachSurface"`
}

// SimControl owns the simulator's drawing and lets test tooling reset it,
// preload scenarios and inject faults over HTTP.
type SimControl struct {
	Drawing *surface.Controller

	width, height   int
	startupScenario string

	mu      sync.Mutex
	raster  *surface.RGBARaster
	current string
	faults  SimFaults
}

type stroke struct {
	tool   surface.Tool
	color  string
	size   float64
	points []surface.Point
}

// scenarios are drawings replayed through the controller, so they exercise the
// same path as pointer input from the page.
var scenarios = map[string][]stroke{
	"blank": nil,
	"demo": {
		{tool: surface.ToolBrush, color: "#ff0000", size: 5, points: []surface.Point{{X: 10, Y: 10}, {X: 20, Y: 10}}},
		{tool: surface.ToolEraser, size: 5, points: []surface.Point{{X: 20, Y: 10}, {X: 30, Y: 10}}},
	},
	"palette": {
		{tool: surface.ToolBrush, color: "#000000", size: 8, points: []surface.Point{{X: 40, Y: 40}, {X: 240, Y: 40}}},
		{tool: surface.ToolBrush, color: "#ff0000", size: 8, points: []surface.Point{{X: 40, Y: 80}, {X: 240, Y: 80}}},
		{tool: surface.ToolBrush, color: "#00ff00", size: 8, points: []surface.Point{{X: 40, Y: 120}, {X: 240, Y: 120}}},
		{tool: surface.ToolBrush, color: "#0000ff", size: 8, points: []surface.Point{{X: 40, Y: 160}, {X: 240, Y: 160}}},
		{tool: surface.ToolEraser, size: 20, points: []surface.Point{{X: 140, Y: 20}, {X: 140, Y: 180}}},
	},
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func NewSimControl(width, height int, startupScenario string) *SimControl {
	raster := surface.NewRGBARaster(width, height, surface.Background)
	c := &SimControl{
		Drawing:         surface.NewController(raster, surface.DefaultConfig()),
		width:           width,
		height:          height,
		startupScenario: strings.TrimSpace(startupScenario),
		raster:          raster,
	}
	if c.startupScenario == "" {
		c.startupScenario = "blank"
	}
	return c
}

// ApplyScenario clears the surface, replays the named drawing and restores the
// default selection.
func (c *SimControl) ApplyScenario(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.startupScenario
	}
	strokes, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("unknown scenario %q", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.Drawing
	d.PointerUp()
	d.Clear()
	for _, s := range strokes {
		if err := replay(d, s); err != nil {
			return fmt.Errorf("scenario %s: %w", name, err)
		}
	}
	def := surface.DefaultConfig()
	_ = d.SelectTool(def.Tool)
	d.SelectColor(def.Color)
	_ = d.SelectSize(def.Size)
	c.current = name
	return nil
}

func replay(d *surface.Controller, s stroke) error {
	if err := d.SelectTool(s.tool); err != nil {
		return err
	}
	if s.color != "" {
		col, err := surface.ParseColor(s.color)
		if err != nil {
			return err
		}
		d.SelectColor(col)
	}
	if err := d.SelectSize(s.size); err != nil {
		return err
	}
	if len(s.points) == 0 {
		return nil
	}
	d.PointerDown(s.points[0])
	for _, p := range s.points[1:] {
		d.PointerMove(p)
	}
	d.PointerUp()
	return nil
}

func (c *SimControl) Scenario() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *SimControl) Reset() error {
	c.SetFaults(SimFaults{})
	return c.ApplyScenario(c.startupScenario)
}

func (c *SimControl) Faults() SimFaults {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.faults
}

func (c *SimControl) SetFaults(v SimFaults) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faults = v
	if v.DetachSurface {
		c.Drawing.SetRaster(nil)
	} else {
		c.Drawing.SetRaster(c.raster)
	}
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Reset(); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.Scenario()})
	})

	mux.HandleFunc("/sim/scenario/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		name := strings.TrimPrefix(r.URL.Path, "/sim/scenario/")
		name = strings.Trim(name, "/")
		if err := control.ApplyScenario(name); err != nil {
			writeSimError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "scenario": control.Scenario()})
	})

	mux.HandleFunc("/sim/faults", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, control.Faults())
			return
		case http.MethodPost:
			var patch struct {
				DetachSurface *bool `json:"detachSurface"`
			}
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			current := control.Faults()
			if patch.DetachSurface != nil {
				current.DetachSurface = *patch.DetachSurface
			}
			control.SetFaults(current)
			writeSimJSON(w, http.StatusOK, current)
			return
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
