package web

import (
	"image"
	"image/color"
	"io"

	"github.com/rook-computer/sketchpad/internal/state"
	"github.com/rook-computer/sketchpad/internal/surface"
)

// Drawing is the part of surface.Controller the API drives.
type Drawing interface {
	State() surface.State
	Version() uint64
	SelectTool(tool surface.Tool) error
	SelectColor(c color.Color)
	SelectSize(size float64) error
	Apply(e surface.Event) error
	Clear()
	Snapshot() *image.RGBA
	Export(w io.Writer, format surface.Format) error
	ExportName(format surface.Format) string
}

// StatusStore abstracts the app state used by the status endpoint and the
// event channel's client count.
type StatusStore interface {
	Snapshot() state.State
	AddClient(delta int) int
}

// logger matches the component-tagged logger used across the app.
// It is intentionally tiny so callers can pass existing loggers without adapters.
type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}

type APIV1Deps struct {
	Drawing Drawing
	Status  StatusStore
	Palette []string
	Logger  logger
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Drawing == nil {
		out.Drawing = surface.NewController(nil, surface.DefaultConfig())
	}
	if out.Status == nil {
		out.Status = state.NewStore()
	}
	if out.Palette == nil {
		out.Palette = surface.DefaultPalette
	}
	if out.Logger == nil {
		out.Logger = noopLogger{}
	}
	return out
}
