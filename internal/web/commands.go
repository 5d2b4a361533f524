package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rook-computer/sketchpad/internal/surface"
)

// command is the shared request shape of the HTTP API and the event channel.
// Type selects which of the remaining fields are read.
type command struct {
	Type  string   `json:"type"`
	Tool  string   `json:"tool,omitempty"`
	Color string   `json:"color,omitempty"`
	Size  *float64 `json:"size,omitempty"`

	ClientX    float64 `json:"clientX"`
	ClientY    float64 `json:"clientY"`
	RectLeft   float64 `json:"rectLeft"`
	RectTop    float64 `json:"rectTop"`
	RectWidth  float64 `json:"rectWidth"`
	RectHeight float64 `json:"rectHeight"`
}

var (
	errUnknownCommand = errors.New("unknown command")
	errMissingField   = errors.New("missing field")
)

func (cmd command) event() surface.Event {
	return surface.Event{
		Type:       surface.EventType(cmd.Type),
		ClientX:    cmd.ClientX,
		ClientY:    cmd.ClientY,
		RectLeft:   cmd.RectLeft,
		RectTop:    cmd.RectTop,
		RectWidth:  cmd.RectWidth,
		RectHeight: cmd.RectHeight,
	}
}

// apply runs cmd against d.
func (cmd command) apply(d Drawing) error {
	switch cmd.Type {
	case string(surface.EventDown), string(surface.EventMove), string(surface.EventUp):
		return d.Apply(cmd.event())
	case "tool":
		tool, err := surface.ParseTool(cmd.Tool)
		if err != nil {
			return err
		}
		return d.SelectTool(tool)
	case "color":
		c, err := surface.ParseColor(cmd.Color)
		if err != nil {
			return err
		}
		d.SelectColor(c)
		return nil
	case "size":
		if cmd.Size == nil {
			return fmt.Errorf("%w: size", errMissingField)
		}
		return d.SelectSize(*cmd.Size)
	case "clear":
		d.Clear()
		return nil
	}
	return fmt.Errorf("%w %q", errUnknownCommand, cmd.Type)
}

// commandStatus maps a command error to an HTTP status and API error code.
func commandStatus(err error) (int, string) {
	switch {
	case errors.Is(err, surface.ErrSurfaceUnavailable):
		return http.StatusServiceUnavailable, "surface_unavailable"
	case errors.Is(err, surface.ErrUnknownTool):
		return http.StatusBadRequest, "invalid_tool"
	case errors.Is(err, surface.ErrInvalidSize):
		return http.StatusBadRequest, "invalid_size"
	case errors.Is(err, surface.ErrUnknownEvent):
		return http.StatusBadRequest, "invalid_event"
	case errors.Is(err, surface.ErrUnknownFormat):
		return http.StatusBadRequest, "invalid_format"
	case errors.Is(err, surface.ErrInvalidColor):
		return http.StatusBadRequest, "invalid_color"
	case errors.Is(err, errUnknownCommand), errors.Is(err, errMissingField):
		return http.StatusBadRequest, "invalid_command"
	}
	return http.StatusInternalServerError, "command_failed"
}
