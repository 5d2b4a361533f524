package surface

import (
	"errors"
	"fmt"
)

type EventType string

const (
	EventDown EventType = "down"
	EventMove EventType = "move"
	EventUp   EventType = "up"
)

var ErrUnknownEvent = errors.New("unknown pointer event")

// Event is a pointer sample in page coordinates together with the canvas element's
// on-screen rectangle at the time of the sample.
type Event struct {
	Type       EventType `json:"type"`
	ClientX    float64   `json:"clientX"`
	ClientY    float64   `json:"clientY"`
	RectLeft   float64   `json:"rectLeft"`
	RectTop    float64   `json:"rectTop"`
	RectWidth  float64   `json:"rectWidth,omitempty"`
	RectHeight float64   `json:"rectHeight,omitempty"`
}

// Local converts the event into surface pixels. When the page reports a rectangle
// size, positions are scaled by surface size over displayed size so a CSS-resized
// canvas still lines up.
func (e Event) Local(width, height int) Point {
	p := Point{X: e.ClientX - e.RectLeft, Y: e.ClientY - e.RectTop}
	if e.RectWidth > 0 && width > 0 {
		p.X *= float64(width) / e.RectWidth
	}
	if e.RectHeight > 0 && height > 0 {
		p.Y *= float64(height) / e.RectHeight
	}
	return p
}

// Apply dispatches e to the matching pointer operation. The event is scaled
// against the raster attached at the time it is applied.
func (c *Controller) Apply(e Event) error {
	switch e.Type {
	case EventDown, EventMove, EventUp:
	default:
		return fmt.Errorf("%w %q", ErrUnknownEvent, e.Type)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	var w, h int
	if c.raster != nil {
		b := c.raster.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	switch e.Type {
	case EventDown:
		c.pointerDown(e.Local(w, h))
	case EventMove:
		c.pointerMove(e.Local(w, h))
	case EventUp:
		c.drawing = false
	}
	return nil
}
