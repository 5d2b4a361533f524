package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"
	"time"
)

var (
	// ErrSurfaceUnavailable is reported when the controller has no raster to draw on.
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

	// ErrInvalidSize is returned by SelectSize for zero, negative or non-finite sizes.
	ErrInvalidSize = errors.New("brush size must be a positive finite number")
)

// DefaultSize is the brush width in pixels before any size is selected.
const DefaultSize = 5

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}

// Config holds the initial selection and the surface background.
type Config struct {
	Tool       Tool
	Color      color.RGBA
	Size       float64
	Background color.RGBA
}

// DefaultConfig starts with a black brush of DefaultSize on a white surface.
func DefaultConfig() Config {
	return Config{Tool: ToolBrush, Color: DefaultColor, Size: DefaultSize, Background: Background}
}

// State is a point-in-time copy of the controller's selection and stroke state.
type State struct {
	Tool       Tool    `json:"tool"`
	Color      string  `json:"color"`
	Size       float64 `json:"size"`
	Drawing    bool    `json:"drawing"`
	Segments   uint64  `json:"segments"`
	Version    uint64  `json:"version"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Background string  `json:"background"`
}

// Controller turns pointer events into raster strokes. Every method is safe for
// concurrent use; calls are applied one at a time in the order they acquire the lock.
type Controller struct {
	Logger logger
	Now    func() time.Time // clock for export file names

	mu         sync.Mutex
	raster     Raster
	background color.RGBA
	tool       Tool
	color      color.RGBA
	size       float64
	drawing    bool
	anchor     Point
	segments   uint64
	version    uint64
}

// NewController returns a controller drawing onto raster. A nil raster yields a
// controller whose drawing, clear and export operations only report diagnostics.
func NewController(raster Raster, cfg Config) *Controller {
	if cfg.Size <= 0 || math.IsNaN(cfg.Size) || math.IsInf(cfg.Size, 0) {
		cfg.Size = DefaultSize
	}
	if cfg.Background.A == 0 {
		cfg.Background = Background
	}
	return &Controller{
		Logger:     noopLogger{},
		Now:        time.Now,
		raster:     raster,
		background: opaque(cfg.Background),
		tool:       cfg.Tool,
		color:      opaque(cfg.Color),
		size:       cfg.Size,
	}
}

func (c *Controller) SelectTool(tool Tool) error {
	if tool != ToolBrush && tool != ToolEraser {
		return fmt.Errorf("%w %d", ErrUnknownTool, int(tool))
	}
	c.mu.Lock()
	c.tool = tool
	c.mu.Unlock()
	return nil
}

func (c *Controller) SelectColor(col color.Color) {
	c.mu.Lock()
	c.color = opaque(col)
	c.mu.Unlock()
}

func (c *Controller) SelectSize(size float64) error {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return fmt.Errorf("%w (got %v)", ErrInvalidSize, size)
	}
	c.mu.Lock()
	c.size = size
	c.mu.Unlock()
	return nil
}

// PointerDown starts a stroke anchored at p. Nothing is drawn.
func (c *Controller) PointerDown(p Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pointerDown(p)
}

func (c *Controller) pointerDown(p Point) {
	c.drawing = true
	c.anchor = p
	if c.raster == nil {
		c.unavailable("pointer down")
	}
}

// PointerMove draws a segment from the anchor to p when a stroke is in progress.
func (c *Controller) PointerMove(p Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pointerMove(p)
}

func (c *Controller) pointerMove(p Point) {
	if !c.drawing {
		return
	}
	if c.raster == nil {
		c.unavailable("pointer move")
		return
	}
	c.raster.StrokeSegment(Segment{From: c.anchor, To: p, Color: c.strokeColor(), Width: c.size})
	c.anchor = p
	c.segments++
	c.version++
}

// PointerUp ends the current stroke without drawing.
func (c *Controller) PointerUp() {
	c.mu.Lock()
	c.drawing = false
	c.mu.Unlock()
}

// Clear paints the whole surface with the background color.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.raster == nil {
		c.unavailable("clear")
		return
	}
	c.raster.Fill(c.background)
	c.version++
}

// Export encodes the current surface contents to w.
func (c *Controller) Export(w io.Writer, format Format) error {
	snap := c.Snapshot()
	if snap == nil {
		return ErrSurfaceUnavailable
	}
	if err := format.Encode(w, snap); err != nil {
		if c.Logger != nil {
			c.Logger.Errorf("surface", "export %s failed: %v", format, err)
		}
		return err
	}
	return nil
}

// ExportName is the download file name for an export taken now.
func (c *Controller) ExportName(format Format) string {
	return ExportName(c.Now(), format)
}

// Snapshot copies the raster; nil when the surface is unavailable.
func (c *Controller) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.raster == nil {
		c.unavailable("snapshot")
		return nil
	}
	return c.raster.Snapshot()
}

// SetRaster swaps the drawing surface. A nil raster detaches it; later drawing,
// clear and export calls report ErrSurfaceUnavailable until one is attached.
func (c *Controller) SetRaster(r Raster) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.raster = r
	c.version++
}

func (c *Controller) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raster != nil
}

// Bounds is the raster rectangle; empty when the surface is unavailable.
func (c *Controller) Bounds() image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.raster == nil {
		return image.Rectangle{}
	}
	return c.raster.Bounds()
}

// Version increases every time the raster changes.
func (c *Controller) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := State{
		Tool:       c.tool,
		Color:      FormatColor(c.color),
		Size:       c.size,
		Drawing:    c.drawing,
		Segments:   c.segments,
		Version:    c.version,
		Background: FormatColor(c.background),
	}
	if c.raster != nil {
		b := c.raster.Bounds()
		st.Width, st.Height = b.Dx(), b.Dy()
	}
	return st
}

func (c *Controller) strokeColor() color.RGBA {
	if c.tool == ToolEraser {
		return c.background
	}
	return c.color
}

func (c *Controller) unavailable(op string) {
	if c.Logger == nil {
		return
	}
	c.Logger.Errorf("surface", "%v: %s skipped", ErrSurfaceUnavailable, op)
}
