package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"

	"github.com/rook-computer/sketchpad/internal/state"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// FBRenderer mirrors the current screen to a Linux framebuffer. Screens draw
// into an offscreen logical Canvas which is then scaled onto the device.
type FBRenderer struct {
	Device string
	Logger logger
	Debug  bool

	fbDev   *fb.Device
	canvas  *Canvas
	running atomic.Bool

	mu      sync.Mutex
	current Screen
	frame   frameCache
}

var _ Renderer = (*FBRenderer)(nil)

func NewFBRenderer(device string) *FBRenderer {
	if device == "" {
		device = DefaultDevice
	}
	return &FBRenderer{Device: device}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	dev, err := fb.Open(r.Device)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", r.Device, err)
	}
	r.fbDev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}

	canvas, err := NewCanvas(CanvasWidth, CanvasHeight)
	if err != nil {
		dev.Close()
		r.fbDev = nil
		return fmt.Errorf("prepare canvas: %w", err)
	}
	r.canvas = canvas

	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
		r.fbDev = nil
	}
	return nil
}

// SetScreen sets the current logical screen to be drawn.
func (r *FBRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.frame = frameCache{}
	r.mu.Unlock()
}

// RedrawWithState composes and blits a frame when the screen or the state
// changed since the last one.
func (r *FBRenderer) RedrawWithState(snap state.State) {
	if !r.running.Load() || r.fbDev == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.frame.compose(r.canvas, r.current, snap) {
		return
	}
	blitToFB(r.fbDev, r.canvas.Image())
	if r.Logger != nil && r.Debug {
		r.Logger.Infof("fb", "redraw done, version=%d phase=%s", r.frame.version, snap.Phase)
	}
}

// RunLoop checks for changes at ~30 FPS until the context is done.
func (r *FBRenderer) RunLoop(ctx context.Context, store *state.Store) {
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RedrawWithState(store.Snapshot())
		}
	}
}

// frameCache remembers what the last composed frame showed.
type frameCache struct {
	version uint64
	state   state.State
	drawn   bool
}

// compose redraws screen onto canvas unless neither its version nor the state
// moved since the previous frame. It reports whether it drew.
func (f *frameCache) compose(canvas *Canvas, screen Screen, snap state.State) bool {
	if canvas == nil || screen == nil {
		return false
	}
	version := screen.Version()
	if f.drawn && version == f.version && snap == f.state {
		return false
	}
	canvas.FillBackground()
	screen.Draw(canvas, snap)
	*f = frameCache{version: version, state: snap, drawn: true}
	return true
}

// blitToFB copies canvas to the framebuffer via nearest-neighbor scaling.
func blitToFB(dev *fb.Device, canvas *image.RGBA) {
	if dev == nil {
		return
	}
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	cb := canvas.Bounds()
	for y := 0; y < fbHeight; y++ {
		sy := cb.Min.Y + (y*cb.Dy())/fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := cb.Min.X + (x*cb.Dx())/fbWidth
			pixel := canvas.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}
