package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rook-computer/sketchpad/internal/app/screens"
	"github.com/rook-computer/sketchpad/internal/netinfo"
	"github.com/rook-computer/sketchpad/internal/render"
	"github.com/rook-computer/sketchpad/internal/state"
	"github.com/rook-computer/sketchpad/internal/surface"
	"github.com/rook-computer/sketchpad/internal/system"
	"github.com/rook-computer/sketchpad/internal/web"
)

// App wires the drawing surface to its outputs: the web server that hosts the
// drawing page, and optionally a framebuffer mirror and an mDNS announcement.
type App struct {
	Store   *state.Store
	Surface *surface.Controller
	Web     web.Server
	// Render is nil when no framebuffer mirror was requested.
	Render render.Renderer
	Logger Logger

	// ListenAddr is the web server's address, used to build the share URL.
	ListenAddr string
	MDNS       bool
	// DetectIP finds the LAN address for the share URL; defaults to netinfo.OutgoingIP.
	DetectIP func() string
}

func New(store *state.Store, drawing *surface.Controller, webServer web.Server, renderer render.Renderer) *App {
	return &App{Store: store, Surface: drawing, Web: webServer, Render: renderer, Logger: NoopLogger{}}
}

// Start brings every subsystem up and blocks until ctx is cancelled, then
// tears them down in reverse order.
func (app *App) Start(ctx context.Context) error {
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.DetectIP == nil {
		app.DetectIP = netinfo.OutgoingIP
	}
	app.Store.SetPhase(state.BOOTING)

	port, err := netinfo.ListenPort(app.ListenAddr)
	if err != nil {
		return err
	}
	ip := app.DetectIP()
	network := state.NetworkInfo{IP: ip, URL: netinfo.ShareURL(ip, port)}
	app.Store.UpdateNetwork(network)
	app.Logger.Infof("app", "share url %s", network.URL)

	if err := app.Web.Start(ctx); err != nil {
		app.Logger.Errorf("app", "web server start error: %v", err)
		return err
	}
	defer func() {
		if err := app.Web.Stop(); err != nil {
			app.Logger.Errorf("app", "web server stop error: %v", err)
		}
	}()

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup

	if app.Render != nil {
		fb, isFB := app.Render.(*render.FBRenderer)
		if isFB {
			fb.Logger = app.Logger
		}
		if err := app.Render.Start(ctx); err != nil {
			app.Logger.Errorf("app", "renderer start error: %v", err)
			return fmt.Errorf("framebuffer mirror: %w", err)
		}
		defer app.Render.Stop()

		// Keep the kernel console from drawing over the mirror.
		if isFB {
			restore := system.EnterGraphics(app.Logger)
			defer restore()
		}

		app.Render.SetScreen(screens.NewCanvasScreen(app.Surface, app.Logger))
		app.Render.RedrawWithState(app.Store.Snapshot())
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.Render.RunLoop(loopCtx, app.Store)
		}()
	}

	if app.MDNS {
		advertiser, err := netinfo.Advertise(port, nil)
		if err != nil {
			// The share URL and QR code still work without discovery.
			app.Logger.Errorf("app", "mdns advertise error: %v", err)
		} else {
			defer func() { _ = advertiser.Stop() }()
			network.Advertised = true
			app.Store.UpdateNetwork(network)
			app.Logger.Infof("app", "advertising %s on port %d", netinfo.ServiceType, port)
		}
	}

	app.Store.SetPhase(state.READY)
	app.Logger.Infof("app", "ready")

	<-ctx.Done()
	app.Store.SetPhase(state.STOPPING)
	app.Logger.Infof("app", "stopping: %v", ctx.Err())
	// The mirror loop must be gone before the renderer closes the device.
	cancel()
	wg.Wait()
	return nil
}
