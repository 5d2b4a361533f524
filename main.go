package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/rook-computer/sketchpad/internal/app"
	"github.com/rook-computer/sketchpad/internal/render"
	"github.com/rook-computer/sketchpad/internal/state"
	"github.com/rook-computer/sketchpad/internal/surface"
	"github.com/rook-computer/sketchpad/internal/web"
)

const envStdioLog = "SKETCHPAD_STDIO_LOG"

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":80")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	// Flags
	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode (permissive CORS); also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	width := flag.Int("width", 800, "drawing surface width in pixels")
	height := flag.Int("height", 600, "drawing surface height in pixels")
	background := flag.String("background", surface.FormatColor(surface.Background), "drawing surface background color; the eraser paints with it")
	debug := flag.Bool("debug", false, "enable debug logging")
	logFile := flag.String("log-file", "./sketchpad-debug.log", "debug log file; - logs to stderr")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	fbDevice := flag.String("fb", "", "mirror the drawing to this framebuffer device (e.g. /dev/fb0)")
	mdns := flag.Bool("mdns", false, "advertise the drawing page over mDNS")
	showQR := flag.Bool("qr", true, "print a QR code of the share URL when stdout is a terminal")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		w, err := openLog(*logFile)
		if err == nil {
			logger = app.NewFileLogger(w)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	bg, err := surface.ParseColor(*background)
	if err != nil {
		fmt.Println("background:", err)
		os.Exit(2)
	}
	if *width <= 0 || *height <= 0 {
		fmt.Println("width and height must be positive")
		os.Exit(2)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := surface.DefaultConfig()
	cfg.Background = bg
	drawing := surface.NewController(surface.NewRGBARaster(*width, *height, bg), cfg)
	drawing.Logger = logger

	store := state.NewStore()

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode, StaticDir: *staticDir})
	server.Logger = logger
	server.Deps = web.APIV1Deps{Drawing: drawing, Status: store, Logger: logger}

	var renderer render.Renderer
	if *fbDevice != "" {
		renderer = render.NewFBRenderer(*fbDevice)
	}

	a := app.New(store, drawing, server, renderer)
	a.Logger = logger
	a.ListenAddr = *listenAddr
	a.MDNS = *mdns

	go announce(processCtx, store, *showQR)

	if err := a.Start(processCtx); err != nil {
		fmt.Println("app start error:", err)
		os.Exit(1)
	}
}

func openLog(path string) (io.Writer, error) {
	if path == "-" {
		return os.Stderr, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// announce prints the share URL once the app is ready, with a QR code when a
// person is likely looking at the terminal.
func announce(ctx context.Context, store *state.Store, showQR bool) {
	snap, ok := waitReady(ctx, store)
	if !ok {
		return
	}
	fmt.Println("Sketchpad ready at", snap.Network.URL)
	if !showQR || !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	qr, err := render.TerminalQRCode(snap.Network.URL)
	if err != nil {
		fmt.Println("qr code error:", err)
		return
	}
	fmt.Print(qr)
}
