package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rook-computer/sketchpad/internal/state"
	"github.com/rook-computer/sketchpad/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	scenario := flag.String("scenario", "blank", "initial drawing: "+strings.Join(scenarioNames(), " | "))
	width := flag.Int("width", 800, "drawing surface width in pixels")
	height := flag.Int("height", 600, "drawing surface height in pixels")
	flag.Parse()

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startupScenario := strings.TrimSpace(*scenario)
	if startupScenario == "" {
		startupScenario = "blank"
	}

	control := NewSimControl(*width, *height, startupScenario)
	if err := control.ApplyScenario(startupScenario); err != nil {
		fmt.Println("scenario init error:", err)
		os.Exit(2)
	}

	store := state.NewStore()
	store.UpdateNetwork(state.NetworkInfo{IP: "127.0.0.1", URL: "http://" + displayAddr(*listenAddr) + "/"})
	store.SetPhase(state.READY)

	mux := web.NewDefaultMux(*staticDir, web.APIV1Deps{Drawing: control.Drawing, Status: store})
	registerSimEndpoints(mux, control)

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	server.Handler = mux

	if err := server.Start(processCtx); err != nil {
		fmt.Println("server start error:", err)
		os.Exit(1)
	}

	fmt.Println("Sketchpad simulator listening on", server.Addr())
	fmt.Println("Scenario:", startupScenario)
	fmt.Println("API: http://" + displayAddr(server.Addr()) + "/api/v1/")

	<-processCtx.Done()
	_ = server.Stop()
}

func displayAddr(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if addr == "" {
		return "127.0.0.1:8080"
	}
	return addr
}
