package app

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/tdewolff/test"

	"github.com/rook-computer/sketchpad/internal/render"
	"github.com/rook-computer/sketchpad/internal/state"
	"github.com/rook-computer/sketchpad/internal/surface"
)

type fakeServer struct {
	startErr error
	started  chan struct{}
	stopped  bool
}

func (s *fakeServer) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	close(s.started)
	return nil
}

func (s *fakeServer) Stop() error {
	s.stopped = true
	return nil
}

type fakeRenderer struct {
	render.NoopRenderer
	screen render.Screen
	redraw int
}

func (r *fakeRenderer) SetScreen(screen render.Screen)   { r.screen = screen }
func (r *fakeRenderer) RedrawWithState(snap state.State) { r.redraw++ }

func newTestApp(server *fakeServer, renderer render.Renderer) *App {
	ctrl := surface.NewController(surface.NewRGBARaster(20, 20, surface.Background), surface.DefaultConfig())
	a := New(state.NewStore(), ctrl, server, renderer)
	a.ListenAddr = ":8080"
	a.DetectIP = func() string { return "192.168.0.7" }
	return a
}

func TestAppLifecycle(t *testing.T) {
	server := &fakeServer{started: make(chan struct{})}
	renderer := &fakeRenderer{}
	a := newTestApp(server, renderer)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	select {
	case <-server.started:
	case <-time.After(2 * time.Second):
		t.Fatal("web server never started")
	}
	deadline := time.Now().Add(2 * time.Second)
	for a.Store.Snapshot().Phase != state.READY && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	snap := a.Store.Snapshot()
	test.T(t, snap.Phase, state.READY)
	test.String(t, snap.Network.URL, "http://192.168.0.7:8080/")
	test.That(t, renderer.screen != nil)
	test.T(t, renderer.redraw, 1)

	cancel()
	select {
	case err := <-done:
		test.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
	test.T(t, a.Store.Snapshot().Phase, state.STOPPING)
	test.That(t, server.stopped)
}

func TestAppStartErrors(t *testing.T) {
	boom := errors.New("address in use")
	a := newTestApp(&fakeServer{startErr: boom}, nil)
	err := a.Start(context.Background())
	test.That(t, errors.Is(err, boom))

	a = newTestApp(&fakeServer{started: make(chan struct{})}, nil)
	a.ListenAddr = "no-port"
	test.That(t, a.Start(context.Background()) != nil)
}

func TestFileLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	l.Infof("web", "listening on %s", ":8080")
	l.Errorf("surface", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	test.T(t, len(lines), 2)
	test.That(t, regexp.MustCompile(`^\S+ \[INFO\] web: listening on :8080$`).MatchString(lines[0]), lines[0])
	test.That(t, regexp.MustCompile(`^\S+ \[ERROR\] surface: boom$`).MatchString(lines[1]), lines[1])
}
