package main

import (
	"context"
	"testing"
	"time"

	"github.com/tdewolff/test"

	"github.com/rook-computer/sketchpad/internal/state"
)

func TestWaitReady(t *testing.T) {
	store := state.NewStore()
	go func() {
		time.Sleep(20 * time.Millisecond)
		store.UpdateNetwork(state.NetworkInfo{URL: "http://127.0.0.1/"})
		store.SetPhase(state.READY)
	}()
	snap, ok := waitReady(context.Background(), store)
	test.That(t, ok)
	test.String(t, snap.Network.URL, "http://127.0.0.1/")
}

func TestWaitReadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := waitReady(ctx, state.NewStore())
	test.That(t, !ok)
}
