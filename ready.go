package main

import (
	"context"
	"time"

	"github.com/rook-computer/sketchpad/internal/state"
)

// waitReady polls store until the app reports READY or ctx ends.
func waitReady(ctx context.Context, store *state.Store) (state.State, bool) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if snap := store.Snapshot(); snap.Phase == state.READY {
			return snap, true
		}
		select {
		case <-ctx.Done():
			return state.State{}, false
		case <-ticker.C:
		}
	}
}
