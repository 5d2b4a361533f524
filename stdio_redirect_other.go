//go:build !unix

package main

import (
	"fmt"
	"os"
	"time"
)

// redirectStdIO swaps the os.Stdout and os.Stderr handles for path. Unlike the
// Dup2 variant it does not capture runtime-level output such as panics.
func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "--- sketchpad pid %d started %s ---\n", os.Getpid(), time.Now().Format(time.RFC3339)); err != nil {
		_ = f.Close()
		return err
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
