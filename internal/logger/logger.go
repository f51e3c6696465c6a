// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger provides verbose diagnostics for the camera-export CLI.
// Lines go to stderr only when --verbose is set, so the progress output on
// stdout is the same with or without it.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type state struct {
	mu      sync.Mutex
	verbose bool
	out     io.Writer
}

var std = &state{out: os.Stderr}

// SetVerbose turns diagnostics on or off.
func SetVerbose(v bool) {
	std.mu.Lock()
	std.verbose = v
	std.mu.Unlock()
}

// SetOutput replaces the diagnostics writer; tests use it to capture lines.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	std.out = w
	std.mu.Unlock()
}

func (s *state) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.verbose {
		fmt.Fprintf(s.out, format, args...)
	}
}

// Debug logs per-camera detail.
func Debug(format string, args ...any) { std.printf("[DEBUG] "+format+"\n", args...) }

// Info logs stage progress.
func Info(format string, args ...any) { std.printf("[INFO] "+format+"\n", args...) }

// Warn logs a skipped camera entry.
func Warn(format string, args ...any) { std.printf("[WARN] "+format+"\n", args...) }

// Section marks the start of a stage.
func Section(name string) { std.printf("\n=== %s ===\n", name) }
