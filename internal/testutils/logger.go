// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package testutils

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// Logger is a logger that writes to a testing.TB and records every message
// it is given, prefixed by its level.
type Logger struct {
	T testing.TB

	mu    sync.Mutex
	lines []string
}

func (l *Logger) record(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, args...))
}

// Infof implements the Logger.Infof interface.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.record("info", format, args...)
	l.T.Logf(format, args...)
}

// Errorf implements the Logger.Errorf interface.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.record("error", format, args...)
	l.T.Logf(format, args...)
}

// Fatalf implements the Logger.Fatalf interface.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.T.Helper()
	l.T.Fatalf(format, args...)
}

// Lines returns the messages recorded so far, one per line.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// String returns the messages recorded so far, joined by newlines.
func (l *Logger) String() string {
	return strings.Join(l.Lines(), "\n")
}
