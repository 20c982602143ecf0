// Package obslog wires up the structured logger shared across the
// EDGAR engine. Components log sparingly and only at pipeline
// boundaries and degradations (missing label linkbase, unknown unit,
// standardization fallback) — not on every fact or node, matching the
// occasional, terse diagnostics the teacher codebase used
// (fmt.Println/log.Printf at phase boundaries only).
package obslog

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
)

// Configure replaces the process-wide logger, e.g. to redirect to a
// file or switch to JSON output for production ingestion jobs.
func Configure(w io.Writer, level zerolog.Level, json bool) {
	mu.Lock()
	defer mu.Unlock()
	if json {
		log = zerolog.New(w).Level(level).With().Timestamp().Logger()
		return
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).Level(level).With().Timestamp().Logger()
}

// For returns a logger scoped to a named component (e.g. "xbrl.loader",
// "htmldoc.section", "stitch").
func For(component string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log.With().Str("component", component).Logger()
}
