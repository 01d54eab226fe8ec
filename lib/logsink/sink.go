// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logsink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
)

// Levels below slog.LevelDebug for the two most verbose settings.
const (
	LevelTrace = slog.LevelDebug - 4
	LevelAll   = slog.LevelDebug - 8
)

// LevelFromVerbosity maps the integer verbosity scale to a slog level.
func LevelFromVerbosity(verbosity int) slog.Level {
	switch {
	case verbosity < 0:
		return slog.LevelError
	case verbosity == 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	case verbosity == 2:
		return slog.LevelDebug
	case verbosity == 3:
		return LevelTrace
	default:
		return LevelAll
	}
}

// DefaultPath is the destination used when Configure gets an empty
// path: the program name with a .log suffix, in the working directory.
func DefaultPath() string {
	program := "pstore"
	if len(os.Args) > 0 && os.Args[0] != "" {
		program = filepath.Base(os.Args[0])
	}
	return program + ".log"
}

// Sink is a reconfigurable log destination. A Sink is safe for
// concurrent use. Concurrent Configure calls serialize; the last one
// wins.
type Sink struct {
	mu      sync.Mutex // serializes Configure and Close
	level   slog.LevelVar
	console io.Writer
	current atomic.Pointer[destination]

	installDefault bool
	installed      bool
}

// New returns a sink writing to console (os.Stderr when nil) at warn
// level until it is configured.
func New(console io.Writer) *Sink {
	if console == nil {
		console = os.Stderr
	}
	sink := &Sink{console: console}
	sink.level.Set(slog.LevelWarn)
	sink.current.Store(&destination{handler: sink.consoleHandler()})
	return sink
}

// Configure directs records to the file at path, appending, and also to
// the console when echoToConsole is set. An empty path selects
// DefaultPath. Configuring the destination already in use is a no-op.
// The new file is opened before the old destination is released, so a
// failed Configure leaves the previous destination active.
func (s *Sink) Configure(path string, echoToConsole bool) error {
	if path == "" {
		path = DefaultPath()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.current.Load()
	if previous.file != nil && previous.path == path && previous.echo == echoToConsole {
		return nil
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	var handler slog.Handler = slog.NewJSONHandler(file, &slog.HandlerOptions{Level: &s.level})
	if echoToConsole {
		handler = fanoutHandler{handler, s.consoleHandler()}
	}

	s.current.Store(&destination{handler: handler, file: file, path: path, echo: echoToConsole})
	previous.close()

	if s.installDefault && !s.installed {
		slog.SetDefault(s.Logger())
		s.installed = true
	}
	return nil
}

// SetLevel sets the verbosity for records logged from now on.
func (s *Sink) SetLevel(verbosity int) {
	s.level.Set(LevelFromVerbosity(verbosity))
}

// Level returns the current minimum level.
func (s *Sink) Level() slog.Level {
	return s.level.Level()
}

// Path returns the file currently written, or "" before Configure.
func (s *Sink) Path() string {
	return s.current.Load().path
}

// Logger returns a logger that writes to whatever destination the sink
// holds at the time of each record.
func (s *Sink) Logger() *slog.Logger {
	return slog.New(&sinkHandler{sink: s})
}

// Close releases the log file and returns the sink to its
// unconfigured console destination. The level is kept.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.current.Swap(&destination{handler: s.consoleHandler()})
	return previous.close()
}

// consoleHandler follows the terminal convention of the pstore tool:
// text for a terminal, JSON otherwise.
func (s *Sink) consoleHandler() slog.Handler {
	options := &slog.HandlerOptions{Level: &s.level}
	if file, ok := s.console.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return slog.NewTextHandler(s.console, options)
	}
	return slog.NewJSONHandler(s.console, options)
}

// destination is one generation of sink output. Records hold the read
// lock while writing so close never races a write in progress.
type destination struct {
	handler slog.Handler
	file    *os.File
	path    string
	echo    bool

	mu     sync.RWMutex
	closed bool
}

func (d *destination) close() error {
	if d.file == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return d.file.Close()
}

// sinkHandler resolves the sink's current destination per record and
// replays its WithAttrs/WithGroup chain onto it.
type sinkHandler struct {
	sink   *Sink
	chain  []func(slog.Handler) slog.Handler
	cached atomic.Pointer[derivedHandler]
}

type derivedHandler struct {
	base    *destination
	handler slog.Handler
}

func (h *sinkHandler) resolve() (*destination, slog.Handler) {
	base := h.sink.current.Load()
	if cached := h.cached.Load(); cached != nil && cached.base == base {
		return base, cached.handler
	}
	handler := base.handler
	for _, apply := range h.chain {
		handler = apply(handler)
	}
	h.cached.Store(&derivedHandler{base: base, handler: handler})
	return base, handler
}

func (h *sinkHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.sink.level.Level()
}

func (h *sinkHandler) Handle(ctx context.Context, record slog.Record) error {
	// A destination is closed only after its replacement is stored, so
	// a record that loses the race resolves to the replacement.
	for {
		base, handler := h.resolve()
		base.mu.RLock()
		if !base.closed {
			err := handler.Handle(ctx, record)
			base.mu.RUnlock()
			return err
		}
		base.mu.RUnlock()
	}
}

func (h *sinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(handler slog.Handler) slog.Handler { return handler.WithAttrs(attrs) })
}

func (h *sinkHandler) WithGroup(name string) slog.Handler {
	return h.with(func(handler slog.Handler) slog.Handler { return handler.WithGroup(name) })
}

func (h *sinkHandler) with(apply func(slog.Handler) slog.Handler) slog.Handler {
	chain := make([]func(slog.Handler) slog.Handler, len(h.chain), len(h.chain)+1)
	copy(chain, h.chain)
	return &sinkHandler{sink: h.sink, chain: append(chain, apply)}
}

// fanoutHandler sends each record to every handler enabled for its
// level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
