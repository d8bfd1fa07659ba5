// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package events carries stage activity out of the pipeline through an
// explicit sink instead of ambient global state. Sinks observe a run; they
// never influence it, and a nil or failing sink must not change results.
package events

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status classifies an event for display.
type Status string

const (
	StatusInfo    Status = "info"
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Event is one stage activity record.
type Event struct {
	// Module names the emitting stage (e.g. "discovery", "validation").
	Module string

	// Action is a short description of what happened.
	Action string

	// Status classifies the outcome.
	Status Status

	// Detail carries optional free-form context, truncated by emitters.
	Detail string

	// Time is when the event was emitted.
	Time time.Time
}

// Sink receives stage events.
type Sink interface {
	Emit(e Event)
}

// Emit sends an event to sink, tolerating a nil sink. All stages report
// through this helper so a caller that passes no sink still runs normally.
func Emit(sink Sink, module, action string, status Status, detail string) {
	if sink == nil {
		return
	}
	sink.Emit(Event{
		Module: module,
		Action: action,
		Status: status,
		Detail: detail,
		Time:   time.Now(),
	})
}

// WriterSink prints one status line per event, the format the CLI shows
// during a run.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a sink writing human-readable lines to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Emit writes "[status] module: action (detail)".
func (s *WriterSink) Emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.Detail != "" {
		fmt.Fprintf(s.w, "[%s] %s: %s (%s)\n", e.Status, e.Module, e.Action, e.Detail)
		return
	}
	fmt.Fprintf(s.w, "[%s] %s: %s\n", e.Status, e.Module, e.Action)
}

// ZapSink emits events as structured JSON log entries.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink returns a sink logging through logger.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Emit logs the event at a level matching its status.
func (s *ZapSink) Emit(e Event) {
	fields := []zap.Field{
		zap.String("module", e.Module),
		zap.String("detail", e.Detail),
		zap.Time("at", e.Time),
	}
	switch e.Status {
	case StatusWarning:
		s.logger.Warn(e.Action, fields...)
	case StatusError:
		s.logger.Error(e.Action, fields...)
	default:
		s.logger.Info(e.Action, fields...)
	}
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// Multi fans an event out to several sinks.
type Multi []Sink

func (m Multi) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}

// Truncate shortens detail strings for event payloads.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
