// Package report is the shared reporting sink: the one resource concurrent
// session handlers write to. Sinks guarantee per-line atomicity; ordering
// across sessions is whatever the scheduler produces.
package report

import (
	"fmt"
	"io"
	"sync"
)

// Sink appends one human-readable line. Implementations must be safe for
// concurrent use and must never interleave two lines mid-write.
type Sink interface {
	Emit(line string)
}

// WriterSink serializes lines onto an io.Writer with a mutex, one line per
// Emit, newline appended.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Emit(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, line)
}

// TeeSink fans each line out to every member sink in order.
type TeeSink []Sink

func (t TeeSink) Emit(line string) {
	for _, s := range t {
		s.Emit(line)
	}
}

// FuncSink adapts a function to the Sink interface. The function must be
// concurrency-safe; FuncSink adds no locking of its own.
type FuncSink func(line string)

func (f FuncSink) Emit(line string) {
	f(line)
}
