package engine

import (
	"fmt"
	"io"
)

// Tracer receives diagnostic events from the packing engines: region
// searches, split decisions, rejected candidates. Tracing is inert by
// default; inject a sink to observe a run.
type Tracer interface {
	Tracef(format string, args ...any)
}

type nopTracer struct{}

func (nopTracer) Tracef(string, ...any) {}

// NopTracer returns a Tracer that discards all events.
func NopTracer() Tracer {
	return nopTracer{}
}

type writerTracer struct {
	w io.Writer
}

// NewWriterTracer returns a Tracer that writes one line per event to w.
func NewWriterTracer(w io.Writer) Tracer {
	return writerTracer{w: w}
}

func (t writerTracer) Tracef(format string, args ...any) {
	fmt.Fprintf(t.w, format+"\n", args...)
}
