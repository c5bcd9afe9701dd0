// Package sse writes Server-Sent Event streams.
package sse

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// ErrStreamingUnsupported is returned when the ResponseWriter cannot flush
var ErrStreamingUnsupported = errors.New("streaming unsupported")

// Writer serializes events onto one response. Event and keep-alive writes
// may come from different goroutines, so every write holds the lock.
type Writer struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewWriter sets the SSE headers and returns a writer for w
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Writer{w: w, flusher: flusher}, nil
}

// WriteEvent writes one named event. Multi-line data is split into several
// data: lines as the format requires.
func (s *Writer) WriteEvent(name, id string, data []byte) error {
	var b strings.Builder
	if id != "" {
		fmt.Fprintf(&b, "id: %s\n", id)
	}
	if name != "" {
		fmt.Fprintf(&b, "event: %s\n", name)
	}
	for _, line := range strings.Split(string(data), "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")

	return s.write(b.String())
}

// WriteKeepAlive writes an SSE comment line, which clients ignore
func (s *Writer) WriteKeepAlive() error {
	return s.write(": keepalive\n\n")
}

func (s *Writer) write(frame string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprint(s.w, frame); err != nil {
		return fmt.Errorf("write sse frame: %w", err)
	}
	s.flusher.Flush()
	return nil
}
