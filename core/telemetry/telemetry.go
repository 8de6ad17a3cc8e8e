// Package telemetry emits the structured, append-only JSON-lines events
// named in spec §6: leap_create, leap_reject, leap_promote, leap_decay,
// conflict_detected, abstain, and timer events. Consumers are external;
// this package only produces the stream.
package telemetry

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one structured telemetry record.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Sink writes append-only JSON-lines events. The zero value, like
// NewSink(nil), writes nowhere (Emit is a no-op), which keeps telemetry
// optional without nil checks scattered through callers.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
	f  *os.File
}

// NewSink wraps an existing writer (e.g. os.Stdout, a test buffer).
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Open appends to (creating if needed) the file at path.
func Open(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Sink{w: f, f: f}, nil
}

// Close releases the underlying file, if Open was used.
func (s *Sink) Close() error {
	if s.f == nil {
		return nil
	}
	return s.f.Close()
}

// Emit writes one event, tagging it with a fresh UUID and the current
// time. A nil Sink is a safe no-op, so telemetry can be wired optionally.
func (s *Sink) Emit(eventType string, fields map[string]interface{}) {
	if s == nil || s.w == nil {
		return
	}
	ev := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Fields:    fields,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	enc := json.NewEncoder(s.w)
	_ = enc.Encode(ev) // best-effort; telemetry never fails the caller
}

// Timer emits a timer{name,ms} event when the returned func is called,
// typically via defer at the top of a phase; the engine times save, load
// and decay this way.
func (s *Sink) Timer(name string) func() {
	start := time.Now()
	return func() {
		s.Emit("timer", map[string]interface{}{
			"name": name,
			"ms":   float64(time.Since(start).Microseconds()) / 1000.0,
		})
	}
}
