package engine

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// IngestEvent is one queued sensory event — a closure that mutates the
// engine on behalf of an external collaborator (camera, audio capture,
// text tokenizer, ...) running on its own goroutine. Collaborators must
// not touch graph structures directly (§5); they hand events through the
// queue instead.
type IngestEvent func(*Engine)

// IngestQueue is the single-consumer queue §5 describes: producers append
// from any goroutine, and DrainIngestQueue empties it synchronously at
// the start of a tick so no event is visible mid-drain.
type IngestQueue struct {
	mu      sync.Mutex
	pending []IngestEvent
}

// Enqueue appends ev. Safe to call from any goroutine.
func (q *IngestQueue) Enqueue(ev IngestEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, ev)
}

func (q *IngestQueue) drain() []IngestEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.pending
	q.pending = nil
	return events
}

// DefaultDrainConcurrency bounds how many queued events run at once.
const DefaultDrainConcurrency = 4

// DrainIngestQueue empties the queue, running up to concurrency events at
// once via errgroup, and joins fully before returning — so a caller that
// drains before think() is guaranteed every queued event's edges are
// visible to that think() call (§5's ordering guarantee), with no event
// left half-applied. concurrency<=0 uses DefaultDrainConcurrency.
func (e *Engine) DrainIngestQueue(ctx context.Context, concurrency int) error {
	events := e.Queue.drain()
	if len(events) == 0 {
		return nil
	}
	if concurrency <= 0 {
		concurrency = DefaultDrainConcurrency
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, ev := range events {
		ev := ev
		g.Go(func() error {
			ev(e)
			return nil
		})
	}
	return g.Wait()
}
