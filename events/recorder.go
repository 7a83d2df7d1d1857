package events

import (
	"context"
	"sync"
)

// Event is one published message, as kept by Recorder.
type Event struct {
	Key     string
	Payload any
}

// Recorder keeps published events in memory. Tests use it to assert on
// what the ledger emitted.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) PublishJSON(_ context.Context, key string, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Key: key, Payload: v})
	return nil
}

func (r *Recorder) Close() error { return nil }

// Keys returns the routing keys in publish order.
func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, len(r.events))
	for i, e := range r.events {
		keys[i] = e.Key
	}
	return keys
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
