// Package runtime wires the analysis pipeline together: session intake,
// the supervised worker pool, event propagation, and live subscribers.
// It contains no classification or scoring rules of its own.
package runtime

import (
	"log/slog"
	"sync"

	"workflow-lab/contract"
)

// Registry tracks presentation-layer subscribers. The dashboard registers a
// sink here to receive reports as soon as they are synthesized.
type Registry struct {
	mu          sync.RWMutex
	log         *slog.Logger
	subscribers map[string]contract.EventSink
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{log: log, subscribers: make(map[string]contract.EventSink)}
}

func (r *Registry) Subscribe(subscriberID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subscribers[subscriberID]; ok {
		r.log.Debug("Subscriber replaced", "id", subscriberID)
	}
	r.subscribers[subscriberID] = sink
}

func (r *Registry) Unsubscribe(subscriberID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subscribers, subscriberID)
}

func (r *Registry) Sinks() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sinks := make([]contract.EventSink, 0, len(r.subscribers))
	for _, sink := range r.subscribers {
		sinks = append(sinks, sink)
	}
	return sinks
}
