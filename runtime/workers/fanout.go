package workers

import (
	"context"
	"log/slog"

	"workflow-lab/contract"
	"workflow-lab/domain/event"
)

// EventFanout broadcasts pipeline events to the registered sinks and to the
// live subscribers held by the registry (the presentation layer).
//
// Best-effort only: no delivery, ordering, durability, or retry guarantees.
// It exists for persistence and observability side effects, not domain
// logic. Safe for concurrent use.
type EventFanout struct {
	log       *slog.Logger
	events    chan event.DomainEvent
	telemetry chan event.DomainEvent
	registry  contract.IRegistry
	sinks     []contract.EventSink
}

func NewEventFanout(log *slog.Logger, events, telemetry chan event.DomainEvent, registry contract.IRegistry) *EventFanout {
	return &EventFanout{log: log, events: events, telemetry: telemetry, registry: registry}
}

func (w *EventFanout) Add(sinks ...contract.EventSink) *EventFanout {
	w.sinks = append(w.sinks, sinks...)
	return w
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping event fanout")
			return nil
		case evt := <-w.events:
			w.fanout(ctx, evt)
			select {
			case w.telemetry <- evt:
			default:
				w.log.Debug("Telemetry event dropped")
			}
		}
	}
}

// fanout delivers one event everywhere. A failing sink is logged and
// skipped; it must not starve the others.
func (w *EventFanout) fanout(ctx context.Context, evt event.DomainEvent) {
	for _, sink := range w.sinks {
		if err := sink.Consume(ctx, evt); err != nil {
			w.log.Warn("Sink rejected event", "session", evt.SessionID(), "error", err)
		}
	}
	if w.registry == nil {
		return
	}
	for _, sink := range w.registry.Sinks() {
		if err := sink.Consume(ctx, evt); err != nil {
			w.log.Warn("Subscriber rejected event", "session", evt.SessionID(), "error", err)
		}
	}
}
