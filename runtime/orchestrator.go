package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"workflow-lab/catalog"
	"workflow-lab/classifier"
	"workflow-lab/contract"
	"workflow-lab/domain/event"
	"workflow-lab/loader"
	"workflow-lab/observability"
	"workflow-lab/runtime/workers"
	"workflow-lab/scoring"
	"workflow-lab/synthesis"
)

// Options groups the tunables of one orchestrator instance.
type Options struct {
	NumWorkers      int
	BufferSize      int
	AnalysisTimeout time.Duration
	MetricInterval  time.Duration
	// RecordingsRoot enables the directory scanner when non-empty.
	RecordingsRoot string
	ScanInterval   time.Duration
}

// Orchestrator owns the channels and workers of the analysis pipeline.
// Sessions enter through Submit (or the directory scanner), reports leave
// through the fanout sinks. The catalog is built once and shared read-only.
type Orchestrator struct {
	mu             sync.Mutex
	log            *slog.Logger
	supervisor     contract.ISupervisor
	registry       contract.IRegistry
	catalog        *catalog.Catalog
	monitoring     *observability.MonitoringManager
	opts           Options
	permanentSinks []contract.EventSink

	sessions        chan event.SessionCompleted
	domainEvents    chan event.DomainEvent
	telemetryEvents chan event.DomainEvent
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor, registry contract.IRegistry,
	cat *catalog.Catalog, monitoring *observability.MonitoringManager, opts Options) *Orchestrator {
	return &Orchestrator{
		log:             log,
		supervisor:      supervisor,
		registry:        registry,
		catalog:         cat,
		monitoring:      monitoring,
		opts:            opts,
		sessions:        make(chan event.SessionCompleted, opts.BufferSize),
		domainEvents:    make(chan event.DomainEvent, opts.BufferSize),
		telemetryEvents: make(chan event.DomainEvent, opts.BufferSize),
	}
}

// Submit hands one completed session to the analysis pool. Never blocks the
// caller (typically the UI's recording thread): when the queue is full the
// session is dropped with a warning rather than stalling the recorder.
func (o *Orchestrator) Submit(e event.SessionCompleted) {
	select {
	case o.sessions <- e:
		o.monitoring.SetQueueSize(len(o.sessions))
	default:
		o.log.Warn("Session queue full, dropping session", "session", e.Session)
	}
}

func (o *Orchestrator) RegisterSinks(sinks ...contract.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

func (o *Orchestrator) Subscribe(subscriberID string, sink contract.EventSink) {
	o.registry.Subscribe(subscriberID, sink)
}

func (o *Orchestrator) Unsubscribe(subscriberID string) {
	o.registry.Unsubscribe(subscriberID)
}

// Start prepares all workers and launches the supervisor. The expensive
// part (one trigger automaton per pool worker) happens before anything is
// registered, so a construction error leaves no goroutine behind.
func (o *Orchestrator) Start(ctx context.Context) error {
	scorer := scoring.NewScorer()
	synthesizer := synthesis.NewSynthesizer(o.log)

	pool := make([]contract.Worker, 0, o.opts.NumWorkers)
	for i := 0; i < o.opts.NumWorkers; i++ {
		cls, err := classifier.New(o.catalog, o.log)
		if err != nil {
			return fmt.Errorf("building classifier: %w", err)
		}
		pool = append(pool, workers.NewAnalysisWorker(
			cls, scorer, synthesizer,
			o.sessions, o.domainEvents,
			o.opts.AnalysisTimeout, o.monitoring, o.log,
		))
	}

	o.mu.Lock()
	fanout := workers.NewEventFanout(o.log, o.domainEvents, o.telemetryEvents, o.registry).
		Add(o.permanentSinks...)
	o.mu.Unlock()

	o.supervisor.Add(pool...)
	o.supervisor.Add(fanout)
	o.supervisor.Add(workers.NewTelemetryWorker(o.telemetryEvents, o.log))
	o.supervisor.Add(workers.NewReporterWorker(o.monitoring, o.opts.MetricInterval, o.log))
	o.supervisor.Add(workers.NewHealthWorker(o.monitoring, o.opts.MetricInterval, o.log))

	if o.opts.RecordingsRoot != "" {
		o.supervisor.Add(workers.NewSessionScanner(
			loader.NewSessionLoader(o.log),
			o.opts.RecordingsRoot, o.opts.ScanInterval,
			o.sessions, o.log,
		))
	}

	go o.supervisor.Run(ctx)
	o.log.Info("Orchestrator started", "workers", o.opts.NumWorkers, "buffer", o.opts.BufferSize)
	return nil
}

// Stop cancels the supervised workers. Sessions still in the queue are
// dropped; analysis is idempotent, so nothing is left half-mutated.
func (o *Orchestrator) Stop() {
	o.supervisor.Stop()
}
