package workers

import (
	"context"
	"log/slog"
	"time"

	"workflow-lab/classifier"
	"workflow-lab/domain"
	"workflow-lab/domain/event"
	"workflow-lab/observability"
	"workflow-lab/scoring"
	"workflow-lab/synthesis"
)

// AnalysisWorker drains completed sessions from the submission channel and
// runs the full classification pipeline for each one. Every session owns its
// tallies and report exclusively; only the immutable catalog is shared, so a
// pool of these workers needs no locking.
//
// Each worker carries its own Classifier because the trigger automaton is
// not guaranteed safe for concurrent searches.
type AnalysisWorker struct {
	classifier  *classifier.Classifier
	scorer      *scoring.Scorer
	synthesizer *synthesis.Synthesizer
	sessions    chan event.SessionCompleted
	events      chan event.DomainEvent
	timeout     time.Duration
	monitoring  *observability.MonitoringManager
	log         *slog.Logger
}

func NewAnalysisWorker(
	cls *classifier.Classifier,
	scorer *scoring.Scorer,
	synthesizer *synthesis.Synthesizer,
	sessions chan event.SessionCompleted,
	events chan event.DomainEvent,
	timeout time.Duration,
	monitoring *observability.MonitoringManager,
	log *slog.Logger,
) *AnalysisWorker {
	return &AnalysisWorker{
		classifier:  cls,
		scorer:      scorer,
		synthesizer: synthesizer,
		sessions:    sessions,
		events:      events,
		timeout:     timeout,
		monitoring:  monitoring,
		log:         log,
	}
}

func (w *AnalysisWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping analysis worker")
			return ctx.Err()
		case evt, ok := <-w.sessions:
			if !ok {
				return nil
			}
			w.monitoring.SetQueueSize(len(w.sessions))
			w.analyze(ctx, evt)
		}
	}
}

// analyze produces exactly one report per session. Classification runs under
// the configured time budget; if it blows the budget the worker substitutes
// the minimal general report instead of surfacing an error.
func (w *AnalysisWorker) analyze(ctx context.Context, evt event.SessionCompleted) {
	started := time.Now()

	resCh := make(chan classifier.Result, 1)
	go func() {
		resCh <- w.classifier.Classify(evt.Evidence)
	}()

	var report domain.WorkflowReport
	degradedReason := ""

	select {
	case res := <-resCh:
		assessment := w.scorer.Score(res.Tallies, res.Apps, evt.Summary)
		report = w.synthesizer.Synthesize(synthesis.Input{
			Session:     evt.Session,
			Tallies:     res.Tallies,
			Apps:        res.Apps,
			Summary:     evt.Summary,
			Assessment:  assessment,
			Language:    res.Language,
			CompletedAt: evt.At,
		})
		if res.Fallback {
			degradedReason = "no category reached the detection threshold"
		}
		w.monitoring.SessionAnalyzed(len(evt.Evidence), res.Skipped, res.Fallback)

	case <-time.After(w.timeout):
		assessment := w.scorer.Score(nil, nil, evt.Summary)
		report = w.synthesizer.Fallback(evt.Session, evt.Summary, assessment, evt.At)
		degradedReason = "classification exceeded its time budget"
		w.monitoring.SessionAnalyzed(len(evt.Evidence), 0, true)

	case <-ctx.Done():
		return
	}

	w.log.Info("Session analyzed",
		"session", evt.Session,
		"workflow_type", report.WorkflowType,
		"score", report.Automation.OverallScore,
		"elapsed", time.Since(started))

	if degradedReason != "" {
		w.emit(ctx, event.AnalysisDegraded{Session: evt.Session, Reason: degradedReason, At: evt.At})
	}
	w.emit(ctx, event.ReportSynthesized{Session: evt.Session, Report: report, At: evt.At})
}

func (w *AnalysisWorker) emit(ctx context.Context, e event.DomainEvent) {
	select {
	case <-ctx.Done():
	case w.events <- e:
	}
}
