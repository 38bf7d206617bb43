package workers

import (
	"context"
	"log/slog"

	"workflow-lab/domain/event"
)

// TelemetryWorker drains the best-effort telemetry channel so it never
// backs up, and surfaces degraded analyses in the logs.
type TelemetryWorker struct {
	events chan event.DomainEvent
	log    *slog.Logger
}

func NewTelemetryWorker(events chan event.DomainEvent, log *slog.Logger) *TelemetryWorker {
	return &TelemetryWorker{events: events, log: log}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt := <-w.events:
			switch e := evt.(type) {
			case event.AnalysisDegraded:
				w.log.Warn("Analysis degraded to fallback report", "session", e.Session, "reason", e.Reason)
			case event.ReportSynthesized:
				w.log.Debug("Report synthesized",
					"session", e.Session,
					"workflow_type", e.Report.WorkflowType,
					"score", e.Report.Automation.OverallScore)
			}
		}
	}
}
