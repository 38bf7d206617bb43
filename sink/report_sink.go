// Package sink contains the terminal consumers of the event fanout: report
// persistence and the live pattern projection feed.
package sink

import (
	"context"
	"log/slog"

	"workflow-lab/contract"
	"workflow-lab/domain/event"
)

// ReportSink persists every synthesized report. Storage failures are
// reported to the fanout, not swallowed, so the supervisor log shows them.
type ReportSink struct {
	repository contract.IReportRepository
	log        *slog.Logger
}

func NewReportSink(repository contract.IReportRepository, log *slog.Logger) *ReportSink {
	return &ReportSink{repository: repository, log: log}
}

func (s *ReportSink) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.ReportSynthesized)
	if !ok {
		return nil
	}
	if err := s.repository.Store(evt.Report); err != nil {
		return err
	}
	s.log.Debug("Report persisted", "report", evt.Report.ID, "session", evt.Session)
	return nil
}
