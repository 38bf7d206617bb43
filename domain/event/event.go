package event

import (
	"time"

	"workflow-lab/domain"

	"github.com/google/uuid"
)

type DomainEvent interface {
	SessionID() uuid.UUID
}

// SessionCompleted is emitted once the evidence extractor has delivered the
// full batch for a finished recording session.
type SessionCompleted struct {
	Session  uuid.UUID
	Evidence []domain.EvidenceItem
	Summary  domain.SessionSummary
	At       time.Time
}

func (e SessionCompleted) SessionID() uuid.UUID { return e.Session }

// ReportSynthesized carries the finished workflow report to sinks.
type ReportSynthesized struct {
	Session uuid.UUID
	Report  domain.WorkflowReport
	At      time.Time
}

func (e ReportSynthesized) SessionID() uuid.UUID { return e.Session }

// AnalysisDegraded signals that a session fell back to the minimal general
// report (timeout or empty evidence). Telemetry only, never an error.
type AnalysisDegraded struct {
	Session uuid.UUID
	Reason  string
	At      time.Time
}

func (e AnalysisDegraded) SessionID() uuid.UUID { return e.Session }
