// Package projection builds read models from observed events. Projections
// only aggregate; they never emit events or touch storage.
package projection

import (
	"context"
	"sort"
	"sync"
	"time"

	"workflow-lab/domain/event"
)

// PatternStats is the per-workflow-type aggregate shown on the dashboard.
type PatternStats struct {
	WorkflowType string
	Reports      int
	TotalScore   int
	BestScore    int
	LastSeen     time.Time
}

func (s PatternStats) AverageScore() int {
	if s.Reports == 0 {
		return 0
	}
	return s.TotalScore / s.Reports
}

// PatternHistory accumulates synthesized reports into per-type statistics.
// It implements EventSink so it can be registered as a live subscriber.
type PatternHistory struct {
	mu    sync.RWMutex
	stats map[string]PatternStats
}

func NewPatternHistory() *PatternHistory {
	return &PatternHistory{stats: make(map[string]PatternStats)}
}

func (p *PatternHistory) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.ReportSynthesized)
	if !ok {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.stats[evt.Report.WorkflowType]
	s.WorkflowType = evt.Report.WorkflowType
	s.Reports++
	s.TotalScore += evt.Report.Automation.OverallScore
	if evt.Report.Automation.OverallScore > s.BestScore {
		s.BestScore = evt.Report.Automation.OverallScore
	}
	if evt.At.After(s.LastSeen) {
		s.LastSeen = evt.At
	}
	p.stats[evt.Report.WorkflowType] = s
	return nil
}

// Snapshot returns the aggregates sorted by report count, ties broken by
// name so the dashboard order is stable.
func (p *PatternHistory) Snapshot() []PatternStats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]PatternStats, 0, len(p.stats))
	for _, s := range p.stats {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Reports != out[j].Reports {
			return out[i].Reports > out[j].Reports
		}
		return out[i].WorkflowType < out[j].WorkflowType
	})
	return out
}
