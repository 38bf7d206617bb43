// Package synthesis assembles classification and scoring output into the
// final workflow report. It is the single guard point for the "always a
// valid, non-empty report" guarantee: upstream stages may return partial or
// degenerate results, the synthesizer never does.
package synthesis

import (
	"fmt"
	"log/slog"
	"time"

	"workflow-lab/domain"

	"github.com/google/uuid"
)

// Input carries everything one synthesis needs. CompletedAt is the session's
// completion time, not the wall clock, so synthesizing twice from the same
// input yields byte-identical reports.
type Input struct {
	Session     uuid.UUID
	Tallies     []domain.TaskTally
	Apps        []domain.AppUsage
	Summary     domain.SessionSummary
	Assessment  domain.Assessment
	Language    string
	CompletedAt time.Time
}

type Synthesizer struct {
	log *slog.Logger
}

func NewSynthesizer(log *slog.Logger) *Synthesizer {
	return &Synthesizer{log: log}
}

// Synthesize builds the workflow report for one finished session.
func (s *Synthesizer) Synthesize(in Input) domain.WorkflowReport {
	tallies := in.Tallies
	if len(tallies) == 0 {
		s.log.Debug("No tallies supplied, substituting general fallback", "session", in.Session)
		tallies = []domain.TaskTally{{
			Name:      domain.GeneralWorkflow,
			Frequency: in.Summary.Interactions,
		}}
	}

	workflowType := pickWorkflowType(tallies)
	complexity := assessComplexity(in.Summary)
	tmpl := templateFor(workflowType, in.Summary.Interactions)

	steps := append([]string{}, tmpl.steps...)
	if complexity == domain.Complex || complexity == domain.VeryComplex {
		steps = append(steps, tmpl.complexSteps...)
	}

	return domain.WorkflowReport{
		ID:            uuid.NewSHA1(in.Session, []byte("workflow-report")),
		Session:       in.Session,
		Description:   tmpl.describe(in.Summary.Interactions),
		WorkflowType:  workflowType,
		Complexity:    complexity,
		Language:      in.Language,
		EstimatedTime: estimatedTime(in.Summary.Duration),

		DetectedTasks: tallies,
		Applications:  in.Apps,

		Automation:              in.Assessment,
		Steps:                   steps,
		Phases:                  buildPhases(in.Summary),
		RepetitiveActions:       repetitiveActions(tmpl, tallies),
		AutomationOpportunities: tmpl.opportunities,
		RecommendedTools:        tmpl.tools,
		Difficulty:              difficulty(in.Assessment.OverallScore),
		TimeSavings:             timeSavings(in.Summary.Duration, tmpl.savingsDivisor),

		Summary:   in.Summary,
		CreatedAt: in.CompletedAt,
	}
}

// Fallback produces the minimal general report used when classification was
// skipped entirely (timeout, abandoned analysis).
func (s *Synthesizer) Fallback(session uuid.UUID, summary domain.SessionSummary, assessment domain.Assessment, completedAt time.Time) domain.WorkflowReport {
	return s.Synthesize(Input{
		Session:     session,
		Summary:     summary,
		Assessment:  assessment,
		CompletedAt: completedAt,
	})
}

// pickWorkflowType selects the category with the highest confidence sum.
// The synthetic general tally carries no confidence, so any real detection
// wins over it.
func pickWorkflowType(tallies []domain.TaskTally) string {
	best := domain.GeneralWorkflow
	bestConfidence := 0.0
	for _, t := range tallies {
		if t.ConfidenceSum > bestConfidence {
			best = t.Name
			bestConfidence = t.ConfidenceSum
		}
	}
	return best
}

// assessComplexity maps the session shape to a qualitative bucket. Either a
// high interaction count or a long duration is enough to raise the bucket.
func assessComplexity(summary domain.SessionSummary) domain.Complexity {
	secs := int(summary.Duration / time.Second)
	switch {
	case summary.Interactions > 30 || secs > 300:
		return domain.VeryComplex
	case summary.Interactions > 20 || secs > 180:
		return domain.Complex
	case summary.Interactions > 10 || secs > 60:
		return domain.Moderate
	default:
		return domain.Simple
	}
}

// buildPhases splits the session into the fixed preparation / main work /
// completion breakdown.
func buildPhases(summary domain.SessionSummary) []domain.Phase {
	secs := int(summary.Duration / time.Second)
	n := summary.Interactions
	return []domain.Phase{
		{
			Name:          "Preparation",
			Description:   "Initial setup and application launch",
			EstimatedTime: fmt.Sprintf("%ds", secs/6),
			Interactions:  max(1, n/6),
			Potential:     "Low",
		},
		{
			Name:          "Main Execution",
			Description:   "Core workflow execution",
			EstimatedTime: fmt.Sprintf("%ds", secs/2),
			Interactions:  max(1, n/2),
			Potential:     "High",
		},
		{
			Name:          "Completion",
			Description:   "Saving results and cleanup",
			EstimatedTime: fmt.Sprintf("%ds", secs/3),
			Interactions:  max(1, n/3),
			Potential:     "Medium",
		},
	}
}

func repetitiveActions(tmpl template, tallies []domain.TaskTally) []string {
	actions := append([]string{}, tmpl.repetitiveActions...)
	for _, t := range tallies {
		if t.Name != domain.GeneralWorkflow && t.Frequency > 1 {
			actions = append(actions, fmt.Sprintf("%s (repeated %d times)", t.Name, t.Frequency))
		}
	}
	return actions
}

func estimatedTime(d time.Duration) string {
	if d > time.Minute {
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
	return "Less than 1 minute"
}

func timeSavings(d time.Duration, divisor int) string {
	if divisor <= 0 || d <= 0 {
		return "Minimal"
	}
	mins := int(d / time.Minute / time.Duration(divisor))
	if mins < 1 {
		return "A few minutes per execution"
	}
	return fmt.Sprintf("%d minutes per execution", mins)
}

func difficulty(score int) string {
	if score >= 70 {
		return "medium"
	}
	return "easy"
}
