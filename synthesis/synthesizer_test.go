package synthesis

import (
	"log/slog"
	"testing"
	"time"

	"workflow-lab/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func baseInput() Input {
	return Input{
		Session: uuid.MustParse("7f9c24e5-2b61-4b36-9c06-581a3a0c5a31"),
		Tallies: []domain.TaskTally{
			{Name: "excel_operations", Frequency: 12, ConfidenceSum: 10.8, Contexts: []string{"Excel"}},
			{Name: "calculation", Frequency: 3, ConfidenceSum: 2.7},
		},
		Apps:    []domain.AppUsage{{Name: "Excel", Count: 12, Confidence: 1}},
		Summary: domain.SessionSummary{Duration: 240 * time.Second, Interactions: 25},
		Assessment: domain.Assessment{
			OverallScore: 75,
			Level:        domain.High,
			Approach:     domain.ApproachHigh,
		},
		Language:    "en",
		CompletedAt: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	req := require.New(t)
	s := NewSynthesizer(slog.Default())

	first := s.Synthesize(baseInput())
	second := s.Synthesize(baseInput())

	req.Equal(first, second)
	req.Equal(first.ID, second.ID)
	req.Equal(first.Session, second.Session)
	req.NotEqual(uuid.Nil, first.ID)
}

func TestSynthesize_DifferentSessionsGetDifferentIDs(t *testing.T) {
	req := require.New(t)
	s := NewSynthesizer(slog.Default())

	in := baseInput()
	other := baseInput()
	other.Session = uuid.MustParse("0e3fd1ab-4a4b-4f6e-8b0a-02f8b9a94d10")

	req.NotEqual(s.Synthesize(in).ID, s.Synthesize(other).ID)
}

func TestSynthesize_SpreadsheetNarrative(t *testing.T) {
	req := require.New(t)
	s := NewSynthesizer(slog.Default())

	report := s.Synthesize(baseInput())

	req.Equal("excel_operations", report.WorkflowType)
	req.Equal(domain.Complex, report.Complexity) // 25 interactions, 240s
	req.Equal("en", report.Language)
	req.Contains(report.Description, "Excel spreadsheet workflow with 25 interactions")
	req.NotEmpty(report.Steps)
	req.NotEmpty(report.AutomationOpportunities)
	req.NotEmpty(report.RecommendedTools)
	// Complex sessions extend the base step outline.
	req.Contains(report.Steps, "Apply formulas or functions")
	// High frequency tallies are called out explicitly.
	req.Contains(report.RepetitiveActions, "excel_operations (repeated 12 times)")
	req.Equal("medium", report.Difficulty)
	req.Equal("4 minutes", report.EstimatedTime)
}

func TestSynthesize_EmptyTalliesProduceGeneralReport(t *testing.T) {
	req := require.New(t)
	s := NewSynthesizer(slog.Default())

	in := baseInput()
	in.Tallies = nil
	in.Assessment = domain.Assessment{OverallScore: 45, Level: domain.Low, Approach: domain.ApproachSelective}

	report := s.Synthesize(in)

	req.Equal(domain.GeneralWorkflow, report.WorkflowType)
	req.NotEmpty(report.DetectedTasks)
	req.Equal(domain.GeneralWorkflow, report.DetectedTasks[0].Name)
	req.NotEmpty(report.Steps)
	req.NotEmpty(report.Phases)
	req.Equal("easy", report.Difficulty)
}

func TestSynthesize_ComplexityBuckets(t *testing.T) {
	s := NewSynthesizer(slog.Default())

	tests := []struct {
		name    string
		summary domain.SessionSummary
		want    domain.Complexity
	}{
		{"few short interactions", domain.SessionSummary{Duration: 30 * time.Second, Interactions: 5}, domain.Simple},
		{"moderate by interactions", domain.SessionSummary{Duration: 30 * time.Second, Interactions: 12}, domain.Moderate},
		{"moderate by duration", domain.SessionSummary{Duration: 90 * time.Second, Interactions: 5}, domain.Moderate},
		{"complex by interactions", domain.SessionSummary{Duration: 30 * time.Second, Interactions: 25}, domain.Complex},
		{"very complex by interactions", domain.SessionSummary{Duration: 180 * time.Second, Interactions: 35}, domain.VeryComplex},
		{"very complex by duration", domain.SessionSummary{Duration: 400 * time.Second, Interactions: 5}, domain.VeryComplex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			in.Summary = tt.summary
			require.Equal(t, tt.want, s.Synthesize(in).Complexity)
		})
	}
}

func TestSynthesize_PhaseBreakdown(t *testing.T) {
	req := require.New(t)
	s := NewSynthesizer(slog.Default())

	in := baseInput()
	in.Summary = domain.SessionSummary{Duration: 300 * time.Second, Interactions: 30}

	report := s.Synthesize(in)

	req.Len(report.Phases, 3)
	req.Equal("Preparation", report.Phases[0].Name)
	req.Equal("Main Execution", report.Phases[1].Name)
	req.Equal("Completion", report.Phases[2].Name)
	req.Equal("50s", report.Phases[0].EstimatedTime)
	req.Equal("150s", report.Phases[1].EstimatedTime)
	req.Equal(15, report.Phases[1].Interactions)
}

func TestSynthesize_PhasesNeverReportZeroInteractions(t *testing.T) {
	req := require.New(t)
	s := NewSynthesizer(slog.Default())

	in := baseInput()
	in.Summary = domain.SessionSummary{Duration: 5 * time.Second, Interactions: 1}

	for _, phase := range s.Synthesize(in).Phases {
		req.GreaterOrEqual(phase.Interactions, 1)
	}
}

func TestFallback_AlwaysValid(t *testing.T) {
	req := require.New(t)
	s := NewSynthesizer(slog.Default())

	session := uuid.New()
	completed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	summary := domain.SessionSummary{Duration: 50 * time.Second, Interactions: 4}
	assessment := domain.Assessment{OverallScore: 45, Level: domain.Low, Approach: domain.ApproachSelective}

	report := s.Fallback(session, summary, assessment, completed)

	req.Equal(domain.GeneralWorkflow, report.WorkflowType)
	req.Equal(session, report.Session)
	req.Equal(completed, report.CreatedAt)
	req.NotEmpty(report.Steps)
	req.NotEmpty(report.DetectedTasks)
	req.Equal(domain.Simple, report.Complexity)
}

func TestGeneralTemplate_TracksActivityLevel(t *testing.T) {
	req := require.New(t)
	s := NewSynthesizer(slog.Default())

	high := baseInput()
	high.Tallies = nil
	high.Summary = domain.SessionSummary{Duration: 200 * time.Second, Interactions: 40}

	low := baseInput()
	low.Tallies = nil
	low.Summary = domain.SessionSummary{Duration: 20 * time.Second, Interactions: 3}

	req.Contains(s.Synthesize(high).Description, "High-activity")
	req.Contains(s.Synthesize(low).Description, "Basic activity")
}
