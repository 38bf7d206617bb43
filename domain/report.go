package domain

import (
	"time"

	"github.com/google/uuid"
)

// GeneralWorkflow is the fallback category used when no explicit keyword
// evidence supports a specific workflow type.
const GeneralWorkflow = "general"

type Complexity string

const (
	Simple      Complexity = "simple"
	Moderate    Complexity = "moderate"
	Complex     Complexity = "complex"
	VeryComplex Complexity = "very_complex"
)

type PotentialLevel string

const (
	VeryLow  PotentialLevel = "very_low"
	Low      PotentialLevel = "low"
	Medium   PotentialLevel = "medium"
	High     PotentialLevel = "high"
	VeryHigh PotentialLevel = "very_high"
)

// ScoreLabel maps a bounded automation score to its qualitative level.
func ScoreLabel(score int) PotentialLevel {
	switch {
	case score >= 90:
		return VeryHigh
	case score >= 70:
		return High
	case score >= 50:
		return Medium
	case score >= 30:
		return Low
	default:
		return VeryLow
	}
}

type Approach string

const (
	ApproachMinimal   Approach = "minimal"
	ApproachSelective Approach = "selective"
	ApproachHigh      Approach = "high"
)

// TaskTally accumulates matches for one category over one analysis session.
// Mutated only by the classifier, discarded when the session report is built.
type TaskTally struct {
	Name          string   `json:"name"`
	Frequency     int      `json:"frequency"`
	ConfidenceSum float64  `json:"confidence_sum"`
	Contexts      []string `json:"contexts,omitempty"` // distinct apps seen on matches
}

// AverageConfidence returns the mean category weight over all matches.
func (t TaskTally) AverageConfidence() float64 {
	if t.Frequency == 0 {
		return 0
	}
	return t.ConfidenceSum / float64(t.Frequency)
}

type AppUsage struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Confidence float64 `json:"confidence"`
}

// Assessment is the scorer output. Immutable once produced.
type Assessment struct {
	OverallScore    int            `json:"overall_score"`
	RepetitionScore int            `json:"repetition_score"`
	ComplexityScore int            `json:"complexity_score"`
	FrequencyScore  int            `json:"frequency_score"`
	Level           PotentialLevel `json:"level"`
	Approach        Approach       `json:"recommended_approach"`
}

// Phase is one entry of the setup / main work / completion breakdown.
type Phase struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	EstimatedTime string `json:"estimated_time"`
	Interactions  int    `json:"interactions"`
	Potential     string `json:"potential"`
}

// WorkflowReport is the terminal artifact of one analysis session and the
// atomic persisted unit. The synthesizer guarantees it is structurally valid
// and non-empty even for degenerate evidence.
type WorkflowReport struct {
	ID            uuid.UUID  `json:"id"`
	Session       uuid.UUID  `json:"session"`
	Description   string     `json:"description"`
	WorkflowType  string     `json:"workflow_type"`
	Complexity    Complexity `json:"complexity"`
	Language      string     `json:"language,omitempty"`
	EstimatedTime string     `json:"estimated_time"`

	DetectedTasks []TaskTally `json:"detected_tasks"`
	Applications  []AppUsage  `json:"applications_used,omitempty"`

	Automation              Assessment `json:"automation"`
	Steps                   []string   `json:"steps"`
	Phases                  []Phase    `json:"phases"`
	RepetitiveActions       []string   `json:"repetitive_actions"`
	AutomationOpportunities []string   `json:"automation_opportunities"`
	RecommendedTools        []string   `json:"recommended_tools"`
	Difficulty              string     `json:"implementation_difficulty"`
	TimeSavings             string     `json:"time_savings"`

	Summary   SessionSummary `json:"summary"`
	CreatedAt time.Time      `json:"created_at"`
}
