// Package scoring turns category tallies and the session shape into a
// bounded automation assessment. The formula is deliberately heuristic:
// every breakpoint lives in an ordered rule table, not in branching code.
package scoring

import (
	"time"

	"workflow-lab/domain"
)

// bonusRule awards Bonus when the measured value is at least Threshold.
// Tables are ordered highest threshold first and evaluated by first match,
// which keeps every bonus monotonically non-decreasing in its input.
type bonusRule struct {
	Threshold int
	Bonus     int
}

var activityBonuses = []bonusRule{
	{Threshold: 31, Bonus: 40},
	{Threshold: 21, Bonus: 30},
	{Threshold: 11, Bonus: 20},
	{Threshold: 0, Bonus: 10},
}

var durationBonuses = []bonusRule{
	{Threshold: 301, Bonus: 20},
	{Threshold: 181, Bonus: 15},
	{Threshold: 61, Bonus: 10},
	{Threshold: 0, Bonus: 5},
}

func lookup(rules []bonusRule, value int) int {
	for _, r := range rules {
		if value >= r.Threshold {
			return r.Bonus
		}
	}
	return 0
}

const (
	generalBase = 30
	// Specific detections start at detectedBase and earn up to
	// detectedSpan more depending on the category weight.
	detectedBase = 45
	detectedSpan = 15

	// The overall score never asserts certainty in either direction.
	scoreFloor   = 10
	scoreCeiling = 85

	selectiveThreshold = 40
	highThreshold      = 70
)

type Scorer struct{}

func NewScorer() *Scorer { return &Scorer{} }

// Score derives the automation assessment for one session. Deterministic,
// no randomness; identical inputs always produce identical assessments.
func (s *Scorer) Score(tallies []domain.TaskTally, apps []domain.AppUsage, summary domain.SessionSummary) domain.Assessment {
	base := generalBase
	if top, ok := topDetected(tallies); ok {
		weight := top.AverageConfidence()
		base = detectedBase + int(weight*detectedSpan)
	}

	overall := base +
		lookup(activityBonuses, summary.Interactions) +
		lookup(durationBonuses, int(summary.Duration/time.Second))
	overall = clamp(overall, scoreFloor, scoreCeiling)

	return domain.Assessment{
		OverallScore:    overall,
		RepetitionScore: repetitionScore(tallies, summary),
		ComplexityScore: complexityScore(tallies, apps),
		FrequencyScore:  frequencyScore(summary),
		Level:           domain.ScoreLabel(overall),
		Approach:        approach(overall),
	}
}

// topDetected returns the strongest specific tally, ignoring the synthetic
// general fallback which carries no confidence.
func topDetected(tallies []domain.TaskTally) (domain.TaskTally, bool) {
	var best domain.TaskTally
	found := false
	for _, t := range tallies {
		if t.Name == domain.GeneralWorkflow || t.ConfidenceSum == 0 {
			continue
		}
		if !found || t.ConfidenceSum > best.ConfidenceSum {
			best = t
			found = true
		}
	}
	return best, found
}

// repetitionScore grows with how often the single most frequent category
// recurs relative to the session's interaction count.
func repetitionScore(tallies []domain.TaskTally, summary domain.SessionSummary) int {
	if summary.Interactions == 0 {
		return 0
	}
	maxFreq := 0
	for _, t := range tallies {
		if t.Frequency > maxFreq {
			maxFreq = t.Frequency
		}
	}
	return clamp(maxFreq*200/summary.Interactions, 0, 100)
}

// complexityScore grows with the variety of detected categories and
// applications.
func complexityScore(tallies []domain.TaskTally, apps []domain.AppUsage) int {
	distinct := 0
	for _, t := range tallies {
		if t.Name != domain.GeneralWorkflow {
			distinct++
		}
	}
	return clamp(distinct*20+len(apps)*10, 0, 100)
}

func frequencyScore(summary domain.SessionSummary) int {
	return clamp(int(summary.ActivityRate()*200), 0, 100)
}

func approach(score int) domain.Approach {
	switch {
	case score >= highThreshold:
		return domain.ApproachHigh
	case score >= selectiveThreshold:
		return domain.ApproachSelective
	default:
		return domain.ApproachMinimal
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
