package domain

import (
	"strings"
	"time"
)

type EvidenceSource string

const (
	SourceScreenshot EvidenceSource = "screenshot"
	SourceKeystrokes EvidenceSource = "keystroke-batch"
	SourceAudio      EvidenceSource = "audio"
)

// EvidenceItem is one observed unit of user activity: the OCR output of a
// screenshot, a keystroke batch, or an audio transcription chunk.
// Immutable once captured.
type EvidenceItem struct {
	Source     EvidenceSource
	Fragments  []string // extracted text, in reading order
	App        string   // detected application, empty when unknown
	UIElements []string
	CapturedAt time.Time
}

// Text joins all fragments into a single searchable block.
func (e EvidenceItem) Text() string {
	return strings.Join(e.Fragments, "\n")
}

// Empty reports whether the item carries no usable signal.
// Such items are skipped during classification instead of aborting the pass.
func (e EvidenceItem) Empty() bool {
	for _, f := range e.Fragments {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return len(e.UIElements) == 0
}

// SessionSummary captures the shape of one finished recording session.
// Derived once, read-only afterwards.
type SessionSummary struct {
	Duration     time.Duration
	Interactions int
}

// ActivityRate returns interactions per second.
func (s SessionSummary) ActivityRate() float64 {
	secs := s.Duration.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.Interactions) / secs
}
