// Package loader converts a finished recording session directory into the
// evidence batch the classifier consumes. A session directory holds
// screenshot images with OCR sidecars (<image>.txt, first line = captured
// window title), keystroke batch text files, and optionally audio clips with
// transcript sidecars.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"workflow-lab/domain"

	"github.com/gabriel-vasile/mimetype"
)

// DoneMarker must exist before a session directory is considered complete.
const DoneMarker = "session.done"

// AnalyzedMarker is written once a session has been submitted for analysis.
const AnalyzedMarker = ".analyzed"

type SessionLoader struct {
	log *slog.Logger
}

func NewSessionLoader(log *slog.Logger) *SessionLoader {
	return &SessionLoader{log: log}
}

// Load reads every artifact of one session directory. Unreadable or
// unrecognized files are skipped with a log line; they never abort the load.
func (l *SessionLoader) Load(dir string) ([]domain.EvidenceItem, domain.SessionSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, domain.SessionSummary{}, fmt.Errorf("reading session directory: %w", err)
	}

	present := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		present[e.Name()] = struct{}{}
	}

	var items []domain.EvidenceItem
	var first, last time.Time

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == DoneMarker || name == AnalyzedMarker {
			continue
		}
		// Sidecars are consumed together with their primary artifact.
		if isSidecar(name, present) {
			continue
		}

		path := filepath.Join(dir, name)
		item, ok := l.loadArtifact(path)
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err == nil {
			item.CapturedAt = info.ModTime()
			if first.IsZero() || item.CapturedAt.Before(first) {
				first = item.CapturedAt
			}
			if item.CapturedAt.After(last) {
				last = item.CapturedAt
			}
		}
		items = append(items, item)
	}

	summary := domain.SessionSummary{Interactions: len(items)}
	if !first.IsZero() {
		summary.Duration = last.Sub(first)
	}
	return items, summary, nil
}

func (l *SessionLoader) loadArtifact(path string) (domain.EvidenceItem, bool) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		l.log.Warn("Skipping unreadable artifact", "path", path, "error", err)
		return domain.EvidenceItem{}, false
	}

	switch {
	case mtype.Is("image/png") || mtype.Is("image/jpeg"):
		app, fragments := l.readSidecar(path + ".txt")
		return domain.EvidenceItem{
			Source:    domain.SourceScreenshot,
			App:       app,
			Fragments: fragments,
		}, true

	case strings.HasPrefix(mtype.String(), "audio/"):
		_, fragments := l.readSidecar(path + ".txt")
		return domain.EvidenceItem{
			Source:    domain.SourceAudio,
			Fragments: fragments,
		}, true

	case mtype.Is("text/plain"):
		content, err := os.ReadFile(path)
		if err != nil {
			l.log.Warn("Skipping unreadable keystroke batch", "path", path, "error", err)
			return domain.EvidenceItem{}, false
		}
		return domain.EvidenceItem{
			Source:    domain.SourceKeystrokes,
			Fragments: splitLines(string(content)),
		}, true

	default:
		l.log.Debug("Ignoring artifact of unsupported type", "path", path, "mime", mtype.String())
		return domain.EvidenceItem{}, false
	}
}

// readSidecar parses an OCR/transcript sidecar. The first line carries the
// captured window title, the remainder the extracted text fragments.
func (l *SessionLoader) readSidecar(path string) (title string, fragments []string) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil
	}
	lines := splitLines(string(content))
	if len(lines) == 0 {
		return "", nil
	}
	return lines[0], lines[1:]
}

// isSidecar reports whether name is a "<artifact>.txt" companion of another
// file in the same directory.
func isSidecar(name string, present map[string]struct{}) bool {
	base, ok := strings.CutSuffix(name, ".txt")
	if !ok {
		return false
	}
	_, exists := present[base]
	return exists
}

func splitLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
