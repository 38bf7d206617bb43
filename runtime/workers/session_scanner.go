package workers

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"workflow-lab/domain/event"
	"workflow-lab/loader"

	"github.com/google/uuid"
)

// SessionScanner polls the recordings root for finished session
// directories, loads their evidence, and hands them to the analysis pool.
// A directory is picked up once its recorder has written the done marker;
// an analyzed marker prevents re-submission across restarts.
type SessionScanner struct {
	loader   *loader.SessionLoader
	root     string
	interval time.Duration
	sessions chan event.SessionCompleted
	log      *slog.Logger
}

func NewSessionScanner(l *loader.SessionLoader, root string, interval time.Duration,
	sessions chan event.SessionCompleted, log *slog.Logger) *SessionScanner {
	return &SessionScanner{loader: l, root: root, interval: interval, sessions: sessions, log: log}
}

func (w *SessionScanner) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping session scanner")
			return ctx.Err()
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *SessionScanner) scan(ctx context.Context) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		w.log.Warn("Cannot read recordings root", "root", w.root, "error", err)
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(w.root, entry.Name())

		doneAt, done := markerTime(filepath.Join(dir, loader.DoneMarker))
		if !done {
			continue
		}
		if _, analyzed := markerTime(filepath.Join(dir, loader.AnalyzedMarker)); analyzed {
			continue
		}

		items, summary, err := w.loader.Load(dir)
		if err != nil {
			w.log.Warn("Failed to load session directory", "dir", dir, "error", err)
			continue
		}

		evt := event.SessionCompleted{
			Session:  uuid.New(),
			Evidence: items,
			Summary:  summary,
			At:       doneAt,
		}

		select {
		case <-ctx.Done():
			return
		case w.sessions <- evt:
		}

		if err := os.WriteFile(filepath.Join(dir, loader.AnalyzedMarker), []byte(evt.Session.String()+"\n"), 0o644); err != nil {
			w.log.Warn("Cannot mark session as analyzed", "dir", dir, "error", err)
		}
		w.log.Info("Session submitted", "dir", dir, "session", evt.Session, "items", len(items))
	}
}

func markerTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
