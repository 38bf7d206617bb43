package workers

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"workflow-lab/domain/event"
	"workflow-lab/loader"

	"github.com/stretchr/testify/require"
)

func TestSessionScanner_SubmitsFinishedSessionsOnce(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()

	finished := filepath.Join(root, "session-001")
	req.NoError(os.Mkdir(finished, 0o755))
	req.NoError(os.WriteFile(filepath.Join(finished, "keys.txt"), []byte("typing quarterly totals\n"), 0o644))
	req.NoError(os.WriteFile(filepath.Join(finished, loader.DoneMarker), nil, 0o644))

	// Still recording: no done marker yet.
	recording := filepath.Join(root, "session-002")
	req.NoError(os.Mkdir(recording, 0o755))
	req.NoError(os.WriteFile(filepath.Join(recording, "keys.txt"), []byte("draft notes\n"), 0o644))

	sessions := make(chan event.SessionCompleted, 4)
	scanner := NewSessionScanner(
		loader.NewSessionLoader(slog.Default()),
		root, 20*time.Millisecond,
		sessions, slog.Default(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = scanner.Run(ctx) }()

	var submitted event.SessionCompleted
	select {
	case submitted = <-sessions:
	case <-time.After(2 * time.Second):
		req.Fail("Finished session was never submitted")
	}
	req.Len(submitted.Evidence, 1)
	req.Equal(1, submitted.Summary.Interactions)

	// The analyzed marker pins the submission across later scans.
	req.Eventually(func() bool {
		_, err := os.Stat(filepath.Join(finished, loader.AnalyzedMarker))
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	select {
	case extra := <-sessions:
		req.Failf("Session resubmitted", "session %s", extra.Session)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestSessionScanner_PicksUpLateDoneMarker(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()

	dir := filepath.Join(root, "session-003")
	req.NoError(os.Mkdir(dir, 0o755))
	req.NoError(os.WriteFile(filepath.Join(dir, "keys.txt"), []byte("typing quarterly totals\n"), 0o644))

	sessions := make(chan event.SessionCompleted, 1)
	scanner := NewSessionScanner(
		loader.NewSessionLoader(slog.Default()),
		root, 20*time.Millisecond,
		sessions, slog.Default(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = scanner.Run(ctx) }()

	// Nothing is submitted while the recorder is still writing.
	select {
	case <-sessions:
		req.Fail("Unfinished session must not be submitted")
	case <-time.After(100 * time.Millisecond):
	}

	req.NoError(os.WriteFile(filepath.Join(dir, loader.DoneMarker), nil, 0o644))

	select {
	case <-sessions:
	case <-time.After(2 * time.Second):
		req.Fail("Session was not picked up after the done marker appeared")
	}
}
