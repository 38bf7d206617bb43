package loader

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"workflow-lab/domain"

	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

var wavMagic = []byte{'R', 'I', 'F', 'F', 0x24, 0x00, 0x00, 0x00, 'W', 'A', 'V', 'E', 'f', 'm', 't', ' '}

func writeFile(t *testing.T, dir, name string, content []byte, at time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	require.NoError(t, os.Chtimes(path, at, at))
}

func TestLoad_SessionDirectory(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	writeFile(t, dir, "shot1.png", pngMagic, start)
	writeFile(t, dir, "shot1.png.txt",
		[]byte("Microsoft Excel - Book1\nQuarterly totals\n=SUM(A1:A9)\n"), start)
	writeFile(t, dir, "keys.txt", []byte("typing quarterly totals\n"), start.Add(45*time.Second))
	writeFile(t, dir, "clip.wav", wavMagic, start.Add(90*time.Second))
	writeFile(t, dir, "clip.wav.txt",
		[]byte("recorded narration\nnow checking the totals\n"), start.Add(90*time.Second))
	writeFile(t, dir, DoneMarker, nil, start.Add(91*time.Second))
	writeFile(t, dir, "blob.bin", []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE}, start)

	loader := NewSessionLoader(slog.Default())
	items, summary, err := loader.Load(dir)
	req.NoError(err)

	// png + keystrokes + wav; the sidecars, marker and binary are not items.
	req.Len(items, 3)
	req.Equal(3, summary.Interactions)
	req.Equal(90*time.Second, summary.Duration)

	bySource := make(map[domain.EvidenceSource]domain.EvidenceItem)
	for _, item := range items {
		bySource[item.Source] = item
	}

	shot := bySource[domain.SourceScreenshot]
	req.Equal("Microsoft Excel - Book1", shot.App)
	req.Equal([]string{"Quarterly totals", "=SUM(A1:A9)"}, shot.Fragments)

	keys := bySource[domain.SourceKeystrokes]
	req.Empty(keys.App)
	req.Equal([]string{"typing quarterly totals"}, keys.Fragments)

	clip := bySource[domain.SourceAudio]
	req.Empty(clip.App)
	// The transcript's first line is treated as a title line, not content.
	req.Equal([]string{"now checking the totals"}, clip.Fragments)
}

func TestLoad_ScreenshotWithoutSidecar(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	now := time.Now()

	writeFile(t, dir, "shot1.png", pngMagic, now)

	loader := NewSessionLoader(slog.Default())
	items, summary, err := loader.Load(dir)
	req.NoError(err)

	req.Len(items, 1)
	req.Equal(domain.SourceScreenshot, items[0].Source)
	req.Empty(items[0].App)
	req.Empty(items[0].Fragments)
	req.Equal(time.Duration(0), summary.Duration)
}

func TestLoad_MissingDirectory(t *testing.T) {
	loader := NewSessionLoader(slog.Default())
	_, _, err := loader.Load(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestIsSidecar(t *testing.T) {
	req := require.New(t)
	present := map[string]struct{}{
		"shot1.png":     {},
		"shot1.png.txt": {},
		"notes.txt":     {},
	}

	req.True(isSidecar("shot1.png.txt", present))
	// A text file without a primary artifact is evidence on its own.
	req.False(isSidecar("notes.txt", present))
	req.False(isSidecar("shot1.png", present))
}

func TestSplitLines(t *testing.T) {
	req := require.New(t)
	req.Equal([]string{"one", "two"}, splitLines("one\r\n\n  \ntwo\n"))
	req.Empty(splitLines("  \n\t\n"))
}
