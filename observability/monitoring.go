// Package observability aggregates live pipeline metrics for the reporter
// worker and the inspect page.
package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// MonitoringStats is one snapshot of the analysis pipeline.
type MonitoringStats struct {
	SessionsAnalyzed  uint64  `json:"sessions_analyzed"`
	EvidenceProcessed uint64  `json:"evidence_processed"`
	ItemsSkipped      uint64  `json:"items_skipped"`
	FallbackReports   uint64  `json:"fallback_reports"`
	QueueSize         int     `json:"queue_size"`
	AllocMemMb        uint64  `json:"alloc_mem_mb"`
	NumGC             uint32  `json:"num_gc"`
	ProcessRSSMb      uint64  `json:"process_rss_mb"`
	ProcessCPU        float64 `json:"process_cpu_percent"`
}

// MonitoringManager owns atomic counters updated by the workers and a
// periodically refreshed snapshot consumed by readers.
type MonitoringManager struct {
	log *slog.Logger
	mu  sync.RWMutex

	latest MonitoringStats

	sessionsAnalyzed  atomic.Uint64
	evidenceProcessed atomic.Uint64
	itemsSkipped      atomic.Uint64
	fallbackReports   atomic.Uint64
	queueSize         atomic.Int64

	lastRefresh time.Time
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{log: log, lastRefresh: time.Now()}
}

func (m *MonitoringManager) SessionAnalyzed(evidenceCount, skipped int, fallback bool) {
	m.sessionsAnalyzed.Add(1)
	m.evidenceProcessed.Add(uint64(evidenceCount))
	m.itemsSkipped.Add(uint64(skipped))
	if fallback {
		m.fallbackReports.Add(1)
	}
}

func (m *MonitoringManager) SetQueueSize(n int) {
	m.queueSize.Store(int64(n))
}

// SetProcessStats is fed by the health worker with gopsutil samples.
func (m *MonitoringManager) SetProcessStats(rssBytes uint64, cpuPercent float64) {
	m.mu.Lock()
	m.latest.ProcessRSSMb = rssBytes / 1024 / 1024
	m.latest.ProcessCPU = cpuPercent
	m.mu.Unlock()
}

// Refresh folds the atomic counters and runtime memory stats into the
// published snapshot.
func (m *MonitoringManager) Refresh() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	m.mu.Lock()
	m.latest.SessionsAnalyzed = m.sessionsAnalyzed.Load()
	m.latest.EvidenceProcessed = m.evidenceProcessed.Load()
	m.latest.ItemsSkipped = m.itemsSkipped.Load()
	m.latest.FallbackReports = m.fallbackReports.Load()
	m.latest.QueueSize = int(m.queueSize.Load())
	m.latest.AllocMemMb = mem.Alloc / 1024 / 1024
	m.latest.NumGC = mem.NumGC
	m.lastRefresh = time.Now()
	m.mu.Unlock()
}

func (m *MonitoringManager) GetLatest() MonitoringStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}
