package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"workflow-lab/observability"
)

// ReporterWorker periodically refreshes and prints the monitoring snapshot.
type ReporterWorker struct {
	monitoring *observability.MonitoringManager
	interval   time.Duration
	log        *slog.Logger
}

func NewReporterWorker(monitoring *observability.MonitoringManager, interval time.Duration, log *slog.Logger) *ReporterWorker {
	return &ReporterWorker{monitoring: monitoring, interval: interval, log: log}
}

func (w *ReporterWorker) Run(ctx context.Context) error {
	startTime := time.Now()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.printStats(startTime)
			fmt.Println("\nReporter stopped.")
			return ctx.Err()
		case <-ticker.C:
			w.printStats(startTime)
		}
	}
}

func (w *ReporterWorker) printStats(startTime time.Time) {
	w.monitoring.Refresh()
	stats := w.monitoring.GetLatest()
	uptime := time.Since(startTime).Round(time.Second).String()

	fmt.Printf("\r[%s] Sessions: %d | Evidence: %d | Skipped: %d | Fallbacks: %d | Queue: %d | RAM: %dMB",
		uptime,
		stats.SessionsAnalyzed,
		stats.EvidenceProcessed,
		stats.ItemsSkipped,
		stats.FallbackReports,
		stats.QueueSize,
		stats.AllocMemMb,
	)
}
