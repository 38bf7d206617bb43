package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"workflow-lab/observability"

	"github.com/shirou/gopsutil/process"
)

// HealthWorker samples the process's own RSS and CPU usage and feeds the
// monitoring manager. Sampling failures are logged and retried on the next
// tick; they never crash the pipeline.
type HealthWorker struct {
	monitoring *observability.MonitoringManager
	interval   time.Duration
	log        *slog.Logger
}

func NewHealthWorker(monitoring *observability.MonitoringManager, interval time.Duration, log *slog.Logger) *HealthWorker {
	return &HealthWorker{monitoring: monitoring, interval: interval, log: log}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, err := selfStats(p)
			if err != nil {
				w.log.Warn("Failed to collect process stats", "error", err)
				continue
			}
			w.monitoring.SetProcessStats(rss, cpu)
		}
	}
}

func selfStats(p *process.Process) (rssBytes uint64, cpuPercent float64, err error) {
	mem, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return mem.RSS, cpu, nil
}
