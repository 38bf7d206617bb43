package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"workflow-lab/catalog"
	"workflow-lab/internal"
	"workflow-lab/observability"
	"workflow-lab/projection"
	"workflow-lab/repositories"
	"workflow-lab/runtime"
	"workflow-lab/runtime/workers"
	"workflow-lab/sink"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the analyzer lifecycle, and
// centralizes error reporting so deferred cleanup always executes.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Storage (BadgerDB + Bluge search index)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing search index...")
		_ = blugeWriter.Close()
	}()

	// 3. Domain wiring
	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("catalog error: %w", err)
	}

	reportRepository := repositories.NewReportRepository(db, blugeWriter, log, config.ReportPageSize)
	monitoring := observability.NewMonitoringManager(log)
	registry := runtime.NewRegistry(log)
	sup := workers.NewSupervisor(log)

	orchestrator := runtime.NewOrchestrator(log, sup, registry, cat, monitoring, runtime.Options{
		NumWorkers:      config.NumberOfWorkers,
		BufferSize:      config.BufferSize,
		AnalysisTimeout: config.AnalysisTimeout,
		MetricInterval:  config.MetricInterval,
		RecordingsRoot:  config.RecordingsRoot,
		ScanInterval:    config.ScanInterval,
	})

	history := projection.NewPatternHistory()
	orchestrator.RegisterSinks(
		sink.NewReportSink(reportRepository, log),
		history,
	)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start the Engine
	if err = orchestrator.Start(ctx); err != nil {
		return fmt.Errorf("orchestrator failed to start: %w", err)
	}

	// 6. Optional debug page over the live database
	if config.DebugPort > 0 {
		internal.StartDebugServer(db, config.DebugPort, "/inspect", internal.ReportMapper, func() map[string]any {
			stats := monitoring.GetLatest()
			out := map[string]any{
				"Sessions analyzed":  stats.SessionsAnalyzed,
				"Evidence processed": stats.EvidenceProcessed,
				"Fallback reports":   stats.FallbackReports,
				"Queue size":         stats.QueueSize,
			}
			for _, p := range history.Snapshot() {
				out["avg "+p.WorkflowType] = p.AverageScore()
			}
			return out
		})
		log.Info("Debug server started", "port", config.DebugPort)
	}

	// 7. Wait for Stop
	<-ctx.Done()
	log.Info("Shutting down gracefully...")

	// 8. Final Cleanup
	orchestrator.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
