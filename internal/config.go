package internal

import "time"

type Config struct {
	BufferSize      int           `env:"BUFFER_SIZE,required=true"`
	NumberOfWorkers int           `env:"NUMBER_OF_WORKERS,required=true"`
	AnalysisTimeout time.Duration `env:"ANALYSIS_TIMEOUT,required=true"`
	MetricInterval  time.Duration `env:"METRIC_INTERVAL,required=true"`
	ScanInterval    time.Duration `env:"SCAN_INTERVAL,required=true"`
	RecordingsRoot  string        `env:"RECORDINGS_ROOT"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath   string        `env:"BLUGE_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,required=true"`
	ReportPageSize  int           `env:"REPORT_PAGE_SIZE,required=true"`
	DebugPort       int           `env:"DEBUG_PORT"`
}
