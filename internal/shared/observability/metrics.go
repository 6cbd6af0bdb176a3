package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	FilesCheckedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "singletuple_files_checked_total",
		Help: "Source files processed, by outcome (clean, violations, skipped, failed).",
	}, []string{"outcome"})

	ViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "singletuple_violations_total",
		Help: "Single-item tuple violations reported, by rule mode.",
	}, []string{"mode"})

	ParseFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "singletuple_parse_failures_total",
		Help: "Files that could not be read or parsed, by error code.",
	}, []string{"code"})

	ParsingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "singletuple_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "singletuple_analysis_seconds",
		Help:    "Time spent on high-level tasks (file, run).",
		Buckets: prometheus.DefBuckets,
	}, []string{"task"})

	ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "singletuple_active_workers",
		Help: "Files currently being analyzed.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "singletuple_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatcherUnchangedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "singletuple_watcher_unchanged_total",
		Help: "Write events dropped because the file content hash did not change.",
	})

	HistoryWriteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "singletuple_history_write_errors_total",
		Help: "Run history records that failed to persist.",
	})
)
