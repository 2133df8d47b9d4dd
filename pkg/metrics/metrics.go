package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImportsCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "partlane_bom_imports_committed_total",
		Help: "Number of BOM imports committed successfully.",
	})

	ImportCommitFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "partlane_bom_import_commit_failures_total",
		Help: "Number of BOM import commits rolled back due to write errors.",
	})

	ImportRowsCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "partlane_bom_import_rows_committed_total",
		Help: "Number of BOM rows written by committed imports.",
	})
)
