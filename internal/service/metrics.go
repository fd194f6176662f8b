package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "untis",
		Subsystem: "import",
		Name:      "runs_total",
		Help:      "Total number of schedule imports broken down by outcome.",
	}, []string{"result"})

	importRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "untis",
		Subsystem: "import",
		Name:      "rows_total",
		Help:      "Total number of rows written by schedule imports broken down by table and operation.",
	}, []string{"table", "op"})
)

// 导入结果标签
const (
	resultOK        = "ok"
	resultRejected  = "rejected"
	resultDuplicate = "duplicate"
	resultFailed    = "failed"
)

func recordRun(result string) {
	importRuns.WithLabelValues(result).Inc()
}

func recordRows(stats Stats) {
	for table, n := range stats.Created {
		importRows.WithLabelValues(table, "create").Add(float64(n))
	}
	for table, n := range stats.Updated {
		importRows.WithLabelValues(table, "update").Add(float64(n))
	}
}
