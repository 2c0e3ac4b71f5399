package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckInsTotal counts accepted check-ins by classified status.
	CheckInsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_checkins_total",
		Help: "Accepted check-ins partitioned by classified status.",
	}, []string{"status"})

	CheckOutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_checkouts_total",
		Help: "Accepted check-outs.",
	})

	GridRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_grid_requests_total",
		Help: "Calendar grid reconstructions served.",
	})

	ExportJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_export_jobs_total",
		Help: "Batch grid exports partitioned by outcome.",
	}, []string{"outcome"})
)
