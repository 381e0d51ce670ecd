package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters exposed on /metrics alongside the default Go and process
// collectors.
var (
	PresentScans = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_present_scans_total",
		Help: "Number of present scans recorded.",
	})

	SweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_sweep_runs_total",
		Help: "Number of absence sweep runs completed.",
	})

	AbsentsMarked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_absents_marked_total",
		Help: "Number of students marked absent by sweeps.",
	})
)
