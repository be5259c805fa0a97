package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	workday = "workday"

	jobTransitionsTotal      = "job_transitions_total"
	sweepRunsTotal           = "sweep_runs_total"
	expiredJobsTotal         = "expired_jobs_total"
	busyProviders            = "busy_providers"
	invariantViolationsTotal = "invariant_violations_total"

	// Labels
	actionLabel = "action"
	resultLabel = "result"
	sweepLabel  = "sweep"
)

// Transition results
const (
	ResultApplied  = "applied"
	ResultRejected = "rejected"
	ResultConflict = "conflict"
	ResultError    = "error"
)

var jobTransitionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: workday,
		Name:      jobTransitionsTotal,
		Help:      "number of job transitions attempted, partitioned by action and result",
	},
	[]string{actionLabel, resultLabel},
)

var sweepRunsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: workday,
		Name:      sweepRunsTotal,
		Help:      "number of sweep ticks executed",
	},
	[]string{sweepLabel},
)

var expiredJobsTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: workday,
		Name:      expiredJobsTotal,
		Help:      "number of jobs moved to failed by the expiry sweep",
	},
)

var busyProvidersMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Namespace: workday,
		Name:      busyProviders,
		Help:      "number of providers marked unavailable by the last reconciliation",
	},
)

var invariantViolationsTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: workday,
		Name:      invariantViolationsTotal,
		Help:      "number of records found breaking a lifecycle invariant",
	},
)

func IncreaseJobTransitionsMetric(action, result string) {
	jobTransitionsTotalMetric.With(prometheus.Labels{
		actionLabel: action,
		resultLabel: result,
	}).Inc()
}

func IncreaseSweepRunsMetric(sweep string) {
	sweepRunsTotalMetric.With(prometheus.Labels{sweepLabel: sweep}).Inc()
}

func AddExpiredJobsMetric(count int) {
	expiredJobsTotalMetric.Add(float64(count))
}

func UpdateBusyProvidersMetric(count int) {
	busyProvidersMetric.Set(float64(count))
}

func IncreaseInvariantViolationsMetric() {
	invariantViolationsTotalMetric.Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(jobTransitionsTotalMetric)
	prometheus.MustRegister(sweepRunsTotalMetric)
	prometheus.MustRegister(expiredJobsTotalMetric)
	prometheus.MustRegister(busyProvidersMetric)
	prometheus.MustRegister(invariantViolationsTotalMetric)
}
