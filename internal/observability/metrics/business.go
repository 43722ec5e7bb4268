package metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

// Package-level metric variables. These are set by RegisterBusinessMetrics
// and referenced by the record/increment helpers below. When nil (i.e. before
// RegisterBusinessMetrics is called), callers simply skip recording.

// Sprint metrics
var (
	sprintsStartedTotal   prometheus.Counter
	sprintsCompletedTotal prometheus.Counter
	sprintVelocity        prometheus.Histogram
)

// Work item metrics
var (
	workItemsTotal *prometheus.CounterVec
)

// Auth metrics
var (
	authLoginsTotal *prometheus.CounterVec
)

// RegisterBusinessMetrics registers product-level Prometheus metrics on the
// provided registry. If reg is nil the call is a no-op.
func RegisterBusinessMetrics(reg *prometheus.Registry) {
	if reg == nil {
		return
	}

	sprintsStartedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "floumy_sprints_started_total",
		Help: "Total number of sprints started.",
	})

	sprintsCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "floumy_sprints_completed_total",
		Help: "Total number of sprints completed.",
	})

	sprintVelocity = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "floumy_sprint_velocity",
		Help:    "Velocity (summed estimation points) of completed sprints.",
		Buckets: []float64{0, 5, 10, 20, 40, 80, 160},
	})

	workItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floumy_work_items_total",
			Help: "Total number of work item mutations.",
		},
		[]string{"operation"},
	)

	authLoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floumy_auth_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)

	reg.MustRegister(
		sprintsStartedTotal,
		sprintsCompletedTotal,
		sprintVelocity,
		workItemsTotal,
		authLoginsTotal,
	)
}

// RecordSprintStarted increments the started-sprint counter.
func RecordSprintStarted() {
	defer recoverMetric("RecordSprintStarted")
	if sprintsStartedTotal != nil {
		sprintsStartedTotal.Inc()
	}
}

// RecordSprintCompleted increments the completed-sprint counter and observes
// the sprint's velocity.
func RecordSprintCompleted(velocity float64) {
	defer recoverMetric("RecordSprintCompleted")
	if sprintsCompletedTotal != nil {
		sprintsCompletedTotal.Inc()
	}
	if sprintVelocity != nil {
		sprintVelocity.Observe(velocity)
	}
}

// RecordWorkItemMutation increments the work item mutation counter for the
// given operation (create, update, delete).
func RecordWorkItemMutation(operation string) {
	defer recoverMetric("RecordWorkItemMutation")
	if workItemsTotal != nil {
		workItemsTotal.WithLabelValues(operation).Inc()
	}
}

// RecordLogin increments the login counter with result "success" or "failure".
func RecordLogin(result string) {
	defer recoverMetric("RecordLogin")
	if authLoginsTotal != nil {
		authLoginsTotal.WithLabelValues(result).Inc()
	}
}

func recoverMetric(name string) {
	if r := recover(); r != nil {
		log.Printf("[metrics] recovered from panic in %s: %v", name, r)
	}
}
